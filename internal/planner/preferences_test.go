package planner

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	prefs := UserPreferences{
		Goal:          "strength & power",
		FitnessLevel:  " ADVANCED ",
		Cuisine:       "non-vegetarian",
		AvailableTime: " 75 ",
		Age:           40,
		Weight:        82,
		Gender:        "male",
	}

	got, err := prefs.Normalize()
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.Goal != "Strength & Power" || got.FitnessLevel != "Advanced" || got.Cuisine != "Non-Vegetarian" || got.Gender != "Male" {
		t.Errorf("Options not canonicalised: %+v", got)
	}
	if got.AvailableTime != "75" {
		t.Errorf("Expected trimmed time, got '%s'", got.AvailableTime)
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := map[string]func(p *UserPreferences){
		"Goal":    func(p *UserPreferences) { p.Goal = "Bulking" },
		"Level":   func(p *UserPreferences) { p.FitnessLevel = "Pro" },
		"Cuisine": func(p *UserPreferences) { p.Cuisine = "Keto" },
		"Gender":  func(p *UserPreferences) { p.Gender = "" },
		"Age":     func(p *UserPreferences) { p.Age = 0 },
		"Weight":  func(p *UserPreferences) { p.Weight = -5 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := DefaultPreferences()
			mutate(&p)
			_, err := p.Normalize()
			if !errors.Is(err, ErrInvalidPreferences) {
				t.Fatalf("Expected ErrInvalidPreferences, got %v", err)
			}
		})
	}
}

func TestDefaultPreferencesAreValid(t *testing.T) {
	if _, err := DefaultPreferences().Normalize(); err != nil {
		t.Fatalf("Defaults should be valid: %v", err)
	}
}

func TestParseWholeNumber(t *testing.T) {
	if n, err := ParseWholeNumber("age", " 30 "); err != nil || n != 30 {
		t.Errorf("Expected 30, got %d (%v)", n, err)
	}

	for _, raw := range []string{"", "abc", "70kg", "0", "-1", "65.5"} {
		_, err := ParseWholeNumber("weight", raw)
		var perr *PreferenceError
		if !errors.As(err, &perr) {
			t.Errorf("ParseWholeNumber(%q): expected *PreferenceError, got %v", raw, err)
			continue
		}
		if perr.Field != "weight" {
			t.Errorf("Expected field 'weight', got '%s'", perr.Field)
		}
	}
}
