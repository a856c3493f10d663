package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Option lists offered by the preference form.
var (
	Goals         = []string{"Muscle Gain", "Fat Loss", "Strength & Power", "General Fitness", "Endurance"}
	FitnessLevels = []string{"Beginner", "Intermediate", "Advanced"}
	Cuisines      = []string{"Vegetarian", "Non-Vegetarian", "Vegan", "Eggetarian"}
	Genders       = []string{"Male", "Female", "Other"}
)

// ErrInvalidPreferences is matched by every *PreferenceError.
var ErrInvalidPreferences = errors.New("invalid preferences")

// PreferenceError names the offending field.
type PreferenceError struct {
	Field   string
	Value   string
	Allowed []string
	Reason  string
}

func (e *PreferenceError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid %s %q: must be one of %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *PreferenceError) Is(target error) bool {
	return target == ErrInvalidPreferences
}

// UserPreferences is the input to one generation call.
type UserPreferences struct {
	Goal          string `json:"goal"`
	FitnessLevel  string `json:"fitnessLevel"`
	Cuisine       string `json:"cuisine"`
	AvailableTime string `json:"availableTime"` // minutes, free text
	Age           int    `json:"age"`
	Weight        int    `json:"weight"` // kg
	Gender        string `json:"gender"`
}

// DefaultPreferences returns the values the form starts with.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Goal:          "Muscle Gain",
		FitnessLevel:  "Beginner",
		Cuisine:       "Vegetarian",
		AvailableTime: "60",
		Age:           25,
		Weight:        70,
		Gender:        "Male",
	}
}

// Normalize returns a copy with option fields mapped to their canonical
// spelling (matching is case-insensitive) and free text trimmed. It fails on
// the first field outside its option list.
func (p UserPreferences) Normalize() (UserPreferences, error) {
	var err error
	if p.Goal, err = canonicalOption("goal", p.Goal, Goals); err != nil {
		return p, err
	}
	if p.FitnessLevel, err = canonicalOption("fitness level", p.FitnessLevel, FitnessLevels); err != nil {
		return p, err
	}
	if p.Cuisine, err = canonicalOption("cuisine", p.Cuisine, Cuisines); err != nil {
		return p, err
	}
	if p.Gender, err = canonicalOption("gender", p.Gender, Genders); err != nil {
		return p, err
	}
	if p.Age <= 0 {
		return p, &PreferenceError{Field: "age", Value: strconv.Itoa(p.Age), Reason: "must be greater than zero"}
	}
	if p.Weight <= 0 {
		return p, &PreferenceError{Field: "weight", Value: strconv.Itoa(p.Weight), Reason: "must be greater than zero"}
	}
	p.AvailableTime = strings.TrimSpace(p.AvailableTime)
	return p, nil
}

func canonicalOption(field, value string, options []string) (string, error) {
	v := strings.TrimSpace(value)
	for _, opt := range options {
		if strings.EqualFold(v, opt) {
			return opt, nil
		}
	}
	return value, &PreferenceError{Field: field, Value: value, Allowed: options}
}

// ParseWholeNumber converts a typed age or weight. Anything that is not a
// positive whole number is rejected rather than coerced to zero.
func ParseWholeNumber(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &PreferenceError{Field: field, Value: raw, Reason: "must be a whole number"}
	}
	if n <= 0 {
		return 0, &PreferenceError{Field: field, Value: raw, Reason: "must be greater than zero"}
	}
	return n, nil
}
