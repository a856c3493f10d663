package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationResult is either a valid plan or the list of required field
// paths that were missing or malformed, in check order.
type ValidationResult struct {
	Plan    *FitnessPlan
	Missing []string
}

// Valid reports whether the candidate was accepted.
func (r ValidationResult) Valid() bool {
	return r.Plan != nil && len(r.Missing) == 0
}

// ValidatePlanJSON checks the structural completeness of a candidate plan.
// It only checks presence, non-empty names and array shape: any list may be
// empty except workout.exercises. The error is non-nil only when raw is not
// a JSON object or does not fit the FitnessPlan types.
func ValidatePlanJSON(raw []byte) (ValidationResult, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ValidationResult{}, err
	}
	if doc == nil {
		return ValidationResult{}, fmt.Errorf("expected a JSON object, got null")
	}

	if missing := missingPaths(doc); len(missing) > 0 {
		return ValidationResult{Missing: missing}, nil
	}

	var plan FitnessPlan
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&plan); err != nil {
		return ValidationResult{}, err
	}
	return ValidationResult{Plan: &plan}, nil
}

func missingPaths(doc map[string]any) []string {
	var missing []string
	check := func(ok bool, path string) {
		if !ok {
			missing = append(missing, path)
		}
	}

	check(nonEmptyString(doc["title"]), "title")
	check(nonEmptyString(doc["overview"]), "overview")
	_, ok := doc["nutritionStats"].(map[string]any)
	check(ok, "nutritionStats")

	if workout, ok := doc["workout"].(map[string]any); !ok {
		missing = append(missing, "workout")
	} else {
		check(nonEmptyString(workout["splitName"]), "workout.splitName")
		check(isArray(workout["warmup"]), "workout.warmup")
		exercises, ok := workout["exercises"].([]any)
		check(ok && len(exercises) > 0, "workout.exercises")
		check(isArray(workout["cooldown"]), "workout.cooldown")
	}

	diet, ok := doc["diet"].(map[string]any)
	if !ok {
		return append(missing, "diet")
	}
	for _, slot := range MealSlots {
		path := "diet." + slot
		meal, ok := diet[slot].(map[string]any)
		if !ok {
			missing = append(missing, path)
			continue
		}
		check(nonEmptyString(meal["mealName"]), path+".mealName")
		check(isArray(meal["items"]), path+".items")
	}
	return missing
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}
