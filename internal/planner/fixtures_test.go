package planner

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"ai-trainer/internal/llm"
	"ai-trainer/internal/shared"
)

func mealDoc(name string) map[string]any {
	return map[string]any{
		"mealName": name,
		"items":    []any{"1 bowl " + name},
		"macros":   "P 20g / C 40g / F 10g",
	}
}

// planDoc returns a complete plan with 5 exercises and all 5 meals.
func planDoc() map[string]any {
	exercises := []any{}
	for _, ex := range []struct{ muscle, name string }{
		{"Legs", "Goblet Squat"},
		{"Chest", "Push-up"},
		{"Legs", "Walking Lunge"},
		{"Back", "Dumbbell Row"},
		{"", "Plank"},
	} {
		exercises = append(exercises, map[string]any{
			"targetMuscle": ex.muscle,
			"name":         ex.name,
			"sets":         "3",
			"reps":         "12",
			"rest":         "60s",
			"tips":         "Control the tempo",
		})
	}

	return map[string]any{
		"title":    "Lean Start",
		"overview": "Full body circuits with a calorie deficit.",
		"nutritionStats": map[string]any{
			"dailyCalories": "1800 kcal",
			"protein":       "110g",
			"carbs":         "180g",
			"fats":          "55g",
		},
		"workout": map[string]any{
			"splitName": "Full Body Burn",
			"warmup":    []any{"5 min brisk walk", "Arm circles"},
			"exercises": exercises,
			"cooldown":  []any{"Hamstring stretch"},
		},
		"diet": map[string]any{
			"breakfast":   mealDoc("Tofu Bhurji"),
			"lunch":       mealDoc("Rajma Chawal"),
			"snack":       mealDoc("Roasted Chana"),
			"dinner":      mealDoc("Moong Dal Khichdi"),
			"postWorkout": mealDoc("Soy Milk Shake"),
		},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	return string(b)
}

// completePlan decodes planDoc into a FitnessPlan.
func completePlan(t *testing.T) *FitnessPlan {
	t.Helper()
	var plan FitnessPlan
	if err := json.Unmarshal([]byte(mustJSON(t, planDoc())), &plan); err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	return &plan
}

func scenarioAPrefs() UserPreferences {
	return UserPreferences{
		Goal:          "Fat Loss",
		FitnessLevel:  "Beginner",
		Cuisine:       "Vegan",
		AvailableTime: "45",
		Age:           30,
		Weight:        65,
		Gender:        "Female",
	}
}

// mockTextGenerator returns a canned response and records prompts.
type mockTextGenerator struct {
	mu      sync.Mutex
	content string
	err     error
	prompts []string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	usage := shared.TokenUsage{PromptTokens: 100, CompletionTokens: 400, TotalTokens: 500, Model: "mock"}
	if m.err != nil {
		return llm.ContentResponse{Usage: usage}, m.err
	}
	return llm.ContentResponse{Content: m.content, Usage: usage}, nil
}

func (m *mockTextGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
