package render

import (
	"strings"
	"testing"

	"ai-trainer/internal/planner"
)

func testPlan() *planner.FitnessPlan {
	meal := func(name string) planner.Meal {
		return planner.Meal{MealName: name, Items: []string{"a", "b"}, Macros: "P 20g"}
	}
	return &planner.FitnessPlan{
		Title:          "Lean Start",
		Overview:       "Circuits and a deficit.",
		NutritionStats: planner.NutritionStats{DailyCalories: "1800 kcal", Protein: "110g", Carbs: "180g", Fats: "55g"},
		Workout: planner.Workout{
			SplitName: "Full Body",
			Warmup:    []string{"Walk"},
			Exercises: []planner.Exercise{
				{TargetMuscle: "Legs", Name: "Squat", Sets: "3", Reps: "12", Rest: "60s"},
				{TargetMuscle: "Chest", Name: "Push-up", Sets: "3", Reps: "10", Rest: "45s", Tips: "Brace"},
				{TargetMuscle: "Legs", Name: "Lunge", Sets: "3", Reps: "10", Rest: "60s"},
				{Name: "Plank", Sets: "3", Reps: "30s", Rest: "30s"},
			},
			Cooldown: []string{"Stretch"},
		},
		Diet: planner.Diet{
			Breakfast:   meal("Oats"),
			Lunch:       meal("Rajma"),
			Snack:       meal("Chana"),
			Dinner:      meal("Khichdi"),
			PostWorkout: meal("Shake"),
		},
	}
}

func TestParseTab(t *testing.T) {
	cases := map[string]Tab{"": TabWorkout, "Workout": TabWorkout, "diet": TabDiet, " ALL ": TabAll}
	for in, want := range cases {
		got, err := ParseTab(in)
		if err != nil || got != want {
			t.Errorf("ParseTab(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTab("nutrition"); err == nil {
		t.Error("Expected error for unknown tab")
	}
}

func TestPlanWorkoutTab(t *testing.T) {
	var sb strings.Builder
	if err := Plan(&sb, testPlan(), TabWorkout); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{"=== Lean Start ===", "Calories: 1800 kcal", "## Workout: Full Body", "tip: Brace", "Cooldown"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Diet") {
		t.Error("Workout tab should not include the diet")
	}

	legs := strings.Index(out, "[Legs]")
	chest := strings.Index(out, "[Chest]")
	general := strings.Index(out, "[General]")
	if legs < 0 || chest < 0 || general < 0 || !(legs < chest && chest < general) {
		t.Errorf("Expected groups Legs, Chest, General in order:\n%s", out)
	}
	if strings.Count(out, "[Legs]") != 1 {
		t.Error("Expected Legs exercises under a single heading")
	}
	if !(strings.Index(out, "Squat") < strings.Index(out, "Lunge") && strings.Index(out, "Lunge") < chest) {
		t.Errorf("Expected both leg exercises before the chest group:\n%s", out)
	}
}

func TestPlanDietTab(t *testing.T) {
	var sb strings.Builder
	if err := Plan(&sb, testPlan(), TabDiet); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	out := sb.String()

	last := -1
	for _, label := range []string{"Breakfast: Oats", "Lunch: Rajma", "Snack: Chana", "Dinner: Khichdi", "Post-Workout: Shake"} {
		i := strings.Index(out, label)
		if i <= last {
			t.Fatalf("Expected %q after previous meal:\n%s", label, out)
		}
		last = i
	}
	if strings.Contains(out, "## Workout") {
		t.Error("Diet tab should not include the workout")
	}
}

func TestPlanAllTabs(t *testing.T) {
	var sb strings.Builder
	if err := Plan(&sb, testPlan(), TabAll); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	out := sb.String()
	if strings.Index(out, "## Workout") > strings.Index(out, "## Diet") {
		t.Error("Expected workout before diet")
	}
}
