package render

import (
	"fmt"
	"io"
	"strings"

	"ai-trainer/internal/planner"
)

// Tab selects which part of the plan is shown.
type Tab string

const (
	TabWorkout Tab = "workout"
	TabDiet    Tab = "diet"
	TabAll     Tab = "all"
)

// ParseTab accepts "workout", "diet" or "all". Empty means workout, which is
// the tab shown first.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabWorkout:
		return TabWorkout, nil
	case TabDiet:
		return TabDiet, nil
	case TabAll:
		return TabAll, nil
	}
	return "", fmt.Errorf("unknown tab %q: use workout, diet or all", s)
}

var slotLabels = map[string]string{
	"breakfast":   "Breakfast",
	"lunch":       "Lunch",
	"snack":       "Snack",
	"dinner":      "Dinner",
	"postWorkout": "Post-Workout",
}

// Plan writes the header and the selected tab.
func Plan(w io.Writer, plan *planner.FitnessPlan, tab Tab) error {
	var sb strings.Builder
	writeHeader(&sb, plan)

	switch tab {
	case TabDiet:
		writeDiet(&sb, plan.Diet)
	case TabAll:
		writeWorkout(&sb, plan.Workout)
		sb.WriteString("\n")
		writeDiet(&sb, plan.Diet)
	default:
		writeWorkout(&sb, plan.Workout)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHeader(sb *strings.Builder, plan *planner.FitnessPlan) {
	sb.WriteString(fmt.Sprintf("=== %s ===\n", plan.Title))
	sb.WriteString(plan.Overview + "\n\n")

	n := plan.NutritionStats
	sb.WriteString(fmt.Sprintf("Calories: %s | Protein: %s | Carbs: %s | Fats: %s\n\n",
		n.DailyCalories, n.Protein, n.Carbs, n.Fats))
}

func writeWorkout(sb *strings.Builder, w planner.Workout) {
	sb.WriteString(fmt.Sprintf("## Workout: %s\n\n", w.SplitName))

	sb.WriteString("Warmup\n")
	for _, step := range w.Warmup {
		sb.WriteString(fmt.Sprintf("  • %s\n", step))
	}
	sb.WriteString("\n")

	for _, group := range w.GroupByMuscle() {
		sb.WriteString(fmt.Sprintf("[%s]\n", group.Muscle))
		for i, ex := range group.Exercises {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s sets x %s, rest %s\n", i+1, ex.Name, ex.Sets, ex.Reps, ex.Rest))
			if ex.Tips != "" {
				sb.WriteString(fmt.Sprintf("     tip: %s\n", ex.Tips))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Cooldown\n")
	for _, step := range w.Cooldown {
		sb.WriteString(fmt.Sprintf("  • %s\n", step))
	}
}

func writeDiet(sb *strings.Builder, d planner.Diet) {
	sb.WriteString("## Diet\n\n")
	for _, sm := range d.Meals() {
		sb.WriteString(fmt.Sprintf("%s: %s", slotLabels[sm.Slot], sm.Meal.MealName))
		if sm.Meal.Macros != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", sm.Meal.Macros))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(sm.Meal.Items, ", ")))
	}
}
