package planner

import "strings"

// GeneralMuscleGroup labels exercises that carry no target muscle.
const GeneralMuscleGroup = "General"

// MealSlots lists the diet slots in display order. Every plan has all five.
var MealSlots = []string{"breakfast", "lunch", "snack", "dinner", "postWorkout"}

// Exercise is a single movement in the workout.
type Exercise struct {
	TargetMuscle string `json:"targetMuscle"`
	Name         string `json:"name"`
	Sets         string `json:"sets"`
	Reps         string `json:"reps"`
	Rest         string `json:"rest"`
	Tips         string `json:"tips"`
}

// Meal is one diet slot.
type Meal struct {
	MealName string   `json:"mealName"`
	Items    []string `json:"items"`
	Macros   string   `json:"macros"`
}

// NutritionStats are free-text magnitudes such as "2400 kcal" or "150g".
type NutritionStats struct {
	DailyCalories string `json:"dailyCalories"`
	Protein       string `json:"protein"`
	Carbs         string `json:"carbs"`
	Fats          string `json:"fats"`
}

type Workout struct {
	SplitName string     `json:"splitName"`
	Warmup    []string   `json:"warmup"`
	Exercises []Exercise `json:"exercises"`
	Cooldown  []string   `json:"cooldown"`
}

type Diet struct {
	Breakfast   Meal `json:"breakfast"`
	Lunch       Meal `json:"lunch"`
	Snack       Meal `json:"snack"`
	Dinner      Meal `json:"dinner"`
	PostWorkout Meal `json:"postWorkout"`
}

// FitnessPlan is the accepted result of one generation call. It is never
// modified after acceptance; the next successful generation replaces it.
type FitnessPlan struct {
	Title          string         `json:"title"`
	Overview       string         `json:"overview"`
	NutritionStats NutritionStats `json:"nutritionStats"`
	Workout        Workout        `json:"workout"`
	Diet           Diet           `json:"diet"`
}

// SlotMeal pairs a diet slot name with its meal.
type SlotMeal struct {
	Slot string
	Meal Meal
}

// Meals returns the five meals in MealSlots order.
func (d Diet) Meals() []SlotMeal {
	return []SlotMeal{
		{Slot: "breakfast", Meal: d.Breakfast},
		{Slot: "lunch", Meal: d.Lunch},
		{Slot: "snack", Meal: d.Snack},
		{Slot: "dinner", Meal: d.Dinner},
		{Slot: "postWorkout", Meal: d.PostWorkout},
	}
}

// MuscleGroup is a run of exercises sharing a target muscle.
type MuscleGroup struct {
	Muscle    string
	Exercises []Exercise
}

// GroupByMuscle buckets exercises by target muscle, keeping groups in
// order of first appearance and exercises in plan order.
func (w Workout) GroupByMuscle() []MuscleGroup {
	var groups []MuscleGroup
	index := make(map[string]int)

	for _, ex := range w.Exercises {
		key := strings.TrimSpace(ex.TargetMuscle)
		if key == "" {
			key = GeneralMuscleGroup
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MuscleGroup{Muscle: key})
		}
		groups[i].Exercises = append(groups[i].Exercises, ex)
	}
	return groups
}
