package planner

import "github.com/google/generative-ai-go/genai"

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

func mealSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"mealName", "items", "macros"},
		Properties: map[string]*genai.Schema{
			"mealName": stringSchema(""),
			"items":    stringList(),
			"macros":   stringSchema(""),
		},
	}
}

// PlanSchema describes the FitnessPlan JSON document, with the required
// fields listed at every level.
func PlanSchema() *genai.Schema {
	diet := &genai.Schema{
		Type:       genai.TypeObject,
		Required:   append([]string(nil), MealSlots...),
		Properties: map[string]*genai.Schema{},
	}
	for _, slot := range MealSlots {
		diet.Properties[slot] = mealSchema()
	}

	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"title", "overview", "nutritionStats", "workout", "diet"},
		Properties: map[string]*genai.Schema{
			"title":    stringSchema("A catchy name for the plan"),
			"overview": stringSchema("Brief strategy summary"),
			"nutritionStats": {
				Type:     genai.TypeObject,
				Required: []string{"dailyCalories", "protein", "carbs", "fats"},
				Properties: map[string]*genai.Schema{
					"dailyCalories": stringSchema(""),
					"protein":       stringSchema(""),
					"carbs":         stringSchema(""),
					"fats":          stringSchema(""),
				},
			},
			"workout": {
				Type:     genai.TypeObject,
				Required: []string{"splitName", "warmup", "exercises", "cooldown"},
				Properties: map[string]*genai.Schema{
					"splitName": stringSchema("e.g., Push Day, Full Body Power"),
					"warmup":    stringList(),
					"exercises": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type:     genai.TypeObject,
							Required: []string{"targetMuscle", "name", "sets", "reps", "rest", "tips"},
							Properties: map[string]*genai.Schema{
								"targetMuscle": stringSchema("Primary target: Chest, Legs, Back, Shoulders, Arms, Abs, etc."),
								"name":         stringSchema(""),
								"sets":         stringSchema(""),
								"reps":         stringSchema(""),
								"rest":         stringSchema(""),
								"tips":         stringSchema(""),
							},
						},
					},
					"cooldown": stringList(),
				},
			},
			"diet": diet,
		},
	}
}
