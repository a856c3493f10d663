package planner

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompt.md
var planPrompt string

var planPromptTmpl = template.Must(template.New("plan").Parse(planPrompt))

var cuisineNotes = map[string]string{
	"Eggetarian": "Vegetarian but eat Eggs",
}

type planPromptData struct {
	UserPreferences
	CuisineNote string
}

func buildPlanPrompt(prefs UserPreferences) (string, error) {
	var buf bytes.Buffer
	err := planPromptTmpl.Execute(&buf, planPromptData{
		UserPreferences: prefs,
		CuisineNote:     cuisineNotes[prefs.Cuisine],
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
