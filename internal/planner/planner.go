package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-trainer/internal/llm"
	"ai-trainer/internal/shared"

	"github.com/google/uuid"
)

const (
	agentName = "Trainer"

	DefaultTemperature     float32 = 0.4
	DefaultMaxOutputTokens int32   = 4096
)

var (
	// ErrNoResponse means the provider returned no text at all.
	ErrNoResponse = errors.New("no response from AI")
	// ErrInvalidOutput means the text was not JSON or did not fit the plan types.
	ErrInvalidOutput = errors.New("AI returned invalid output")
	// ErrIncompletePlan is matched by every *IncompletePlanError.
	ErrIncompletePlan = errors.New("AI returned an incomplete plan. Please try again")
)

// IncompletePlanError lists the required field paths the response lacked.
type IncompletePlanError struct {
	Missing []string
}

func (e *IncompletePlanError) Error() string {
	return fmt.Sprintf("%s (missing: %s)", ErrIncompletePlan, strings.Join(e.Missing, ", "))
}

func (e *IncompletePlanError) Is(target error) bool {
	return target == ErrIncompletePlan
}

// GenerationConfig returns the provider settings plan generation needs.
func GenerationConfig(model string) llm.GenerationConfig {
	return llm.GenerationConfig{
		Model:           model,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		ResponseSchema:  PlanSchema(),
	}
}

type GenerationResult struct {
	Plan *FitnessPlan
	Meta shared.AgentMeta
}

// Planner turns preferences into a validated FitnessPlan.
type Planner struct {
	textGen llm.TextGenerator
}

// NewPlanner creates a new Planner instance. textGen should be configured
// with GenerationConfig so the provider enforces the plan schema.
func NewPlanner(textGen llm.TextGenerator) *Planner {
	return &Planner{textGen: textGen}
}

// GeneratePlan makes exactly one provider call and returns a plan only if
// it passes structural validation. It never retries.
func (p *Planner) GeneratePlan(ctx context.Context, prefs UserPreferences) (GenerationResult, error) {
	start := time.Now()
	meta := shared.AgentMeta{AgentName: agentName, RequestID: uuid.NewString()}

	if p.textGen == nil {
		return GenerationResult{Meta: meta}, llm.ErrMissingAPIKey
	}

	prefs, err := prefs.Normalize()
	if err != nil {
		return GenerationResult{Meta: meta}, err
	}

	prompt, err := buildPlanPrompt(prefs)
	if err != nil {
		return GenerationResult{Meta: meta}, fmt.Errorf("failed to build plan prompt: %w", err)
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			return GenerationResult{Meta: meta}, ErrNoResponse
		}
		return GenerationResult{Meta: meta}, fmt.Errorf("plan generation request failed: %w", err)
	}

	if strings.TrimSpace(resp.Content) == "" {
		return GenerationResult{Meta: meta}, ErrNoResponse
	}

	result, err := ValidatePlanJSON([]byte(resp.Content))
	if err != nil {
		log.Printf("Invalid JSON from AI (request %s): %s", meta.RequestID, resp.Content)
		return GenerationResult{Meta: meta}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if !result.Valid() {
		log.Printf("Incomplete plan from AI (request %s), missing %v", meta.RequestID, result.Missing)
		return GenerationResult{Meta: meta}, &IncompletePlanError{Missing: result.Missing}
	}

	return GenerationResult{Plan: result.Plan, Meta: meta}, nil
}
