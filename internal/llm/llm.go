package llm

import (
	"context"
	"errors"
	"fmt"

	"ai-trainer/internal/shared"

	"github.com/google/generative-ai-go/genai"
)

// ErrMissingAPIKey is returned before any request is made when the provider
// credential is not configured.
var ErrMissingAPIKey = errors.New("missing AI provider API key")

// ErrNoContent is returned when the provider answered but produced no text.
var ErrNoContent = errors.New("no content generated")

// APIError is a non-success HTTP answer from a provider. Body holds the raw
// response body for diagnostics.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error: status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// GenerationConfig shapes every call a client makes. A nil ResponseSchema
// means free-form text.
type GenerationConfig struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	ResponseSchema  *genai.Schema
}
