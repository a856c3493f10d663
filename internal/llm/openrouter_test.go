package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func testSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"title", "tags"},
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString, Description: "A name"},
			"tags":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	}
}

func TestOpenRouterGenerateContent(t *testing.T) {
	var gotReq chatRequest
	var gotAuth, gotReferer string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "{\"title\": \"Plan\"}"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 30, "total_tokens": 42}
		}`))
	}))
	defer srv.Close()

	client, err := NewOpenRouterClient("secret", GenerationConfig{
		Model:           "test/model",
		Temperature:     0.4,
		MaxOutputTokens: 2000,
		ResponseSchema:  testSchema(),
	}, WithOpenRouterURL(srv.URL), WithReferer("http://localhost"))
	if err != nil {
		t.Fatalf("NewOpenRouterClient failed: %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), "make a plan")
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}

	if resp.Content != `{"title": "Plan"}` {
		t.Errorf("Unexpected content: %s", resp.Content)
	}
	if resp.Usage.PromptTokens != 12 || resp.Usage.CompletionTokens != 30 || resp.Usage.Model != "test/model" {
		t.Errorf("Unexpected usage: %+v", resp.Usage)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer auth, got '%s'", gotAuth)
	}
	if gotReferer != "http://localhost" {
		t.Errorf("Expected referer header, got '%s'", gotReferer)
	}
	if gotReq.Model != "test/model" || gotReq.MaxTokens != 2000 {
		t.Errorf("Unexpected request: %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "make a plan" {
		t.Errorf("Prompt not forwarded: %+v", gotReq.Messages)
	}
	if gotReq.ResponseFormat["type"] != "json_schema" {
		t.Errorf("Expected json_schema response format, got %v", gotReq.ResponseFormat)
	}
}

func TestOpenRouterErrors(t *testing.T) {
	t.Run("MissingKey", func(t *testing.T) {
		_, err := NewOpenRouterClient("  ", GenerationConfig{})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("HTTPStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer srv.Close()

		client, _ := NewOpenRouterClient("k", GenerationConfig{Model: "m"}, WithOpenRouterURL(srv.URL))
		_, err := client.GenerateContent(context.Background(), "p")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected *APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("Expected status 429, got %d", apiErr.StatusCode)
		}
		if apiErr.Body != `{"error":"rate limited"}` {
			t.Errorf("Expected raw body in error, got '%s'", apiErr.Body)
		}
	})

	t.Run("NoChoices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		client, _ := NewOpenRouterClient("k", GenerationConfig{Model: "m"}, WithOpenRouterURL(srv.URL))
		_, err := client.GenerateContent(context.Background(), "p")
		if !errors.Is(err, ErrNoContent) {
			t.Fatalf("Expected ErrNoContent, got %v", err)
		}
	})
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```\n{\"a\":1}\n```  ", `{"a":1}`},
		{"```{\"a\":1}```", "```{\"a\":1}```"},
	}
	for _, c := range cases {
		if got := stripCodeFence(c.in); got != c.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSchemaToJSON(t *testing.T) {
	out := SchemaToJSON(testSchema())

	if out["type"] != "object" {
		t.Errorf("Expected object type, got %v", out["type"])
	}
	required, ok := out["required"].([]string)
	if !ok || len(required) != 2 {
		t.Fatalf("Expected 2 required fields, got %v", out["required"])
	}
	props := out["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	if tags["type"] != "array" {
		t.Errorf("Expected tags to be array, got %v", tags["type"])
	}
	items := tags["items"].(map[string]any)
	if items["type"] != "string" {
		t.Errorf("Expected string items, got %v", items["type"])
	}
	title := props["title"].(map[string]any)
	if title["description"] != "A name" {
		t.Errorf("Expected description to carry over, got %v", title["description"])
	}
}
