package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates text or schema-constrained JSON from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider uses its native structured output mechanism and
	// Content holds JSON validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Quiz generation and answer phrasing
	// both send a single user message.
	Messages []Message

	// Schema constrains the output. When nil, Content is the raw text
	// encoded as a JSON string.
	Schema *Schema

	MaxTokens int

	// Temperature ranges 0.0 to 1.0; zero when unset.
	Temperature float64
}

// UserRequest builds a single-turn request.
func UserRequest(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name is the tool name for Anthropic and the schema name for OpenAI,
	// kebab-case, e.g. "visit-quiz".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as plain text. Unstructured responses are JSON
// strings and are decoded; anything else is returned verbatim.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(r.Content))
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
