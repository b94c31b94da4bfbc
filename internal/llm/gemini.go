package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// geminiBlocked lists finish reasons that mean the candidate was withheld.
var geminiBlocked = map[genai.FinishReason]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}

// GeminiProvider generates quizzes and answers with Google Gemini. The
// backend's quiz endpoint is also Gemini-backed, so this gives the
// closest match to backend-generated questions.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(req.Messages), p.config(ctx, req))
	if err != nil {
		return nil, geminiError(ctx, err)
	}

	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, newError(ctx, ProviderGemini, KindBlocked,
			fmt.Errorf("prompt blocked: %s %s", fb.BlockReason, fb.BlockReasonMessage))
	}
	if len(result.Candidates) == 0 {
		return nil, invalidf(ctx, ProviderGemini, nil, "no candidates")
	}
	finish := result.Candidates[0].FinishReason
	if geminiBlocked[finish] {
		return nil, newError(ctx, ProviderGemini, KindBlocked, fmt.Errorf("candidate withheld: %s", finish))
	}

	stop := stopEnd
	if finish == "MAX_TOKENS" {
		stop = stopMaxTokens
	}
	content, err := finishContent(ctx, ProviderGemini, req, result.Text(), stop)
	if err != nil {
		return nil, err
	}

	resp := &Response{Content: content, Model: p.model, StopReason: stop}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string { return p.model }

func (p *GeminiProvider) config(ctx context.Context, req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: int32(maxTokens(ctx, req))}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}
	return cfg
}

func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}}
	}
	return out
}

// buildGeminiSchema converts the JSON Schema subset used by the quiz
// schema into a genai.Schema.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiType(t)
	}
	s.Description, _ = def["description"].(string)

	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			if pd, ok := v.(map[string]any); ok {
				s.Properties[k] = buildGeminiSchema(pd)
			}
		}
	}
	s.Required = schemaStrings(def["required"])
	s.Enum = schemaStrings(def["enum"])

	if items, ok := def["items"].(map[string]any); ok {
		s.Items = buildGeminiSchema(items)
	}
	if n, ok := schemaInt(def["minItems"]); ok {
		s.MinItems = &n
	}
	if n, ok := schemaInt(def["maxItems"]); ok {
		s.MaxItems = &n
	}
	if v, ok := def["minimum"].(float64); ok {
		s.Minimum = &v
	} else if n, ok := schemaInt(def["minimum"]); ok {
		f := float64(n)
		s.Minimum = &f
	}
	return s
}

// schemaStrings reads a string list that may be []string in Go
// definitions or []any after JSON decoding.
func schemaStrings(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		var out []string
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// schemaInt reads an integer keyword that may be an int literal in Go
// definitions or a float64 after JSON decoding.
func schemaInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func geminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func geminiError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return newError(ctx, ProviderGemini, statusKind(apiErr.Code), err)
	}
	return newError(ctx, ProviderGemini, KindUnavailable, err)
}
