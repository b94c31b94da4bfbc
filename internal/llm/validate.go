package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Normalized Response.StopReason values.
const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// defaultMaxTokens applies when a request leaves MaxTokens unset and its
// purpose has no default of its own.
const defaultMaxTokens = 1024

// purposeMaxTokens holds per-feature defaults. A five-question quiz with
// options and hints needs far more room than a one-sentence answer.
var purposeMaxTokens = map[string]int{
	PurposeQuizGen: 2048,
	PurposeAnswer:  256,
}

func maxTokens(ctx context.Context, req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if n, ok := purposeMaxTokens[PurposeFrom(ctx)]; ok {
		return n
	}
	return defaultMaxTokens
}

// finishContent turns a provider's text output into Response.Content.
// Plain text is encoded as a JSON string and may be cut short. Structured
// output must be complete JSON that matches the schema; a quiz cut off at
// the token limit is reported as KindTruncated rather than retried.
func finishContent(ctx context.Context, provider string, req Request, text, stop string) (json.RawMessage, error) {
	if req.Schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, invalidf(ctx, provider, nil, "encode text: %w", err)
		}
		return b, nil
	}
	content := json.RawMessage(stripCodeFence(text))
	if stop == stopMaxTokens {
		e := newError(ctx, provider, KindTruncated, fmt.Errorf("%s output hit the token limit", req.Schema.Name))
		e.Content = content
		return nil, e
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, invalidf(ctx, provider, content, "%w", err)
	}
	return content, nil
}

// stripCodeFence removes a ```json fence some models wrap around output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// validateResponse checks raw against schema.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%s does not match schema: %w", schema.Name, err)
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, so round-trip the map to
	// normalize Go types like []string.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
