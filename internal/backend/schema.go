package backend

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var transcriptSchema = map[string]any{
	"type":     "object",
	"required": []string{"transcript"},
	"properties": map[string]any{
		"transcript": map[string]any{"type": "string", "minLength": 1},
	},
}

var quizSchema = map[string]any{
	"type":     "object",
	"required": []string{"quiz"},
	"properties": map[string]any{
		"quiz": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"question", "options", "correct"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 4,
						"maxItems": 4,
					},
					"correct":      map[string]any{"type": []string{"integer", "string"}},
					"hint":         map[string]any{"type": "string"},
					"videoSegment": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var hintSchema = map[string]any{
	"type":     "object",
	"required": []string{"start", "end"},
	"properties": map[string]any{
		"start":    map[string]any{"type": "number", "minimum": 0},
		"end":      map[string]any{"type": "number"},
		"video_id": map[string]any{"type": "string"},
		"id":       map[string]any{"type": "string"},
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks a decoded JSON value against the named schema definition.
func validate(name string, def map[string]any, v any) error {
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://backend/%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	schemaCache.Store(name, compiled)
	return compiled, nil
}
