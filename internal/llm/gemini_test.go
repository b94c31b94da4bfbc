package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"correct":  map[string]any{"type": "integer", "minimum": 0},
			"band":     map[string]any{"type": "string", "enum": []any{"excellent", "good"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": float64(4),
			},
		},
		"required": []any{"question", "options"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["correct"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for correct, got %s", schema.Properties["correct"].Type)
	}
	if m := schema.Properties["correct"].Minimum; m == nil || *m != 0 {
		t.Fatalf("expected minimum 0, got %v", m)
	}
	if len(schema.Properties["band"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(schema.Properties["band"].Enum))
	}
	opts := schema.Properties["options"]
	if opts.Type != "ARRAY" || opts.Items.Type != "STRING" {
		t.Fatalf("unexpected options schema: %+v", opts)
	}
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Fatalf("expected 4..4 items, got %v..%v", opts.MinItems, opts.MaxItems)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
