package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/recall/internal/quiz"
)

// maxDecodeDepth bounds how many layers of JSON-in-a-JSON-string are peeled.
const maxDecodeDepth = 3

// unwrapJSON decodes body, unwrapping values that were encoded as a JSON
// string holding more JSON. The quiz endpoint returns its payload this way.
func unwrapJSON(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	for i := 0; i < maxDecodeDepth; i++ {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		trimmed := strings.TrimSpace(s)
		if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			return v, nil
		}
		var inner any
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, err
		}
		v = inner
	}
	return v, nil
}

// errorMessage returns the text of an {"error": "..."} body, if that is what body is.
func errorMessage(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return "", false
	}
	var e struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == nil {
		return "", false
	}
	return *e.Error, true
}

// DecodeQuiz parses a quiz payload into questions with index answers. It
// accepts {"quiz": [...]}, an array whose first element is such an object,
// and either of those double-encoded as a JSON string. A correct answer
// given as option text is converted to its index.
func DecodeQuiz(body []byte) ([]quiz.Question, error) {
	v, err := unwrapJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}

	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return nil, errors.New("quiz payload is an empty array")
		}
		v = arr[0]
	}

	if err := validate("quiz", quizSchema, v); err != nil {
		return nil, err
	}

	// Re-encode the validated value so it can be decoded into typed structs.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Quiz []struct {
			Question     string          `json:"question"`
			Options      []string        `json:"options"`
			Correct      json.RawMessage `json:"correct"`
			Hint         string          `json:"hint"`
			VideoSegment string          `json:"videoSegment"`
		} `json:"quiz"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}

	qs := make([]quiz.Question, 0, len(payload.Quiz))
	for i, pq := range payload.Quiz {
		idx, err := correctIndex(pq.Correct, pq.Options)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		qs = append(qs, quiz.Question{
			Text:         pq.Question,
			Options:      pq.Options,
			Correct:      idx,
			Hint:         pq.Hint,
			VideoSegment: pq.VideoSegment,
		})
	}
	if err := quiz.ValidateAll(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// correctIndex resolves a correct answer given either as an option index
// or as the option text.
func correctIndex(raw json.RawMessage, options []string) (int, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n != math.Trunc(n) || n < 0 || int(n) >= len(options) {
			return 0, fmt.Errorf("correct index %v out of range", n)
		}
		return int(n), nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("correct answer is neither index nor text")
	}
	for i, o := range options {
		if o == text {
			return i, nil
		}
	}
	want := normalizeAnswer(text)
	for i, o := range options {
		if normalizeAnswer(o) == want {
			return i, nil
		}
	}
	// A bare letter refers to an option position.
	if len(want) == 1 && want[0] >= 'a' && int(want[0]-'a') < len(options) {
		return int(want[0] - 'a'), nil
	}
	return 0, fmt.Errorf("correct answer %q matches no option", text)
}

func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, ".")
}

// DecodeHint parses a clip window. The video may be named by "video_id" or
// "id", and the window must satisfy 0 <= start < end.
func DecodeHint(body []byte) (*quiz.TimingHint, error) {
	v, err := unwrapJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode hint: %w", err)
	}
	if err := validate("hint", hintSchema, v); err != nil {
		return nil, err
	}

	var payload struct {
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		VideoID string  `json:"video_id"`
		ID      string  `json:"id"`
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode hint: %w", err)
	}
	if payload.Start < 0 || payload.End <= payload.Start {
		return nil, fmt.Errorf("clip window [%v, %v] is empty or negative", payload.Start, payload.End)
	}

	id := payload.VideoID
	if id == "" {
		id = payload.ID
	}
	return &quiz.TimingHint{Start: payload.Start, End: payload.End, VideoID: id}, nil
}

// DecodeTranscript extracts the transcript text.
func DecodeTranscript(body []byte) (string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}
	if err := validate("transcript", transcriptSchema, v); err != nil {
		return "", err
	}
	return v.(map[string]any)["transcript"].(string), nil
}

// DecodeTextQuery decodes a text-query answer into an object. A bare string
// answer is returned under the "text" key; other non-object values under "data".
func DecodeTextQuery(body []byte) (map[string]any, error) {
	v, err := unwrapJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode text query: %w", err)
	}
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case string:
		return map[string]any{"text": t}, nil
	case nil:
		return nil, errors.New("empty text-query response")
	default:
		return map[string]any{"data": t}, nil
	}
}

// answerKeys are checked in order for a renderable answer.
var answerKeys = []string{"text", "answer", "response", "data", "message", "summary"}

// ResponseText returns the human-readable answer in a text-query response,
// or "" when it carries none.
func ResponseText(resp map[string]any) string {
	for _, k := range answerKeys {
		if s, ok := resp[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
