package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizObject = `{"quiz":[
	{"question":"Q1","options":["a","b","c","d"],"correct":"c"},
	{"question":"Q2","options":["w","x","y","z"],"correct":0}
]}`

func TestDecodeQuiz_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", quizObject},
		{"array", `[` + quizObject + `]`},
		{"double encoded array", `"[{\"quiz\":[{\"question\":\"Q1\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct\":\"c\"},{\"question\":\"Q2\",\"options\":[\"w\",\"x\",\"y\",\"z\"],\"correct\":0}]}]"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := DecodeQuiz([]byte(tt.body))
			require.NoError(t, err)
			require.Len(t, qs, 2)
			assert.Equal(t, 2, qs[0].Correct)
			assert.Equal(t, 0, qs[1].Correct)
		})
	}
}

func TestDecodeQuiz_CorrectText(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		want    int
		wantErr bool
	}{
		{"exact", `"Ten pounds"`, 2, false},
		{"case and punctuation", `"ten pounds."`, 2, false},
		{"letter", `"B"`, 1, false},
		{"index", `3`, 3, false},
		{"index out of range", `4`, 0, true},
		{"fractional index", `1.5`, 0, true},
		{"unknown text", `"Fifty pounds"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"quiz":[{"question":"Limit?","options":["None","Five pounds","Ten pounds","Twenty pounds"],"correct":` + tt.correct + `}]}`
			qs, err := DecodeQuiz([]byte(body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, qs[0].Correct)
		})
	}
}

func TestDecodeQuiz_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"empty array", `[]`},
		{"no quiz key", `{"questions":[]}`},
		{"empty quiz", `{"quiz":[]}`},
		{"three options", `{"quiz":[{"question":"q","options":["a","b","c"],"correct":0}]}`},
		{"missing question", `{"quiz":[{"options":["a","b","c","d"],"correct":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuiz([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeHint(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantID  string
		wantErr bool
	}{
		{"video_id", `{"start":1.5,"end":9,"video_id":"v1"}`, "v1", false},
		{"id alias", `{"start":0,"end":9,"id":"v2"}`, "v2", false},
		{"video_id wins", `{"start":0,"end":9,"id":"v2","video_id":"v1"}`, "v1", false},
		{"empty window", `{"start":5,"end":5,"id":"v"}`, "", true},
		{"negative start", `{"start":-1,"end":5,"id":"v"}`, "", true},
		{"missing end", `{"start":1}`, "", true},
		{"string times", `{"start":"1","end":"2"}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := DecodeHint([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, h.VideoID)
			assert.Less(t, h.Start, h.End)
		})
	}
}

func TestDecodeTextQuery(t *testing.T) {
	resp, err := DecodeTextQuery([]byte(`"Take it every morning."`))
	require.NoError(t, err)
	assert.Equal(t, "Take it every morning.", ResponseText(resp))

	resp, err = DecodeTextQuery([]byte(`{"answer":" Rest. ","confidence":0.8}`))
	require.NoError(t, err)
	assert.Equal(t, "Rest.", ResponseText(resp))

	resp, err = DecodeTextQuery([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, "", ResponseText(resp))

	_, err = DecodeTextQuery([]byte(`null`))
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	msg, ok := errorMessage([]byte(`{"error":"boom"}`))
	assert.True(t, ok)
	assert.Equal(t, "boom", msg)

	_, ok = errorMessage([]byte(`{"start":1}`))
	assert.False(t, ok)

	_, ok = errorMessage([]byte(`"just a string"`))
	assert.False(t, ok)
}
