package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOk bool
	}{
		{name: "bare object", input: `{"a":1}`, want: `{"a":1}`, wantOk: true},
		{name: "object in prose", input: `Sure! Here you go: {"a":{"b":2}} hope it helps`, want: `{"a":{"b":2}}`, wantOk: true},
		{name: "array", input: `result: ["x","y"] done`, want: `["x","y"]`, wantOk: true},
		{name: "code fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`, wantOk: true},
		{name: "braces in strings", input: `{"s":"} not the end {"}`, want: `{"s":"} not the end {"}`, wantOk: true},
		{name: "escaped quote", input: `{"s":"say \"hi\" }"}`, want: `{"s":"say \"hi\" }"}`, wantOk: true},
		{name: "stray quote in prose", input: `the model said "hmm {"a":1}`, want: `{"a":1}`, wantOk: true},
		{name: "multiline", input: "JSON:\n{\n  \"a\": [1,\n 2]\n}\n", want: "{\n  \"a\": [1,\n 2]\n}", wantOk: true},
		{name: "first of two", input: `{"a":1} and {"b":2}`, want: `{"a":1}`, wantOk: true},
		{name: "mismatched then valid", input: `{ ] {"ok":true}`, want: `{"ok":true}`, wantOk: true},
		{name: "unterminated", input: `{"a":1`, wantOk: false},
		{name: "no json", input: "I cannot classify this", wantOk: false},
		{name: "empty", input: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := First(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates(`a {"x":1} b [2,3] c {"y":{"z":4}}`)
	assert.Equal(t, []string{`{"x":1}`, `[2,3]`, `{"y":{"z":4}}`}, got)
	assert.Empty(t, Candidates("nothing here"))
}

func TestStripTrailingCommas(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `{"a":1,}`, want: `{"a":1}`},
		{input: `[1,2,]`, want: `[1,2]`},
		{input: "{\"a\":[1,\n],\n}", want: "{\"a\":[1\n]\n}"},
		{input: `{"s":",}"}`, want: `{"s":",}"}`},
		{input: `{"a":1,"b":2}`, want: `{"a":1,"b":2}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripTrailingCommas(tt.input), tt.input)
	}
}

func TestExtract(t *testing.T) {
	v, err := Extract(`{"a":1,}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)

	v, err = Extract(`intents: ["events","budget",]`)
	require.NoError(t, err)
	assert.Equal(t, []any{"events", "budget"}, v)

	_, err = Extract("I cannot classify this")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = Extract(`{"a": nope}`)
	assert.Error(t, err)
}

func TestExtractObject(t *testing.T) {
	m, err := ExtractObject(`JSON: {"intents":["events"],"entities":{"where":"Tokyo"}}`)
	require.NoError(t, err)
	assert.Equal(t, []any{"events"}, m["intents"])

	_, err = ExtractObject(`["events"]`)
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestObjectOrEmpty(t *testing.T) {
	assert.Equal(t, map[string]any{}, ObjectOrEmpty("I cannot classify this"))
	assert.Equal(t, map[string]any{}, ObjectOrEmpty(`[1,2]`))
	assert.Equal(t, map[string]any{}, ObjectOrEmpty(`{"a": }`))
	assert.Equal(t, map[string]any{"a": float64(1)}, ObjectOrEmpty(`{"a":1,}`))
}
