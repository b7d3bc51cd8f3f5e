package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		found    bool
	}{
		{
			name:     "Bare object",
			raw:      `{"a":1}`,
			expected: `{"a":1}`,
			found:    true,
		},
		{
			name:     "Object wrapped in prose",
			raw:      "Sure, here you go:\n{\"a\":1}\nLet me know if you need more.",
			expected: `{"a":1}`,
			found:    true,
		},
		{
			name:     "Code fence",
			raw:      "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
			found:    true,
		},
		{
			name:     "Nested objects stay intact",
			raw:      `{"a":{"b":2}} trailing`,
			expected: `{"a":{"b":2}}`,
			found:    true,
		},
		{
			name:     "Braces inside strings are ignored",
			raw:      `{"text":"use {curly} braces"}`,
			expected: `{"text":"use {curly} braces"}`,
			found:    true,
		},
		{
			name:     "Escaped quote inside string",
			raw:      `{"text":"a \" b }"}`,
			expected: `{"text":"a \" b }"}`,
			found:    true,
		},
		{
			name:  "No object",
			raw:   "plain refusal text",
			found: false,
		},
		{
			name:  "Unbalanced object",
			raw:   `{"a":1`,
			found: false,
		},
		{
			name:  "Empty input",
			raw:   "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstJSONObject(tt.raw)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFirstJSONObject_PicksFirstOfSeveral(t *testing.T) {
	got, ok := FirstJSONObject(`{"a":1} {"b":2}`)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, got)
}
