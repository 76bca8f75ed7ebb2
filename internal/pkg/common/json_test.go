package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"prose around object", "Sure!\n{\"a\": 1}\nEnjoy.", `{"a": 1}`},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"nested braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`},
		{"no braces", "nothing here", ""},
		{"only open brace", "{ unterminated", ""},
		{"brace order reversed", "} before {", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSONObject(tc.input))
		})
	}
}

func TestParseJSON(t *testing.T) {
	t.Run("trailing tokens are rejected", func(t *testing.T) {
		var v map[string]interface{}
		err := ParseJSON(`{"a": 1} {"b": 2}`, &v)
		assert.Error(t, err)
	})

	t.Run("numbers survive as json.Number", func(t *testing.T) {
		var v map[string]interface{}
		require.NoError(t, ParseJSON(`{"n": 12345678901234567890}`, &v))
		assert.Equal(t, json.Number("12345678901234567890"), v["n"])
	})
}
