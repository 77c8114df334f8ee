// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ollama

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"prose around", "Ecco il risultato:\n{\"a\":1}\nSpero sia utile.", `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"brace in string", `{"note":"usa {le} graffe"}`, `{"note":"usa {le} graffe"}`},
		{"escaped quote in string", `{"s":"a\"}b"}`, `{"s":"a\"}b"}`},
		{"first object wins", `{"a":1} {"b":2}`, `{"a":1}`},
		{"unbalanced", `{"a":1`, ""},
		{"no object", "nessun json qui", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestParseObject(t *testing.T) {
	var v struct {
		Norma string `json:"norma"`
	}
	err := ParseObject("Risposta:\n```json\n{\"norma\": \"ISO 9001\"}\n```", &v)
	require.NoError(t, err)
	assert.Equal(t, "ISO 9001", v.Norma)
}

func TestParseObjectRepairsMalformedJSON(t *testing.T) {
	// Trailing comma and single quotes are typical model output defects.
	var v struct {
		Items []string `json:"items"`
	}
	err := ParseObject(`{"items": ["a", "b",],}`, &v)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Items)
}

func TestParseObjectNoJSON(t *testing.T) {
	var v map[string]any
	err := ParseObject("mi dispiace, non posso aiutarti", &v)
	assert.Error(t, err)
}
