// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace runs", "a  b\t\tc\n\nd", "a b c d"},
		{"strips stray symbols", "cap. €10.000 ©2024 «srl»", "cap. 10.000 2024 srl"},
		{"keeps code punctuation", "C.F.: 01234567890 (REA MI-123/456)", "C.F.: 01234567890 (REA MI-123/456)"},
		{"keeps accented letters", "società di qualità", "società di qualità"},
		{"trims ends", "  padded  ", "padded"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeLinesPreservesBreaks(t *testing.T) {
	in := "DENOMINAZIONE:  ACME € SRL\n\nsecond   line"
	want := "DENOMINAZIONE: ACME SRL\n\nsecond line"
	assert.Equal(t, want, NormalizeLines(in))
}

func TestDedup(t *testing.T) {
	in := []string{"a", "b", "a", "", "c", "b"}
	assert.Equal(t, []string{"a", "b", "c"}, Dedup(in))
	assert.Empty(t, Dedup(nil))
}
