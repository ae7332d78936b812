package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFilename(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		title    string
		explicit string
		ext      string
		want     string
	}{
		{"explicit with extension kept", "T", "notes.pdf", "pdf", "notes.pdf"},
		{"explicit gains missing extension", "T", "deck", "pptx", "deck.pptx"},
		{"derived from title", "Design Patterns", "", "pdf", "Design_Patterns_20240101_120000.pdf"},
		{"punctuation stripped", "C++: A (Brief) Tour!", "", "pdf", "C_A_Brief_Tour_20240101_120000.pdf"},
		{"leading and trailing spaces trimmed", "  Hello World  ", "", "pptx", "Hello_World_20240101_120000.pptx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveFilename(tt.title, tt.explicit, tt.ext, now))
		})
	}
}
