package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain text", "line 3", "line 3"},
		{"inline tags", "found <strong>2</strong> problems", "found 2 problems"},
		{"entities", "a &amp; b", "a & b"},
		{"breaks", "first<br>second", "first\nsecond"},
		{"paragraphs", "<p>one</p><p>two</p>", "one\ntwo"},
		{"link text kept", `see <a href="/docs">the docs</a>`, "see the docs"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strip(tt.in))
		})
	}
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"first", "second"}, Lines("first<br>second"))
	assert.Nil(t, Lines(""))
}
