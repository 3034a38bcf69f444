package charset

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSharp(t *testing.T) {
	tests := []struct {
		name   string
		code   byte
		want   string
		wantOK bool
	}{
		{"space", 0x20, " ", true},
		{"upper case", 'A', "A", true},
		{"tilde", 0x7E, "~", true},
		{"lower a", 161, "a", true},
		{"lower y", 189, "y", true},
		{"control", 0x0D, "", false},
		{"delete", 0x7F, "", false},
		{"unmapped high", 0xFF, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Sharp(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestSharpLowerCaseComplete(t *testing.T) {
	letters := map[string]bool{}
	for code := range sharpLower {
		s, ok := Sharp(code)
		assert.True(t, ok)
		letters[s] = true
	}
	assert.Len(t, letters, 26)
}

func TestSharpControl(t *testing.T) {
	s, ok := SharpControl(0x13)
	assert.True(t, ok)
	assert.Equal(t, "→", s)

	_, ok = SharpControl('A')
	assert.False(t, ok)
}
