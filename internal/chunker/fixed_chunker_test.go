package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedChunker(t *testing.T) {
	tests := []struct {
		name string
		size int
		in   string
		want []string
	}{
		{"empty", 3, "", nil},
		{"shorter than size", 10, "abc", []string{"abc"}},
		{"exact multiple", 2, "abcd", []string{"ab", "cd"}},
		{"remainder", 3, "abcdefg", []string{"abc", "def", "g"}},
		{"multibyte runes", 2, "héllo", []string{"hé", "ll", "o"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFixedChunker(tt.size).Chunk(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, strings.Join(got, ""))
		})
	}
}

func TestFixedChunkerDefaultSize(t *testing.T) {
	assert.Equal(t, 200, NewFixedChunker(0).Size())
}
