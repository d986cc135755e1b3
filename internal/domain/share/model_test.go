package share_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkdrop/internal/domain/share"
)

func TestDecodeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "https://example.com/page", "https://example.com/page"},
		{"percent encoded path", "https://example.com/a%20b", "https://example.com/a b"},
		{"encoded query chars", "https://example.com/search%3Fq%3Dgo", "https://example.com/search?q=go"},
		{"surrounding whitespace", "  https://example.com  ", "https://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := share.DecodeURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"truncated escape", "https://example.com/a%2"},
		{"relative", "/just/a/path"},
		{"no host", "https://"},
		{"not a url", "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := share.DecodeURL(tt.raw)
			require.Error(t, err)
			assert.True(t, share.IsErrParse(err))
		})
	}
}
