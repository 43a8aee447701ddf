package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncate(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "short", tp.Truncate("short", 100))
	assert.Equal(t, "abcde", tp.Truncate("abcdefgh", 5))
	assert.Equal(t, "unlimited", tp.Truncate("unlimited", 0))

	// Never splits a multi-byte rune
	got := tp.Truncate("héllo", 2)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "h", got)
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "clean", tp.SanitizeUTF8("clean"))

	dirty := "ok" + string([]byte{0xff, 0xfe}) + "end"
	got := tp.SanitizeUTF8(dirty)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "okend", got)
}

func TestPrepareSnippet(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	long := strings.Repeat("a", 100)
	got := tp.PrepareSnippet(long+string([]byte{0xff}), 50)
	assert.Equal(t, strings.Repeat("a", 50), got)
}
