package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWhitelisted(t *testing.T) {
	checker := NewChecker([]string{"Trusted.Example", " partner.example "}, nil)

	tests := []struct {
		name string
		from string
		want bool
	}{
		{"bare address", "alice@trusted.example", true},
		{"display name form", "Alice Smith <alice@trusted.example>", true},
		{"case insensitive domain", "bob@TRUSTED.EXAMPLE", true},
		{"second configured domain", "news@partner.example", true},
		{"unlisted domain", "mallory@evil.example", false},
		{"subdomain does not match", "x@sub.trusted.example", false},
		{"no at sign", "not-an-address", false},
		{"empty from", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checker.IsWhitelisted(tc.from))
		})
	}
}

func TestEmptyWhitelistMatchesNothing(t *testing.T) {
	checker := NewChecker(nil, nil)
	assert.False(t, checker.IsWhitelisted("anyone@anywhere.example"))

	checker = NewChecker([]string{"", "  "}, nil)
	assert.False(t, checker.IsWhitelisted("anyone@anywhere.example"))
}
