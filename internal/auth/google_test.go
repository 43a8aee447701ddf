package auth

import (
	"net/url"
	"strings"
	"testing"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()
	v := config.NewEmptyViper()
	v.Set("google.client_id", "test-client-id")
	v.Set("google.client_secret", "test-client-secret")
	v.Set("google.redirect_url", "http://localhost:5000/auth/callback")
	v.Set("google.opener_origin", "http://localhost:3000")
	return NewService(config.NewFromViper(v), zap.NewNop())
}

func TestConsentURL(t *testing.T) {
	svc := newTestAuthService(t)

	raw := svc.ConsentURL("state-token")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "test-client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:5000/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "state-token", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "true", q.Get("include_granted_scopes"))

	scopes := q.Get("scope")
	assert.Contains(t, scopes, "openid")
	assert.Contains(t, scopes, "email")
	assert.Contains(t, scopes, "profile")
	assert.Contains(t, scopes, "https://www.googleapis.com/auth/gmail.readonly")
	assert.NotContains(t, scopes, "gmail.modify", "only read-only mail access may be requested")

	assert.True(t, strings.HasPrefix(raw, "https://accounts.google.com/"))
}

func TestOpenerOrigin(t *testing.T) {
	svc := newTestAuthService(t)
	assert.Equal(t, "http://localhost:3000", svc.OpenerOrigin())
}
