package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mailsift/mailsift/internal/auth"
	"github.com/mailsift/mailsift/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() *auth.Service {
	v := config.NewEmptyViper()
	v.Set("google.client_id", "test-client-id")
	v.Set("google.client_secret", "test-client-secret")
	v.Set("google.redirect_url", "http://localhost:5000/auth/callback")
	v.Set("google.opener_origin", "http://localhost:3000")
	return auth.NewService(config.NewFromViper(v), zap.NewNop())
}

func TestGoogleAuthRedirect(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, GoogleAuthHandler(newAuthService())(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.True(t, strings.HasPrefix(location, "https://accounts.google.com/"))
	assert.Contains(t, location, "client_id=test-client-id")
}

func TestCallbackConsentDenied(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, CallbackHandler(newAuthService(), zap.NewNop())(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_denied")
}

func TestCallbackMissingCode(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, CallbackHandler(newAuthService(), zap.NewNop())(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing code")
}
