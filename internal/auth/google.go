package auth

import (
	"context"
	"fmt"

	"github.com/mailsift/mailsift/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// Service wraps the Google OAuth authorization-code flow. The analysis
// endpoints only ever see the resulting access token; no token is stored
// server-side.
type Service struct {
	oauth        *oauth2.Config
	openerOrigin string
	logger       *zap.Logger
}

// NewService creates a new OAuth service from configuration. Read-only mail
// access is the only mail scope requested.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	googleCfg := cfg.GetGoogle()

	return &Service{
		oauth: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes: []string{
				"openid",
				"email",
				"profile",
				gmail.GmailReadonlyScope,
			},
			Endpoint: google.Endpoint,
		},
		openerOrigin: googleCfg.OpenerOrigin,
		logger:       logger,
	}
}

// ConsentURL builds the provider consent-screen URL
func (s *Service) ConsentURL(state string) string {
	return s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades an authorization code for a token
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	s.logger.Info("Exchanged authorization code for access token")
	return token, nil
}

// OpenerOrigin is the origin allowed to receive the token via postMessage
func (s *Service) OpenerOrigin() string {
	return s.openerOrigin
}
