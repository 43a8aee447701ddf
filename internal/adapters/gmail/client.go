package gmail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mailsift/mailsift/internal/core"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const user = "me"

// Provider fetches message summaries from the Gmail API. A fresh service is
// built per call because the bearer token arrives with each request and is
// never retained.
type Provider struct {
	logger *zap.Logger
	opts   []option.ClientOption
}

// NewProvider creates a new Gmail provider. Extra client options are appended
// to every service build; tests use them to point at a fake endpoint.
func NewProvider(logger *zap.Logger, opts ...option.ClientOption) *Provider {
	return &Provider{
		logger: logger,
		opts:   opts,
	}
}

// FetchMessages lists up to maxCount recent messages and fetches the
// metadata needed for classification (Subject, From, snippet). A failure of
// the listing call is fatal; a failure fetching one message's details only
// skips that message.
func (p *Provider) FetchMessages(ctx context.Context, token string, maxCount int64) ([]core.Message, error) {
	srv, err := p.newService(ctx, token)
	if err != nil {
		return nil, &core.ProviderError{Details: "failed to create Gmail service", Err: err}
	}

	list, err := srv.Users.Messages.List(user).MaxResults(maxCount).Context(ctx).Do()
	if err != nil {
		return nil, mapListError(err)
	}

	if len(list.Messages) == 0 {
		p.logger.Info("No messages found in mailbox")
		return []core.Message{}, nil
	}

	messages := make([]core.Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		detail, err := srv.Users.Messages.Get(user, ref.Id).
			Format("metadata").
			MetadataHeaders("Subject", "From").
			Context(ctx).
			Do()
		if err != nil {
			p.logger.Warn("Failed to fetch message details, skipping",
				zap.String("message_id", ref.Id),
				zap.Error(err))
			continue
		}
		messages = append(messages, toMessage(detail))
	}

	p.logger.Info("Fetched message details",
		zap.Int("listed", len(list.Messages)),
		zap.Int("fetched", len(messages)))

	return messages, nil
}

func (p *Provider) newService(ctx context.Context, token string) (*gmail.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, p.opts...)
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return srv, nil
}

// toMessage extracts the classification-relevant fields from a metadata-only
// Gmail message
func toMessage(msg *gmail.Message) core.Message {
	out := core.Message{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  "No Subject",
		From:     "Unknown Sender",
		Snippet:  msg.Snippet,
	}
	if msg.Payload == nil {
		return out
	}
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			out.Subject = header.Value
		case "From":
			out.From = header.Value
		}
	}
	return out
}

// mapListError distinguishes a rejected credential from other provider
// failures so the HTTP layer can signal re-authentication
func mapListError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 401 {
			return &core.AuthError{Details: apiErr.Message, Err: err}
		}
		return &core.ProviderError{Details: apiErr.Message, Err: err}
	}

	msg := err.Error()
	if strings.Contains(msg, "invalid_grant") ||
		strings.Contains(msg, "Token has been expired or revoked") ||
		strings.Contains(msg, "Invalid Credentials") {
		return &core.AuthError{Details: msg, Err: err}
	}
	return &core.ProviderError{Details: msg, Err: err}
}
