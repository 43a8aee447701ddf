package core

import (
	"context"
	"time"
)

// LLMClient defines the interface for the language model backends
type LLMClient interface {
	// ClassifyEmail decides whether the given subject and snippet look like
	// spam and whether an unsubscribe link is present
	ClassifyEmail(ctx context.Context, subject, snippet string) (*Classification, error)
}

// MailProvider defines the interface for fetching message summaries from the
// mail provider. The token is the caller's bearer credential and lives only
// for the duration of the call.
type MailProvider interface {
	FetchMessages(ctx context.Context, token string, maxCount int64) ([]Message, error)
}

// CacheRepository defines the interface for caching classifications by
// message ID
type CacheRepository interface {
	// Get retrieves a cached classification for a message
	Get(ctx context.Context, messageID string) (*Classification, bool)

	// Set stores a classification
	Set(ctx context.Context, messageID string, c *Classification, ttl time.Duration)

	// Delete removes a cache entry
	Delete(ctx context.Context, messageID string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
