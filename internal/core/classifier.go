package core

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Classifier wraps an LLMClient with the degradation contract: it never
// fails. Any backend failure (transport error, malformed response, quota)
// yields the default negative classification with a diagnostic reason, and
// the analysis run continues.
type Classifier struct {
	llm          LLMClient
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewClassifier creates a new classifier
func NewClassifier(
	llm LLMClient,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *Classifier {
	return &Classifier{
		llm:          llm,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
	}
}

// DefaultClassification returns the safe negative verdict used whenever the
// LLM could not produce a trusted one
func DefaultClassification(reason string) Classification {
	return Classification{
		IsSpam:             false,
		Reason:             reason,
		HasUnsubscribeLink: false,
		IdentifiedLink:     nil,
	}
}

// Classify produces a verdict for one message. Empty subject and snippet
// short-circuit without touching the LLM.
func (c *Classifier) Classify(ctx context.Context, msg Message) Classification {
	if msg.Subject == "" && msg.Snippet == "" {
		return DefaultClassification("No content provided to analyze.")
	}

	if c.cacheEnabled && c.cache != nil {
		if cached, ok := c.cache.Get(ctx, msg.ID); ok {
			c.logger.Debug("Cache hit for message", zap.String("message_id", msg.ID))
			return *cached
		}
	}

	result, err := c.llm.ClassifyEmail(ctx, msg.Subject, msg.Snippet)
	if err != nil {
		c.logger.Warn("LLM classification failed, using default verdict",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return DefaultClassification(diagnosticReason(err))
	}

	// Adapters validate their own output, but never trust a link without
	// the flag set
	if !result.HasUnsubscribeLink {
		result.IdentifiedLink = nil
	}

	if c.cacheEnabled && c.cache != nil {
		c.cache.Set(ctx, msg.ID, result, c.cacheTTL)
	}

	return *result
}

// diagnosticReason builds the reason string attached to a degraded
// classification. Quota and rate-limit failures get called out so operators
// can tell billing problems from parse problems.
func diagnosticReason(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource_exhausted") ||
		strings.Contains(lower, "429") {
		return "AI provider quota or rate limit exceeded. Details: " + msg
	}
	return "Error during AI analysis: " + msg
}
