package core

import (
	"time"
)

// Message is the subset of a Gmail message that classification works on.
// The snippet is the provider-truncated excerpt, never the full body.
type Message struct {
	ID       string
	ThreadID string
	Subject  string
	From     string
	Snippet  string
}

// Classification is the verdict for a single message. IdentifiedLink is nil
// whenever HasUnsubscribeLink is false.
type Classification struct {
	IsSpam             bool
	Reason             string
	HasUnsubscribeLink bool
	IdentifiedLink     *string
}

// AnalyzedMessage pairs a message with its classification
type AnalyzedMessage struct {
	Message        Message
	Classification Classification
}

// Summary aggregates the counters of one analysis run
type Summary struct {
	TotalScannedLocally         int
	TotalSuspectedByLocalFilter int
	TotalConfirmedSpamByAI      int
}

// AnalysisResult is the full outcome of one inbox analysis
type AnalysisResult struct {
	Spam    []AnalyzedMessage
	Other   []AnalyzedMessage
	Summary Summary
}

// CacheEntry stores a previously computed classification for a message ID
type CacheEntry struct {
	MessageID      string
	Classification Classification
	LastSeen       time.Time
	ExpiresAt      time.Time
}
