package models

import "time"

// AnalyzeRequest is the body of POST /gmail/analyze
type AnalyzeRequest struct {
	AccessToken string `json:"access_token"`
}

// AIAnalysis is the wire form of a classification. IdentifiedLink marshals
// to null when absent, never missing.
type AIAnalysis struct {
	IsSpam             bool    `json:"isSpam"`
	Reason             string  `json:"reason"`
	HasUnsubscribeLink bool    `json:"hasUnsubscribeLink"`
	IdentifiedLink     *string `json:"identifiedLink"`
}

// AnalyzedMessage is one message with its verdict attached
type AnalyzedMessage struct {
	MessageID  string     `json:"messageId"`
	ThreadID   string     `json:"threadId"`
	From       string     `json:"from"`
	Subject    string     `json:"subject"`
	Snippet    string     `json:"snippet"`
	AIAnalysis AIAnalysis `json:"aiAnalysis"`
}

// Summary carries the per-run counters
type Summary struct {
	TotalScannedLocally         int    `json:"totalScannedLocally"`
	TotalSuspectedByLocalFilter int    `json:"totalSuspectedByLocalFilter"`
	TotalConfirmedSpamByAI      int    `json:"totalConfirmedSpamByAI"`
	Message                     string `json:"message,omitempty"`
}

// AnalyzeResponse is the success body of POST /gmail/analyze
type AnalyzeResponse struct {
	SpamMessages  []AnalyzedMessage `json:"spamMessages"`
	OtherMessages []AnalyzedMessage `json:"otherMessages"`
	Summary       Summary           `json:"summary"`
}

// ErrorResponse is the single top-level error shape
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
