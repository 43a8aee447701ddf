package core

import (
	"fmt"
	"regexp"
	"strings"
)

// spamKeywords is the fixed set of spam-indicative words and phrases used to
// gate LLM calls. Commercial, urgency, phishing and "this isn't spam"
// disclaimer terms.
var spamKeywords = []string{
	"free", "cash", "money", "earn", "credit", "debt", "loan", "discount", "sale",
	"investment", "million", "billion", "bonus", "prize", "giveaway", "hidden",
	"fees", "act now", "call now", "apply now", "limited time", "offer expires",
	"hurry", "urgent", "immediate", "don't miss out", "final notice", "last chance",
	"while supplies last", "click here", "click below", "download now", "lose weight",
	"miracle cure", "fat burning", "viagra", "xanax", "cialis", "all-natural",
	"clinically proven", "guaranteed", "100%", "amazing", "incredible",
	"revolutionary", "unbelievable", "life-changing", "breakthrough", "no obligation",
	"risk-free", "verify your account", "account update", "confirm identity",
	"password", "security breach", "suspicious activity", "dear friend",
	"dear customer", "to whom it may concern", "you have been selected",
	"special invitation", "multi-level marketing", "work from home",
	"this isn't spam", "not junk",
}

// PreFilter is a deterministic keyword gate run before any LLM call
type PreFilter struct {
	pattern *regexp.Regexp
}

// NewPreFilter builds a pre-filter from the fixed keyword set
func NewPreFilter() *PreFilter {
	f, err := newPreFilter(spamKeywords)
	if err != nil {
		// The built-in keyword list is static and non-empty
		panic(err)
	}
	return f
}

func newPreFilter(keywords []string) (*PreFilter, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("pre-filter requires at least one keyword")
	}

	escaped := make([]string, len(keywords))
	for i, keyword := range keywords {
		if keyword == "" {
			return nil, fmt.Errorf("pre-filter keyword %d is empty", i)
		}
		// Escape so keywords like "100%" match literally
		escaped[i] = regexp.QuoteMeta(keyword)
	}

	pattern, err := regexp.Compile("(?i)" + strings.Join(escaped, "|"))
	if err != nil {
		return nil, fmt.Errorf("failed to compile pre-filter pattern: %w", err)
	}

	return &PreFilter{pattern: pattern}, nil
}

// Suspect reports whether any keyword occurs in the subject or snippet.
// Matching is case-insensitive and has no side effects.
func (f *PreFilter) Suspect(subject, snippet string) bool {
	return f.pattern.MatchString(subject + " " + snippet)
}
