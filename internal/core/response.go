package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawClassification mirrors the JSON object the LLM is instructed to return.
// Pointer fields let us tell a missing key from a zero value.
type rawClassification struct {
	IsSpam             *bool   `json:"isSpam"`
	Reason             *string `json:"reason"`
	HasUnsubscribeLink *bool   `json:"hasUnsubscribeLink"`
	IdentifiedLink     *string `json:"identifiedLink"`
}

// ParseClassification parses and validates the raw text an LLM returned for
// the classification prompt. Models sometimes wrap the object in markdown
// code fences; those are stripped before decoding. A parse or type failure is
// returned as an error, never as a partially-trusted Classification.
func ParseClassification(raw string) (*Classification, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response text")
	}

	var parsed rawClassification
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if parsed.IsSpam == nil {
		return nil, fmt.Errorf("response is missing boolean field %q", "isSpam")
	}
	if parsed.Reason == nil {
		return nil, fmt.Errorf("response is missing string field %q", "reason")
	}
	if parsed.HasUnsubscribeLink == nil {
		return nil, fmt.Errorf("response is missing boolean field %q", "hasUnsubscribeLink")
	}

	c := &Classification{
		IsSpam:             *parsed.IsSpam,
		Reason:             *parsed.Reason,
		HasUnsubscribeLink: *parsed.HasUnsubscribeLink,
		IdentifiedLink:     parsed.IdentifiedLink,
	}

	// A link without the flag set is not trusted
	if !c.HasUnsubscribeLink {
		c.IdentifiedLink = nil
	}

	return c, nil
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, and trims whitespace
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty)
		firstLine := strings.TrimSpace(trimmed[:idx])
		if len(firstLine) <= 10 && !strings.Contains(firstLine, "{") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
