package core

import (
	"fmt"
)

// AuthError indicates the provider rejected the caller's credential. The
// client should re-authenticate; the request is never retried server-side.
type AuthError struct {
	Details string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected by provider: %s", e.Details)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ProviderError indicates a non-auth failure of the provider's listing call
// (transport, quota, server-side errors)
type ProviderError struct {
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail provider failure: %s", e.Details)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ValidationError indicates missing or malformed request input
type ValidationError struct {
	Details string
}

func (e *ValidationError) Error() string {
	return e.Details
}
