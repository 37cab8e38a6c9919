// Package common contains shared constants and sentinel errors used across
// dashboard components. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors. An empty user id is rejected everywhere instead of
	// silently returning a cross-user listing.
	ErrEmptyUserID = errors.New("user id is required")
	ErrUnknownKind = errors.New("unknown plan kind")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("access token expired")
)
