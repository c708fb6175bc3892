// Package common defines shared constants and sentinel errors used across
// the storage-deal marketplace. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Operation-boundary taxonomy. Every failure surfaced to the UI maps
	// onto one of these.
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrRemoteReadFailure  = errors.New("remote read failure")
	ErrRemoteWriteFailure = errors.New("remote write failure")
	ErrValidation         = errors.New("validation failure")

	// Deal-state errors returned when an action is refused because of the
	// deal's derived status.
	ErrDealExpired = errors.New("storage deal has expired")
	ErrDealFailed  = errors.New("storage deal has failed")
	ErrDealPending = errors.New("storage deal is still pending activation")

	// Share-link errors.
	ErrShareLinkExpired   = errors.New("share link expired")
	ErrShareLinkExhausted = errors.New("share link access limit reached")
	ErrSharePassword      = errors.New("share link password mismatch")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
