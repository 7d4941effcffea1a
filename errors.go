package sessionauth

import "errors"

var (
	// ErrUnauthorized is the single result of every failed validation.
	// Expired, forged, revoked, and unknown-user credentials are deliberately
	// indistinguishable to callers; the cause is only logged internally.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when an operation names a user the store
	// cannot resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionCreationFailed wraps registry write failures during issuance.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrSessionInvalidationFailed wraps registry or token-cache failures
	// during revocation.
	ErrSessionInvalidationFailed = errors.New("session invalidation failed")
	// ErrEngineNotReady is returned when an Engine method is called on a
	// partially constructed engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
