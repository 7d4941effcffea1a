package sessionauth

import (
	"context"

	"github.com/seralvz/sessionauth/tokencache"
)

// User is the account record handed to [Engine.Issue]. Token is the user's
// pre-existing opaque API token; it is returned to the caller alongside the
// signed credential but plays no part in credential validation.
type User struct {
	ID      string
	Email   string
	Token   string
	IsAdmin bool
	IsStaff bool
}

// Snapshot is the fixed projection of a user record cached against a
// validated credential and returned by [Engine.Validate]. It is the same
// type the token cache stores, so cached and freshly derived results are
// interchangeable.
type Snapshot = tokencache.Snapshot

// AuthData is returned by [Engine.Issue]. Token and Credential are distinct
// values: Token is the user's stored opaque token, Credential is the signed
// bearer credential that [Engine.Validate] accepts.
type AuthData struct {
	Token      string `json:"token"`
	IsAdmin    bool   `json:"is_admin"`
	Credential string `json:"auth_data"`
}

// UserStore is the interface callers implement to let the engine resolve a
// user ID to its fixed projection during validation. Absence is reported as
// an error (any error collapses to an invalid validation result).
type UserStore interface {
	FindByID(ctx context.Context, id string) (Snapshot, error)
}

// Signer is the pluggable credential codec. The production implementation is
// [jwt.Manager]; tests substitute counting stubs to observe how often the
// cryptographic path runs.
type Signer interface {
	Sign(userID, sessionID string) (string, error)
	Verify(credential string) (userID, sessionID string, err error)
}
