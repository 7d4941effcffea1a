package sessionauth

import (
	"context"
	"errors"

	"github.com/seralvz/sessionauth/session"
)

// Sessions lists the user's live sessions keyed by session ID. A user with
// no sessions yields an empty map.
func (e *Engine) Sessions(ctx context.Context, userID string) (map[string]session.Meta, error) {
	if e == nil || e.registry == nil {
		return nil, ErrEngineNotReady
	}
	return e.registry.List(ctx, userID)
}

// RevokeSession revokes one session. Cached validations of credentials bound
// to it are evicted first, so revocation takes effect immediately rather
// than after the token cache's entry TTL. Revoking an absent session
// succeeds.
func (e *Engine) RevokeSession(ctx context.Context, userID, sessionID string) error {
	if e == nil || e.registry == nil || e.tokenCache == nil {
		return ErrEngineNotReady
	}

	if err := e.tokenCache.EvictSession(ctx, sessionID); err != nil {
		return errors.Join(ErrSessionInvalidationFailed, err)
	}
	if err := e.registry.Remove(ctx, userID, sessionID); err != nil {
		return errors.Join(ErrSessionInvalidationFailed, err)
	}

	e.metricInc(MetricSessionRevoked)
	return nil
}

// RevokeAll logs the user out everywhere: every cached token snapshot for
// the user is evicted from the token cache, then the registry's whole
// per-user mapping is removed.
func (e *Engine) RevokeAll(ctx context.Context, userID string) error {
	if e == nil || e.registry == nil || e.tokenCache == nil {
		return ErrEngineNotReady
	}

	if err := e.tokenCache.EvictUser(ctx, userID); err != nil {
		return errors.Join(ErrSessionInvalidationFailed, err)
	}
	if err := e.registry.RemoveAll(ctx, userID); err != nil {
		return errors.Join(ErrSessionInvalidationFailed, err)
	}

	e.metricInc(MetricLogoutAll)
	return nil
}
