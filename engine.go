package sessionauth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seralvz/sessionauth/internal"
	"github.com/seralvz/sessionauth/session"
	"github.com/seralvz/sessionauth/tokencache"
)

// Engine orchestrates issuance, validation, and revocation over the session
// registry and the token cache.
//
// Engine instances are configured through [Builder.Build] and treated as
// immutable afterwards.
type Engine struct {
	config     Config
	registry   *session.Registry
	tokenCache *tokencache.Cache
	signer     Signer
	users      UserStore
	metrics    *Metrics
	logger     *zap.Logger
}

// MetricsSnapshot returns a point-in-time copy of the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Issue creates a session for user and returns its [AuthData]: the user's
// stored opaque token, the admin flag, and a freshly signed credential bound
// to a new session ID.
//
// The session is registered with the client IP, user agent, and login time
// drawn from ctx (see [WithClientIP], [WithUserAgent], [WithLoginTime]).
// A registry write failure fails the issuance.
func (e *Engine) Issue(ctx context.Context, user User) (AuthData, error) {
	if e == nil || e.signer == nil || e.registry == nil {
		return AuthData{}, ErrEngineNotReady
	}
	if user.ID == "" {
		e.metricInc(MetricIssueFailure)
		return AuthData{}, ErrUserNotFound
	}

	sessionID, err := internal.NewSessionID()
	if err != nil {
		e.metricInc(MetricIssueFailure)
		return AuthData{}, err
	}

	credential, err := e.signer.Sign(user.ID, sessionID)
	if err != nil {
		e.metricInc(MetricIssueFailure)
		return AuthData{}, err
	}

	meta := session.Meta{
		IP:        clientIPFromContext(ctx),
		LoginAt:   loginTimeFromContext(ctx).Unix(),
		UserAgent: userAgentFromContext(ctx),
	}

	if err := e.registry.Create(ctx, user.ID, sessionID, meta); err != nil {
		e.logger.Debug("session registration failed",
			zap.String("user_id", user.ID),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		e.metricInc(MetricIssueFailure)
		return AuthData{}, errors.Join(ErrSessionCreationFailed, err)
	}

	e.metricInc(MetricSessionCreated)
	e.metricInc(MetricIssueSuccess)

	return AuthData{
		Token:      user.Token,
		IsAdmin:    user.IsAdmin,
		Credential: credential,
	}, nil
}

// Validate resolves credential to the owning user's [Snapshot].
//
// The token cache is consulted first; a hit returns without cryptographic
// work. On a miss the credential is verified, its session's liveness is
// re-checked against the registry, the user is looked up, and the result is
// cached for the configured entry TTL.
//
// Every failure mode (malformed or forged credential, revoked session,
// unknown user, storage fault on the read path) collapses to
// [ErrUnauthorized]. The cause is logged at debug level only.
func (e *Engine) Validate(ctx context.Context, credential string) (Snapshot, error) {
	if e == nil || e.signer == nil || e.registry == nil || e.tokenCache == nil {
		return Snapshot{}, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			e.metrics.Observe(MetricValidateLatency, time.Since(start))
		}()
	}

	snap, ok, err := e.tokenCache.Lookup(ctx, credential)
	if err != nil {
		// Cache trouble is indistinguishable from a miss on this path.
		e.logger.Debug("token cache lookup failed", zap.Error(err))
	}
	if ok {
		e.metricInc(MetricValidateCacheHit)
		e.metricInc(MetricValidateSuccess)
		return snap, nil
	}
	e.metricInc(MetricValidateCacheMiss)

	userID, sessionID, err := e.signer.Verify(credential)
	if err != nil {
		return e.reject("credential verification failed", err)
	}

	live, err := e.registry.IsLive(ctx, userID, sessionID)
	if err != nil {
		return e.reject("session liveness check failed", err)
	}
	if !live {
		return e.reject("session revoked", nil)
	}

	snap, err = e.users.FindByID(ctx, userID)
	if err != nil {
		return e.reject("user lookup failed", err)
	}

	if err := e.tokenCache.Store(ctx, credential, sessionID, snap, e.config.TokenCache.EntryTTL); err != nil {
		// Cache populate is best-effort; the credential already validated.
		e.logger.Debug("token cache populate failed", zap.Error(err))
	}

	e.metricInc(MetricValidateSuccess)
	return snap, nil
}

func (e *Engine) reject(reason string, cause error) (Snapshot, error) {
	e.metricInc(MetricValidateRejected)
	if cause != nil {
		e.logger.Debug("validation rejected", zap.String("reason", reason), zap.Error(cause))
	} else {
		e.logger.Debug("validation rejected", zap.String("reason", reason))
	}
	return Snapshot{}, ErrUnauthorized
}
