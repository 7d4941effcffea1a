package sessionauth

import (
	"context"
	"time"
)

type clientIPContextKey struct{}
type userAgentContextKey struct{}
type loginTimeContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine records it
// as session metadata at issuance.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithUserAgent attaches the HTTP User-Agent string to ctx. The Engine
// records it as session metadata at issuance.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentContextKey{}, userAgent)
}

// WithLoginTime overrides the login timestamp recorded at issuance. Without
// it the Engine uses the current time.
func WithLoginTime(ctx context.Context, at time.Time) context.Context {
	return context.WithValue(ctx, loginTimeContextKey{}, at)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func userAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	userAgent, _ := ctx.Value(userAgentContextKey{}).(string)
	return userAgent
}

func loginTimeFromContext(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Now()
	}

	at, ok := ctx.Value(loginTimeContextKey{}).(time.Time)
	if !ok || at.IsZero() {
		return time.Now()
	}
	return at
}
