package middleware

import (
	"context"
	"net/http"
	"strings"

	sessionauth "github.com/seralvz/sessionauth"
)

type snapshotContextKey struct{}

// SnapshotFromContext returns the validated user snapshot injected by
// [Guard], if any.
func SnapshotFromContext(ctx context.Context) (sessionauth.Snapshot, bool) {
	snap, ok := ctx.Value(snapshotContextKey{}).(sessionauth.Snapshot)
	return snap, ok
}

// Guard wraps next with Bearer-credential enforcement. Requests without a
// credential the engine accepts are rejected with 401 before next runs.
func Guard(engine *sessionauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			credential, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			snap, err := engine.Validate(r.Context(), credential)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), snapshotContextKey{}, snap)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	credential := value[len(bearer):]
	if credential == "" {
		return "", false
	}

	return credential, true
}
