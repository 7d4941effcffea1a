package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/seralvz/sessionauth/cache"
)

// ErrStoreUnavailable wraps backing-cache faults surfaced by the registry.
var ErrStoreUnavailable = errors.New("session store unavailable")

// ErrCorruptMapping is returned when a stored per-user mapping cannot be
// decoded.
var ErrCorruptMapping = errors.New("session mapping corrupt")

// Registry is the per-user session registry. Each user's sessions live as
// one JSON mapping under prefix+":"+userID in the backing cache.
//
// ATOMICITY NOTE: when the backing cache implements [cache.Updater],
// mutations run as compare-and-swap read-modify-writes and concurrent adds
// and removes for the same user cannot lose updates. On a plain [cache.Cache]
// the registry falls back to read-then-put, which matches the reference
// behavior: two concurrent mutations of the same user's mapping may race and
// one write can win over the other. Callers requiring strict correctness
// should use an Updater-capable backend (the Redis implementation is one).
type Registry struct {
	store  cache.Cache
	prefix string
	ttl    time.Duration
}

// NewRegistry creates a [Registry] on the given cache capability. prefix
// namespaces the per-user keys; ttl bounds each user's whole mapping in the
// backing cache (0 = unbounded, the reference behavior).
func NewRegistry(store cache.Cache, prefix string, ttl time.Duration) *Registry {
	return &Registry{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *Registry) key(userID string) string {
	return r.prefix + ":" + userID
}

// Create inserts sessionID into the user's mapping. It fails only when the
// underlying store write fails; an existing session ID is overwritten.
func (r *Registry) Create(ctx context.Context, userID, sessionID string, meta Meta) error {
	return r.mutate(ctx, userID, func(sessions map[string]Meta) {
		sessions[sessionID] = meta
	})
}

// List returns the user's session mapping. A user with no sessions yields an
// empty, non-nil map; absence is not an error.
func (r *Registry) List(ctx context.Context, userID string) (map[string]Meta, error) {
	data, ok, err := r.store.Get(ctx, r.key(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return map[string]Meta{}, nil
	}
	return decodeMapping(data)
}

// IsLive reports whether sessionID is present in the user's mapping. This is
// the sole revocation check the Engine performs during validation.
func (r *Registry) IsLive(ctx context.Context, userID, sessionID string) (bool, error) {
	sessions, err := r.List(ctx, userID)
	if err != nil {
		return false, err
	}
	_, live := sessions[sessionID]
	return live, nil
}

// Remove deletes one session from the user's mapping. Removing an absent
// session still succeeds.
func (r *Registry) Remove(ctx context.Context, userID, sessionID string) error {
	return r.mutate(ctx, userID, func(sessions map[string]Meta) {
		delete(sessions, sessionID)
	})
}

// RemoveAll deletes the user's entire mapping (logout-everywhere).
func (r *Registry) RemoveAll(ctx context.Context, userID string) error {
	if err := r.store.Forget(ctx, r.key(userID)); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Registry) mutate(ctx context.Context, userID string, apply func(map[string]Meta)) error {
	key := r.key(userID)

	if updater, ok := r.store.(cache.Updater); ok {
		err := updater.Update(ctx, key, r.ttl, func(old []byte, present bool) ([]byte, error) {
			sessions := map[string]Meta{}
			if present {
				decoded, decErr := decodeMapping(old)
				if decErr != nil {
					return nil, decErr
				}
				sessions = decoded
			}
			apply(sessions)
			return json.Marshal(sessions)
		})
		if err != nil {
			if errors.Is(err, ErrCorruptMapping) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	sessions, err := r.List(ctx, userID)
	if err != nil {
		return err
	}
	apply(sessions)

	encoded, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, key, encoded, r.ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func decodeMapping(data []byte) (map[string]Meta, error) {
	sessions := map[string]Meta{}
	if len(data) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMapping, err)
	}
	return sessions, nil
}
