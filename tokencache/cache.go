package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/seralvz/sessionauth/cache"
)

// ErrStoreUnavailable wraps backing-cache faults surfaced by the token cache.
var ErrStoreUnavailable = errors.New("token cache unavailable")

// ErrCorruptCache is returned when the stored token mapping cannot be
// decoded.
var ErrCorruptCache = errors.New("token cache corrupt")

// Snapshot is the fixed user projection cached against a validated
// credential. The JSON field names are part of the stored format.
type Snapshot struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	IsStaff bool   `json:"is_staff"`
}

// Entry is one cached validation result. An entry is usable only while
// ExpiresAt is strictly in the future. SessionID records which session the
// credential was bound to, so single-session revocation can evict exactly
// the entries that session produced.
type Entry struct {
	User      Snapshot `json:"user"`
	SessionID string   `json:"session"`
	ExpiresAt int64    `json:"expires_at"`
}

// Cache is the global decoded-token cache. All entries for all users live in
// one mapping under a single cache key; every write reapplies the configured
// outer store TTL.
type Cache struct {
	store    cache.Cache
	key      string
	storeTTL time.Duration
}

// NewCache creates a token [Cache] on the given cache capability. key names
// the single global mapping; storeTTL is the outer bound applied on every
// write.
func NewCache(store cache.Cache, key string, storeTTL time.Duration) *Cache {
	return &Cache{
		store:    store,
		key:      key,
		storeTTL: storeTTL,
	}
}

// Lookup returns the cached snapshot for credential while its entry is
// unexpired. A present-but-expired entry is evicted as a side effect and
// reported as absent (lazy cleanup).
func (c *Cache) Lookup(ctx context.Context, credential string) (Snapshot, bool, error) {
	entries, err := c.load(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}

	entry, ok := entries[credential]
	if !ok {
		return Snapshot{}, false, nil
	}

	if entry.ExpiresAt <= time.Now().Unix() {
		if err := c.mutate(ctx, func(entries map[string]Entry) {
			delete(entries, credential)
		}); err != nil {
			return Snapshot{}, false, err
		}
		return Snapshot{}, false, nil
	}

	return entry.User, true, nil
}

// Store inserts or overwrites the entry for credential with
// expires_at = now + entryTTL.
func (c *Cache) Store(ctx context.Context, credential, sessionID string, user Snapshot, entryTTL time.Duration) error {
	expiresAt := time.Now().Add(entryTTL).Unix()
	return c.mutate(ctx, func(entries map[string]Entry) {
		entries[credential] = Entry{User: user, SessionID: sessionID, ExpiresAt: expiresAt}
	})
}

// EvictSession removes every cached entry bound to sessionID. Single-session
// revocation uses it so a still-cached credential cannot outlive its
// session.
func (c *Cache) EvictSession(ctx context.Context, sessionID string) error {
	return c.mutate(ctx, func(entries map[string]Entry) {
		for credential, entry := range entries {
			if entry.SessionID == sessionID {
				delete(entries, credential)
			}
		}
	})
}

// EvictUser removes every cached entry whose snapshot belongs to userID, so
// a still-cached credential cannot outlive a revoked session.
//
// This is a scan over all cached tokens across all users, O(total entries).
// Acceptable at the intended scale; a reverse index (user ID to credential
// set) is the upgrade path if the mapping grows large.
func (c *Cache) EvictUser(ctx context.Context, userID string) error {
	return c.mutate(ctx, func(entries map[string]Entry) {
		for credential, entry := range entries {
			if entry.User.ID == userID {
				delete(entries, credential)
			}
		}
	})
}

func (c *Cache) load(ctx context.Context) (map[string]Entry, error) {
	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return map[string]Entry{}, nil
	}
	return decodeEntries(data)
}

func (c *Cache) mutate(ctx context.Context, apply func(map[string]Entry)) error {
	if updater, ok := c.store.(cache.Updater); ok {
		err := updater.Update(ctx, c.key, c.storeTTL, func(old []byte, present bool) ([]byte, error) {
			entries := map[string]Entry{}
			if present {
				decoded, decErr := decodeEntries(old)
				if decErr != nil {
					return nil, decErr
				}
				entries = decoded
			}
			apply(entries)
			return json.Marshal(entries)
		})
		if err != nil {
			if errors.Is(err, ErrCorruptCache) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	}

	entries, err := c.load(ctx)
	if err != nil {
		return err
	}
	apply(entries)

	encoded, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, c.key, encoded, c.storeTTL); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func decodeEntries(data []byte) (map[string]Entry, error) {
	entries := map[string]Entry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	return entries, nil
}
