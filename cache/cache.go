package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable wraps every backing-store fault so callers can separate
// storage trouble from plain absence with errors.Is.
var ErrUnavailable = errors.New("cache unavailable")

// Cache is the external key-value capability: string keys, opaque values,
// optional TTL. Absence is not an error; Get reports it through its second
// return value.
type Cache interface {
	// Get returns the value stored under key, or ok=false if the key is
	// absent or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores value under key. A ttl of zero stores without expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Forget removes key. Removing an absent key is not an error.
	Forget(ctx context.Context, key string) error
}

// Updater is the optional atomic read-modify-write extension. fn receives
// the current value (present=false when the key is absent) and returns the
// replacement; returning a nil slice deletes the key. Implementations must
// apply fn's result only if the key was not concurrently modified.
type Updater interface {
	Update(ctx context.Context, key string, ttl time.Duration, fn func(old []byte, present bool) ([]byte, error)) error
}
