package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements [Cache] and [Updater] on a go-redis client. Every Redis
// fault is wrapped with [ErrUnavailable].
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps client in a [Redis] cache.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Get retrieves the value at key.
//
//	Performance: 1 Redis GET.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return data, true, nil
}

// Put stores value at key with the given TTL (zero means no expiry).
//
//	Performance: 1 Redis SET.
func (r *Redis) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Forget removes key. Absent keys are ignored.
//
//	Performance: 1 Redis DEL.
func (r *Redis) Forget(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Update applies fn to the value at key under optimistic concurrency
// control (WATCH/MULTI compare-and-swap with retries). fn returning a nil
// slice deletes the key.
//
//	Performance: 1 WATCH + GET + transactional SET/DEL per attempt.
func (r *Redis) Update(ctx context.Context, key string, ttl time.Duration, fn func(old []byte, present bool) ([]byte, error)) error {
	const maxRetries = 4

	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			old, getErr := tx.Get(ctx, key).Bytes()
			present := true
			if getErr != nil {
				if !errors.Is(getErr, redis.Nil) {
					return getErr
				}
				old = nil
				present = false
			}

			next, fnErr := fn(old, present)
			if fnErr != nil {
				return callerError{fnErr}
			}

			_, txErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if next == nil {
					pipe.Del(ctx, key)
					return nil
				}
				pipe.Set(ctx, key, next, ttl)
				return nil
			})
			return txErr
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			var ce callerError
			if errors.As(err, &ce) {
				return ce.err
			}
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	return fmt.Errorf("%w: update contention on %s", ErrUnavailable, key)
}

// callerError marks errors produced by an Update callback so they propagate
// to the caller unwrapped instead of being reported as a store fault.
type callerError struct{ err error }

func (c callerError) Error() string { return c.err.Error() }
func (c callerError) Unwrap() error { return c.err }
