package sessionauth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all engine tunables. Zero values are filled from
// [DefaultConfig] semantics at Build time only where documented; callers
// should start from DefaultConfig and override.
type Config struct {
	JWT        JWTConfig
	Session    SessionConfig
	TokenCache TokenCacheConfig
	Metrics    MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the credential codec. The signing scheme is fixed
// (HS256); only the key varies.
type JWTConfig struct {
	Key []byte
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig configures the session registry.
//
// TTL bounds the lifetime of a user's whole registry entry in the backing
// cache. The default of 0 mirrors the reference behavior: the entry lives
// until explicit removal. Setting a TTL is an opt-in hardening that makes
// idle users' sessions expire wholesale.
type SessionConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

/*
====================================
TOKEN CACHE CONFIG
====================================
*/

// TokenCacheConfig configures the decoded-token cache.
//
// EntryTTL is the per-entry validity window checked lazily on lookup.
// StoreTTL is the outer bound the backing cache applies to the whole
// token-cache structure on every write.
type TokenCacheConfig struct {
	Key      string
	EntryTTL time.Duration
	StoreTTL time.Duration
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig enables the atomic-counter metrics surface.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the reference configuration: 60-minute token-cache
// entries, a 3600-second outer store TTL, the canonical cache key names, and
// an unbounded session registry.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			KeyPrefix: "USER_SESSIONS",
			TTL:       0,
		},
		TokenCache: TokenCacheConfig{
			Key:      "USER_AUTH_CACHE",
			EntryTTL: 60 * time.Minute,
			StoreTTL: 3600 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports configuration states the engine cannot run with.
func (c Config) Validate() error {
	if len(c.JWT.Key) == 0 {
		return errors.New("JWT signing key required")
	}
	return c.validateStores()
}

// validateStores checks everything except the signing key, which an injected
// Signer makes optional.
func (c Config) validateStores() error {
	if c.Session.KeyPrefix == "" {
		return errors.New("session key prefix required")
	}
	if c.Session.TTL < 0 {
		return errors.New("session TTL must not be negative")
	}
	if c.TokenCache.Key == "" {
		return errors.New("token cache key required")
	}
	if c.TokenCache.EntryTTL <= 0 {
		return errors.New("token cache entry TTL must be positive")
	}
	if c.TokenCache.StoreTTL <= 0 {
		return errors.New("token cache store TTL must be positive")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.Key = cloneBytes(cfg.JWT.Key)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// LoadConfig reads configuration from environment variables, loading a .env
// file first when present. Only the signing key is mandatory
// (SESSIONAUTH_KEY); everything else falls back to [DefaultConfig].
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.JWT.Key = []byte(os.Getenv("SESSIONAUTH_KEY"))

	if v := os.Getenv("SESSIONAUTH_SESSION_PREFIX"); v != "" {
		cfg.Session.KeyPrefix = v
	}
	if v := os.Getenv("SESSIONAUTH_TOKEN_CACHE_KEY"); v != "" {
		cfg.TokenCache.Key = v
	}

	var err error
	if cfg.Session.TTL, err = envDuration("SESSIONAUTH_SESSION_TTL_SECONDS", cfg.Session.TTL); err != nil {
		return Config{}, err
	}
	if cfg.TokenCache.EntryTTL, err = envDuration("SESSIONAUTH_ENTRY_TTL_SECONDS", cfg.TokenCache.EntryTTL); err != nil {
		return Config{}, err
	}
	if cfg.TokenCache.StoreTTL, err = envDuration("SESSIONAUTH_STORE_TTL_SECONDS", cfg.TokenCache.StoreTTL); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return time.Duration(secs) * time.Second, nil
}
