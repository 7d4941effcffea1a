package sessionauth

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.KeyPrefix != "USER_SESSIONS" {
		t.Fatalf("session prefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.Session.TTL != 0 {
		t.Fatalf("session TTL = %v, want unbounded", cfg.Session.TTL)
	}
	if cfg.TokenCache.Key != "USER_AUTH_CACHE" {
		t.Fatalf("token cache key = %q", cfg.TokenCache.Key)
	}
	if cfg.TokenCache.EntryTTL != 60*time.Minute {
		t.Fatalf("entry TTL = %v", cfg.TokenCache.EntryTTL)
	}
	if cfg.TokenCache.StoreTTL != 3600*time.Second {
		t.Fatalf("store TTL = %v", cfg.TokenCache.StoreTTL)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.JWT.Key = []byte("k")
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing key", func(c *Config) { c.JWT.Key = nil }},
		{"missing session prefix", func(c *Config) { c.Session.KeyPrefix = "" }},
		{"negative session TTL", func(c *Config) { c.Session.TTL = -time.Second }},
		{"missing token cache key", func(c *Config) { c.TokenCache.Key = "" }},
		{"zero entry TTL", func(c *Config) { c.TokenCache.EntryTTL = 0 }},
		{"zero store TTL", func(c *Config) { c.TokenCache.StoreTTL = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SESSIONAUTH_KEY", "env-signing-key")
	t.Setenv("SESSIONAUTH_SESSION_PREFIX", "SESS")
	t.Setenv("SESSIONAUTH_TOKEN_CACHE_KEY", "TOKENS")
	t.Setenv("SESSIONAUTH_SESSION_TTL_SECONDS", "86400")
	t.Setenv("SESSIONAUTH_ENTRY_TTL_SECONDS", "900")
	t.Setenv("SESSIONAUTH_STORE_TTL_SECONDS", "1800")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(cfg.JWT.Key) != "env-signing-key" {
		t.Fatalf("key = %q", cfg.JWT.Key)
	}
	if cfg.Session.KeyPrefix != "SESS" {
		t.Fatalf("prefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.TokenCache.Key != "TOKENS" {
		t.Fatalf("token cache key = %q", cfg.TokenCache.Key)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("session TTL = %v", cfg.Session.TTL)
	}
	if cfg.TokenCache.EntryTTL != 15*time.Minute {
		t.Fatalf("entry TTL = %v", cfg.TokenCache.EntryTTL)
	}
	if cfg.TokenCache.StoreTTL != 30*time.Minute {
		t.Fatalf("store TTL = %v", cfg.TokenCache.StoreTTL)
	}
}

func TestLoadConfigRequiresKey(t *testing.T) {
	t.Setenv("SESSIONAUTH_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without signing key")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSIONAUTH_KEY", "env-signing-key")
	t.Setenv("SESSIONAUTH_ENTRY_TTL_SECONDS", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestConfigCloneIsolatesKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWT.Key = []byte("secret")

	clone := cloneConfig(cfg)
	clone.JWT.Key[0] = 'X'

	if string(cfg.JWT.Key) != "secret" {
		t.Fatal("clone shares key backing array")
	}
}
