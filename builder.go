package sessionauth

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seralvz/sessionauth/cache"
	"github.com/seralvz/sessionauth/jwt"
	"github.com/seralvz/sessionauth/session"
	"github.com/seralvz/sessionauth/tokencache"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens until the engine's methods are called.
type Builder struct {
	config Config
	store  cache.Cache

	users  UserStore
	signer Signer
	logger *zap.Logger

	built bool
}

// New returns a [Builder] primed with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCache sets the key-value capability backing the session registry and
// token cache.
func (b *Builder) WithCache(store cache.Cache) *Builder {
	b.store = store
	return b
}

// WithRedis is shorthand for WithCache over a Redis client.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.store = cache.NewRedis(client)
	return b
}

// WithUserStore sets the user lookup collaborator used during validation.
func (b *Builder) WithUserStore(users UserStore) *Builder {
	b.users = users
	return b
}

// WithSigner overrides the credential codec. Without it the engine uses the
// HS256 [jwt.Manager] keyed from Config.JWT.
func (b *Builder) WithSigner(signer Signer) *Builder {
	b.signer = signer
	return b
}

// WithLogger sets the internal diagnostic logger. Diagnostics never cross
// the public contract; without a logger they are dropped.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles the metrics surface.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the validate-latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and dependencies and returns the
// assembled [Engine]. A builder can only be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.store == nil {
		return nil, errors.New("cache capability required")
	}
	if b.users == nil {
		return nil, errors.New("user store required")
	}

	signer := b.signer
	if signer == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		jm, err := jwt.NewManager(jwt.Config{Key: cfg.JWT.Key})
		if err != nil {
			return nil, err
		}
		signer = jm
	} else {
		// An injected signer owns its own key material.
		if err := cfg.validateStores(); err != nil {
			return nil, err
		}
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &Engine{
		config:     cfg,
		registry:   session.NewRegistry(b.store, cfg.Session.KeyPrefix, cfg.Session.TTL),
		tokenCache: tokencache.NewCache(b.store, cfg.TokenCache.Key, cfg.TokenCache.StoreTTL),
		signer:     signer,
		users:      b.users,
		metrics:    NewMetrics(cfg.Metrics),
		logger:     logger,
	}

	b.built = true

	return engine, nil
}
