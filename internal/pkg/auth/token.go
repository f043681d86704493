package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrNoToken is returned when no valid token could be obtained.
	ErrNoToken = errors.New("no valid token available")
	// ErrTokenNotFound is returned by a Store on a cache miss.
	ErrTokenNotFound = errors.New("token not found")
)

// Token is a bearer token with an absolute expiry.
type Token struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcquiredToken is what an upstream token endpoint hands out.
type AcquiredToken struct {
	Value     string
	ExpiresIn time.Duration
}

type Acquirer interface {
	Acquire(ctx context.Context) (AcquiredToken, error)
}

// Store shares tokens between service instances.
type Store interface {
	GetToken(ctx context.Context, key string) (Token, error)
	SetToken(ctx context.Context, key string, token Token, expiration time.Duration) error
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// TokenCache hands out a valid bearer token, refreshing it shortly before it
// expires. It is safe for concurrent use; refreshes are serialized.
type TokenCache struct {
	name        string
	acquirer    Acquirer
	store       Store
	skew        time.Duration
	lockTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	current Token
}

type Option func(*TokenCache)

// WithStore shares the token through store. Without it the cache is process local.
func WithStore(store Store, lockTimeout time.Duration) Option {
	return func(c *TokenCache) {
		c.store = store
		c.lockTimeout = lockTimeout
	}
}

// WithRefreshSkew treats tokens as expired skew before their real expiry.
func WithRefreshSkew(skew time.Duration) Option {
	return func(c *TokenCache) {
		c.skew = skew
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCache) {
		c.now = now
	}
}

func NewTokenCache(name string, acquirer Acquirer, opts ...Option) *TokenCache {
	c := &TokenCache{
		name:        name,
		acquirer:    acquirer,
		skew:        30 * time.Second,
		lockTimeout: 5 * time.Second,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *TokenCache) cacheKey() string {
	return fmt.Sprintf("token:cache:%s", c.name)
}

func (c *TokenCache) lockKey() string {
	return fmt.Sprintf("token:lock:%s", c.name)
}

// Get returns a valid token, from memory, the shared store or a fresh acquisition.
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid(c.current) {
		return c.current.Value, nil
	}

	if c.store != nil {
		token, err := c.store.GetToken(ctx, c.cacheKey())
		switch {
		case err == nil && c.valid(token):
			c.current = token
			return token.Value, nil
		case err != nil && !errors.Is(err, ErrTokenNotFound):
			slog.WarnContext(ctx, "failed to get token from store", slog.String("token", c.name),
				slog.String("error", err.Error()))
		}
	}

	return c.refreshLocked(ctx)
}

// Refresh replaces a token the upstream rejected. When the cached token already
// differs from rejected, another caller refreshed it first and it is reused.
func (c *TokenCache) Refresh(ctx context.Context, rejected string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid(c.current) && c.current.Value != rejected {
		return c.current.Value, nil
	}

	return c.refreshLocked(ctx)
}

// ExpiresAt returns the expiry of the cached token, zero when there is none.
func (c *TokenCache) ExpiresAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current.ExpiresAt
}

func (c *TokenCache) refreshLocked(ctx context.Context) (string, error) {
	// only the instance holding the lock publishes to the store, the others
	// still acquire their own token so a request is never blocked on another
	// instance
	acquired := false
	if c.store != nil {
		var err error
		acquired, err = c.store.AcquireLock(ctx, c.lockKey(), c.lockTimeout)
		if err != nil {
			slog.WarnContext(ctx, "failed to acquire token lock", slog.String("token", c.name),
				slog.String("error", err.Error()))
		}
		if acquired {
			defer func() {
				if err := c.store.ReleaseLock(ctx, c.lockKey()); err != nil {
					slog.WarnContext(ctx, "failed to release token lock", slog.String("token", c.name),
						slog.String("error", err.Error()))
				}
			}()
		}
	}

	fresh, err := c.acquirer.Acquire(ctx)
	if err != nil {
		c.current = Token{}
		return "", fmt.Errorf("%w: %s: %w", ErrNoToken, c.name, err)
	}

	if fresh.Value == "" || fresh.ExpiresIn <= 0 {
		c.current = Token{}
		return "", fmt.Errorf("%w: %s returned an empty or expired token", ErrNoToken, c.name)
	}

	c.current = Token{
		Value:     fresh.Value,
		ExpiresAt: c.now().Add(fresh.ExpiresIn),
	}

	if acquired {
		if err := c.store.SetToken(ctx, c.cacheKey(), c.current, fresh.ExpiresIn); err != nil {
			slog.WarnContext(ctx, "failed to set token to store", slog.String("token", c.name),
				slog.String("error", err.Error()))
		}
	}

	slog.DebugContext(ctx, "token refreshed", slog.String("token", c.name),
		slog.Time("expires_at", c.current.ExpiresAt))

	return c.current.Value, nil
}

func (c *TokenCache) valid(t Token) bool {
	return t.Value != "" && c.now().Add(c.skew).Before(t.ExpiresAt)
}
