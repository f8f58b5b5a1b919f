package sites

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheKey = "current_domain"
	defaultCacheTTL = 5 * time.Minute
)

// CacheOption configures a Cached registry.
type CacheOption func(*Cached)

// WithTTL sets how long the domain is kept. Default: 5 minutes.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cached) {
		c.ttl = ttl
	}
}

// WithCacheKey sets the store key. Default: "current_domain".
// Use distinct keys when several registries share one store.
func WithCacheKey(key string) CacheOption {
	return func(c *Cached) {
		if key != "" {
			c.key = key
		}
	}
}

// WithCacheLogger sets the logger for store failures.
func WithCacheLogger(log *slog.Logger) CacheOption {
	return func(c *Cached) {
		if log != nil {
			c.log = log
		}
	}
}

// Cached keeps the domain reported by another Registry in a Store.
// Concurrent misses trigger a single upstream lookup.
// Store failures are logged and fall through to the upstream registry.
type Cached struct {
	next  Registry
	store Store
	log   *slog.Logger
	group singleflight.Group
	key   string
	ttl   time.Duration
}

// NewCached wraps next with a cache in store.
func NewCached(next Registry, store Store, opts ...CacheOption) *Cached {
	c := &Cached{
		next:  next,
		store: store,
		log:   slog.New(slog.DiscardHandler),
		key:   defaultCacheKey,
		ttl:   defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) CurrentDomain(ctx context.Context) (string, error) {
	domain, err := c.store.Get(ctx, c.key)
	if err == nil {
		return domain, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.log.WarnContext(ctx, "site cache read failed", slog.String("key", c.key), slog.Any("error", err))
	}

	// The shared lookup outlives any single caller; each caller waits on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.key, func() (any, error) {
		domain, err := c.next.CurrentDomain(shared)
		if err != nil {
			return "", err
		}
		if err := c.store.Set(shared, c.key, domain, c.ttl); err != nil {
			c.log.WarnContext(shared, "site cache write failed", slog.String("key", c.key), slog.Any("error", err))
		}
		return domain, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached domain; the next lookup hits the upstream registry.
func (c *Cached) Invalidate(ctx context.Context) error {
	c.group.Forget(c.key)
	return c.store.Delete(ctx, c.key)
}
