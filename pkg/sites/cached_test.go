package sites_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subdomains/pkg/sites"
)

type countingRegistry struct {
	err    error
	domain atomic.Value
	calls  atomic.Int32
	delay  time.Duration
}

func newCountingRegistry(domain string) *countingRegistry {
	r := &countingRegistry{}
	r.domain.Store(domain)
	return r
}

func (r *countingRegistry) CurrentDomain(context.Context) (string, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.err != nil {
		return "", r.err
	}
	return r.domain.Load().(string), nil
}

// gatedRegistry blocks lookups until release is closed or the lookup ctx ends.
type gatedRegistry struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newGatedRegistry() *gatedRegistry {
	return &gatedRegistry{started: make(chan struct{}), release: make(chan struct{})}
}

func (r *gatedRegistry) CurrentDomain(ctx context.Context) (string, error) {
	r.calls.Add(1)
	r.once.Do(func() { close(r.started) })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.release:
		return "example.com", nil
	}
}

func newRedisClient(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCached(t *testing.T) {
	t.Parallel()

	stores := map[string]func(t *testing.T) sites.Store{
		"memory": func(*testing.T) sites.Store { return sites.NewMemoryStore() },
		"redis": func(t *testing.T) sites.Store {
			_, client := newRedisClient(t)
			return sites.NewRedisStore(client, "sites")
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("hit after miss", func(t *testing.T) {
				t.Parallel()

				ctx := context.Background()
				upstream := newCountingRegistry("example.com")
				c := sites.NewCached(upstream, newStore(t))

				for range 3 {
					domain, err := c.CurrentDomain(ctx)
					require.NoError(t, err)
					require.Equal(t, "example.com", domain)
				}
				require.Equal(t, int32(1), upstream.calls.Load())
			})

			t.Run("invalidate refetches", func(t *testing.T) {
				t.Parallel()

				ctx := context.Background()
				upstream := newCountingRegistry("old.test")
				c := sites.NewCached(upstream, newStore(t))

				domain, err := c.CurrentDomain(ctx)
				require.NoError(t, err)
				require.Equal(t, "old.test", domain)

				upstream.domain.Store("new.test")
				require.NoError(t, c.Invalidate(ctx))

				domain, err = c.CurrentDomain(ctx)
				require.NoError(t, err)
				require.Equal(t, "new.test", domain)
				require.Equal(t, int32(2), upstream.calls.Load())
			})

			t.Run("upstream errors are not cached", func(t *testing.T) {
				t.Parallel()

				ctx := context.Background()
				upstream := newCountingRegistry("")
				upstream.err = sites.ErrSiteNotFound
				c := sites.NewCached(upstream, newStore(t))

				_, err := c.CurrentDomain(ctx)
				require.ErrorIs(t, err, sites.ErrSiteNotFound)
				_, err = c.CurrentDomain(ctx)
				require.ErrorIs(t, err, sites.ErrSiteNotFound)
				require.Equal(t, int32(2), upstream.calls.Load())
			})
		})
	}
}

func TestCached_ConcurrentMissesShareLookup(t *testing.T) {
	t.Parallel()

	upstream := newCountingRegistry("example.com")
	upstream.delay = 50 * time.Millisecond
	c := sites.NewCached(upstream, sites.NewMemoryStore())

	const workers = 10
	results := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.CurrentDomain(context.Background())
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		require.Equal(t, "example.com", results[i])
	}

	require.Equal(t, int32(1), upstream.calls.Load())
}

func TestCached_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	upstream := newGatedRegistry()
	c := sites.NewCached(upstream, sites.NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.CurrentDomain(ctx)
		firstErr <- err
	}()
	<-upstream.started

	type result struct {
		domain string
		err    error
	}
	second := make(chan result, 1)
	go func() {
		domain, err := c.CurrentDomain(context.Background())
		second <- result{domain, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(upstream.release)
	res := <-second
	require.NoError(t, res.err)
	require.Equal(t, "example.com", res.domain)
	require.Equal(t, int32(1), upstream.calls.Load())

	domain, err := c.CurrentDomain(context.Background())
	require.NoError(t, err)
	require.Equal(t, "example.com", domain)
	require.Equal(t, int32(1), upstream.calls.Load())
}

func TestCached_RedisTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, client := newRedisClient(t)
	upstream := newCountingRegistry("example.com")
	c := sites.NewCached(upstream, sites.NewRedisStore(client, "sites"),
		sites.WithTTL(time.Minute),
		sites.WithCacheKey("site:1"),
	)

	_, err := c.CurrentDomain(ctx)
	require.NoError(t, err)

	v, err := mr.Get("sites:site:1")
	require.NoError(t, err)
	require.Equal(t, "example.com", v)
	require.Equal(t, time.Minute, mr.TTL("sites:site:1"))

	mr.FastForward(2 * time.Minute)

	_, err = c.CurrentDomain(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(2), upstream.calls.Load())
}

func TestCached_StoreFailureFallsThrough(t *testing.T) {
	t.Parallel()

	mr, client := newRedisClient(t)
	mr.Close()

	upstream := newCountingRegistry("example.com")
	c := sites.NewCached(upstream, sites.NewRedisStore(client, ""))

	domain, err := c.CurrentDomain(context.Background())
	require.NoError(t, err)
	require.Equal(t, "example.com", domain)
}

func TestRedisStore_Miss(t *testing.T) {
	t.Parallel()

	_, client := newRedisClient(t)
	_, err := sites.NewRedisStore(client, "p").Get(context.Background(), "absent")
	require.True(t, errors.Is(err, sites.ErrCacheMiss))
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := sites.NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", "v", 20*time.Millisecond))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)

	require.Eventually(t, func() bool {
		_, err := s.Get(ctx, "k")
		return errors.Is(err, sites.ErrCacheMiss)
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Set(ctx, "forever", "v", 0))
	require.NoError(t, s.Delete(ctx, "forever"))
	_, err = s.Get(ctx, "forever")
	require.ErrorIs(t, err, sites.ErrCacheMiss)
}

func TestOpenRedis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		_, err := sites.OpenRedis(ctx, sites.RedisConfig{})
		require.ErrorIs(t, err, sites.ErrEmptyRedisURL)

		_, err = sites.OpenRedis(ctx, sites.RedisConfig{URL: "http://localhost:6379"})
		require.ErrorIs(t, err, sites.ErrFailedToParseRedisURL)
	})

	t.Run("connects", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client, err := sites.OpenRedis(ctx, sites.RedisConfig{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, sites.RedisHealthcheck(client)(ctx))
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := sites.OpenRedis(ctx, sites.RedisConfig{
			URL:           "redis://" + addr,
			RetryAttempts: 2,
			RetryInterval: time.Millisecond,
		})
		require.ErrorIs(t, err, sites.ErrRedisConnection)
	})
}
