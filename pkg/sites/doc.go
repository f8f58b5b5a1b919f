// Package sites provides registries that report the base domain of the
// current site.
//
// A [Registry] answers one question: which domain is this deployment serving?
// URLs for subdomains are built on top of that domain.
//
// # Registries
//
//   - [Static]: a fixed domain, typically from configuration
//   - [Postgres]: a row of the "sites" table, selected by id
//   - [Cached]: a decorator that keeps the answer of another registry in a
//     [Store] (in memory or in Redis) for a configurable TTL
//
// # Usage
//
//	pool, err := sites.Connect(ctx, sites.PostgresConfig{ConnectionString: dsn})
//	if err != nil {
//	    return err
//	}
//	if err := sites.Migrate(ctx, pool, log); err != nil {
//	    return err
//	}
//
//	client, err := sites.OpenRedis(ctx, sites.RedisConfig{URL: "redis://localhost:6379/0"})
//	if err != nil {
//	    return err
//	}
//
//	registry := sites.NewCached(
//	    sites.NewPostgres(pool, 1),
//	    sites.NewRedisStore(client, "sites"),
//	    sites.WithTTL(5*time.Minute),
//	)
//
//	domain, err := registry.CurrentDomain(ctx)
package sites
