package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/subdomains"
	"github.com/dmitrymomot/subdomains/internal/server"
	"github.com/dmitrymomot/subdomains/pkg/logger"
	"github.com/dmitrymomot/subdomains/pkg/sites"
)

// serveConfig is read from the environment.
type serveConfig struct {
	Logger       logger.Config
	Server       server.Config
	Postgres     sites.PostgresConfig
	Redis        sites.RedisConfig
	SiteID       int64         `env:"SITE_ID" envDefault:"1"`
	SiteCacheTTL time.Duration `env:"SITE_CACHE_TTL" envDefault:"5m"`
	CheckTimeout time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"5s"`
}

func newServeCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every routing configuration on its subdomains",
		Long: `Serve every routing configuration behind the subdomain middleware.
Each route answers with its own reversed URL.

The site domain comes from the settings file (or SITE_DOMAIN). When
DATABASE_CONN_URL is set it is read from the sites table instead, cached
in Redis when REDIS_URL is set and in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg serveConfig
			if err := env.Parse(&cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg, configPath(cmd), watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload when the settings file changes")
	return cmd
}

func serve(ctx context.Context, cfg serveConfig, path string, watch bool) error {
	log := logger.New(cfg.Logger, subdomains.SubdomainExtractor())

	initial, err := subdomains.LoadSettings(path)
	if err != nil {
		return err
	}

	site, err := openSites(ctx, cfg, initial, log)
	if err != nil {
		return err
	}
	defer site.close()

	load := func(ctx context.Context) (*server.State, error) {
		s, err := subdomains.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		registry, err := site.registry(ctx, s)
		if err != nil {
			return nil, err
		}
		return server.NewState(s, registry, log)
	}

	rl, err := server.NewReloader(ctx, load, log)
	if err != nil {
		return err
	}

	checks := server.Checks{
		"site": func(ctx context.Context) error { return rl.Current().CheckSite(ctx) },
	}
	for name, check := range site.checks {
		checks[name] = check
	}
	handler := server.Handler(rl, checks, cfg.CheckTimeout, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, cfg.Server, handler, log, nil)
	})
	if watch {
		g.Go(func() error {
			return rl.Watch(ctx, path)
		})
	}
	return g.Wait()
}

// siteBackend owns the connections behind the site registry.
type siteBackend struct {
	cached  *sites.Cached
	checks  server.Checks
	closers []func() error
}

// openSites connects to Postgres and Redis when configured.
// Without a database the registry is the static domain of the settings.
func openSites(ctx context.Context, cfg serveConfig, s *subdomains.Settings, log *slog.Logger) (*siteBackend, error) {
	b := &siteBackend{checks: server.Checks{}}
	if cfg.Postgres.ConnectionString == "" {
		if s.Domain == "" {
			return nil, fmt.Errorf("%w: no site domain; set domain, SITE_DOMAIN or DATABASE_CONN_URL", subdomains.ErrInvalidSettings)
		}
		return b, nil
	}

	pool, err := sites.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, func() error { pool.Close(); return nil })
	b.checks["postgres"] = sites.PostgresHealthcheck(pool)

	if err := sites.Migrate(ctx, pool, cfg.Postgres.MigrationsTable, log); err != nil {
		b.close()
		return nil, err
	}

	pg := sites.NewPostgres(pool, cfg.SiteID)
	if err := seedSite(ctx, pg, cfg.SiteID, s.Domain, log); err != nil {
		b.close()
		return nil, err
	}

	var store sites.Store = sites.NewMemoryStore()
	if cfg.Redis.URL != "" {
		client, err := sites.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		b.checks["redis"] = sites.RedisHealthcheck(client)
		store = sites.NewRedisStore(client, "subdomains")
	}

	b.cached = sites.NewCached(pg, store,
		sites.WithTTL(cfg.SiteCacheTTL),
		sites.WithCacheKey(fmt.Sprintf("site:%d", cfg.SiteID)),
		sites.WithCacheLogger(log),
	)
	return b, nil
}

// seedSite creates the site row from the settings domain if it is missing.
func seedSite(ctx context.Context, pg *sites.Postgres, id int64, domain string, log *slog.Logger) error {
	_, err := pg.Get(ctx, id)
	if err == nil || !errors.Is(err, sites.ErrSiteNotFound) || domain == "" {
		return err
	}
	log.InfoContext(ctx, "creating site", slog.Int64("id", id), slog.String("domain", domain))
	return pg.Upsert(ctx, sites.Site{ID: id, Domain: domain, Name: domain})
}

// registry returns the site registry for freshly loaded settings.
// A cached database registry is invalidated so edits to the row are seen.
func (b *siteBackend) registry(ctx context.Context, s *subdomains.Settings) (sites.Registry, error) {
	if b.cached == nil {
		if s.Domain == "" {
			return nil, fmt.Errorf("%w: no site domain", subdomains.ErrInvalidSettings)
		}
		return sites.Static(s.Domain), nil
	}
	if err := b.cached.Invalidate(ctx); err != nil {
		return nil, err
	}
	return b.cached, nil
}

func (b *siteBackend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
	b.closers = nil
}
