package subdomains_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subdomains"
)

func TestConfig_DefaultGroup(t *testing.T) {
	t.Parallel()

	t.Run("members share the bare domain urlconf", func(t *testing.T) {
		t.Parallel()

		cfg := newTestConfig()
		require.Equal(t,
			[]subdomains.Subdomain{subdomains.None(), subdomains.Named("blog"), subdomains.Named("www")},
			cfg.DefaultGroup(),
		)
		require.True(t, cfg.InDefaultGroup(subdomains.Named("www")))
		require.False(t, cfg.InDefaultGroup(subdomains.Named("api")))
		require.False(t, cfg.InDefaultGroup(subdomains.Named("shop")))
	})

	t.Run("bare domain is always a member", func(t *testing.T) {
		t.Parallel()

		cfg := subdomains.NewConfig(subdomains.WithURLConf(subdomains.Named("api"), "api"))
		require.Equal(t, []subdomains.Subdomain{subdomains.None()}, cfg.DefaultGroup())
		require.True(t, cfg.InDefaultGroup(subdomains.None()))
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()

		cfg := subdomains.NewConfig()
		require.True(t, cfg.InDefaultGroup(subdomains.None()))
		require.Empty(t, cfg.Subdomains())
		require.True(t, cfg.DefaultSubdomain().IsNone())
	})
}

func TestConfig_URLConf(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(subdomains.WithURLConfs(map[subdomains.Subdomain]string{
		subdomains.Named("shop"): "shop",
	}))

	id, ok := cfg.URLConf(subdomains.Named("api"))
	require.True(t, ok)
	require.Equal(t, "api", id)

	id, ok = cfg.URLConf(subdomains.None())
	require.True(t, ok)
	require.Equal(t, "base", id)

	_, ok = cfg.URLConf(subdomains.Named("missing"))
	require.False(t, ok)

	require.Equal(t, []subdomains.Subdomain{
		subdomains.None(),
		subdomains.Named("api"),
		subdomains.Named("blog"),
		subdomains.Named("shop"),
		subdomains.Named("www"),
	}, cfg.Subdomains())
}

func TestConfig_SchemeFor(t *testing.T) {
	t.Parallel()

	cfg := subdomains.NewConfig(
		subdomains.WithDefaultScheme("https"),
		subdomains.WithSubdomainScheme(subdomains.Named("legacy"), "http"),
		subdomains.WithSubdomainScheme(subdomains.Named("blank"), ""),
	)

	require.Equal(t, "https", cfg.SchemeFor(subdomains.None()))
	require.Equal(t, "http", cfg.SchemeFor(subdomains.Named("legacy")))
	require.Equal(t, "https", cfg.SchemeFor(subdomains.Named("blank")))
	require.Empty(t, subdomains.NewConfig().SchemeFor(subdomains.None()))
}
