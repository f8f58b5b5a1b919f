package subdomains_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/subdomains"
	"github.com/dmitrymomot/subdomains/pkg/urls"
)

// newTestConfig mirrors a typical deployment: the bare domain, www and blog
// share the "base" routes, api has its own.
func newTestConfig(opts ...subdomains.Option) *subdomains.Config {
	base := []subdomains.Option{
		subdomains.WithURLConf(subdomains.None(), "base"),
		subdomains.WithURLConf(subdomains.Named("www"), "base"),
		subdomains.WithURLConf(subdomains.Named("blog"), "base"),
		subdomains.WithURLConf(subdomains.Named("api"), "api"),
		subdomains.WithDefaultSubdomain(subdomains.Named("www")),
	}
	return subdomains.NewConfig(append(base, opts...)...)
}

func newTestRegistry() *urls.Registry {
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	base := urls.New()
	base.Get("home", "/", ok)
	base.Get("article", "/articles/{slug}", ok)

	api := urls.New()
	api.Get("user", "/users/{id:[0-9]+}", ok)
	api.Get("home", "/v1/", ok)

	return urls.NewRegistry("base", map[string]*urls.Conf{"base": base, "api": api})
}

// requestOn returns a request whose ambient subdomain is sub.
func requestOn(sub subdomains.Subdomain) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(subdomains.ContextWithSubdomain(context.Background(), sub))
}
