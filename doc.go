// Package subdomains builds fully-qualified URLs for named routes served on
// different subdomains of one site.
//
// A [Config] holds the static routing table (which subdomain is served by
// which routing configuration), the default subdomain and the URL schemes.
// It is built once at startup and never changes:
//
//	cfg := subdomains.NewConfig(
//	    subdomains.WithURLConf(subdomains.None(), "base"),
//	    subdomains.WithURLConf(subdomains.Named("www"), "base"),
//	    subdomains.WithURLConf(subdomains.Named("api"), "api"),
//	    subdomains.WithDefaultScheme("https"),
//	)
//
// A [Reverser] combines the configuration with a route resolver (for example
// [github.com/dmitrymomot/subdomains/pkg/urls.Registry]) and a site registry
// that knows the current base domain:
//
//	rv := subdomains.NewReverser(cfg, registry, sites.Static("example.com"))
//
//	rv.Reverse(ctx, "user", subdomains.OnSubdomain(subdomains.Named("api")), subdomains.WithArgs("42"))
//	// "https://api.example.com/users/42"
//
//	rv.RelativeReverse(ctx, "home")
//	// "//example.com/"
//
// # Choosing a Subdomain
//
// [Config.Select] picks the subdomain for a link rendered while handling a
// request. The [Choice] argument is one of:
//
//   - [Ambient]: the subdomain the request arrived on
//   - [Explicit]: a given subdomain
//   - [NoSubdomain]: the bare domain
//   - [SameGroup]: the request's subdomain if it shares the default routing
//     configuration, the configured default otherwise
//
// The ambient subdomain is stored in the request context by [Middleware].
//
// # Serving
//
// [Middleware] detects the subdomain of each request from its Host header and
// [Router] dispatches the request to the handler of the routing configuration
// that subdomain maps to.
package subdomains
