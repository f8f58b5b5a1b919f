package subdomains

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/subdomains/pkg/logger"
	"github.com/dmitrymomot/subdomains/pkg/urls"
)

// Resolver turns a route name into a path under a routing configuration.
// [urls.Registry] implements it.
type Resolver interface {
	Resolve(ctx context.Context, req urls.Request) (string, error)
}

// Sites reports the base domain of the current site.
// The registries in [github.com/dmitrymomot/subdomains/pkg/sites] implement it.
type Sites interface {
	CurrentDomain(ctx context.Context) (string, error)
}

// Reverser builds fully-qualified URLs for named routes.
// It is safe for concurrent use.
type Reverser struct {
	cfg      *Config
	resolver Resolver
	sites    Sites
	logger   *slog.Logger
}

// ReverserOption configures a Reverser.
type ReverserOption func(*Reverser)

// WithLogger sets the logger used for debug output.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) ReverserOption {
	return func(rv *Reverser) {
		if l != nil {
			rv.logger = l
		}
	}
}

// NewReverser creates a Reverser over cfg, a route resolver and a site registry.
func NewReverser(cfg *Config, resolver Resolver, sites Sites, opts ...ReverserOption) *Reverser {
	rv := &Reverser{
		cfg:      cfg,
		resolver: resolver,
		sites:    sites,
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(rv)
	}
	return rv
}

// Config returns the configuration the Reverser was built with.
func (rv *Reverser) Config() *Config {
	return rv.cfg
}

// reverseParams holds the optional arguments of a reverse call.
type reverseParams struct {
	params     map[string]string
	currentApp string
	args       []string
	scheme     Scheme
	subdomain  Subdomain
}

// ReverseOption configures a single reverse call.
type ReverseOption func(*reverseParams)

// OnSubdomain reverses the URL for sub. Defaults to no subdomain.
func OnSubdomain(sub Subdomain) ReverseOption {
	return func(p *reverseParams) {
		p.subdomain = sub
	}
}

// WithScheme sets the URL scheme. Defaults to the configured scheme.
func WithScheme(s Scheme) ReverseOption {
	return func(p *reverseParams) {
		p.scheme = s
	}
}

// WithArgs fills route parameters by position.
func WithArgs(args ...string) ReverseOption {
	return func(p *reverseParams) {
		p.args = append(p.args, args...)
	}
}

// WithParams fills route parameters by name.
func WithParams(params map[string]string) ReverseOption {
	return func(p *reverseParams) {
		p.params = params
	}
}

// WithCurrentApp sets the namespace hint passed to the resolver.
func WithCurrentApp(app string) ReverseOption {
	return func(p *reverseParams) {
		p.currentApp = app
	}
}

// Reverse returns the fully-qualified URL of the route called name.
//
// The subdomain selects the routing configuration (the resolver's default
// when the subdomain is not in the routing table) and is prefixed to the
// current site domain. Resolver errors are returned unchanged.
func (rv *Reverser) Reverse(ctx context.Context, name string, opts ...ReverseOption) (string, error) {
	var p reverseParams
	for _, opt := range opts {
		opt(&p)
	}

	confID, _ := rv.cfg.URLConf(p.subdomain)

	domain, err := rv.sites.CurrentDomain(ctx)
	if err != nil {
		return "", err
	}
	domain = p.subdomain.Qualify(domain)

	path, err := rv.resolver.Resolve(ctx, urls.Request{
		Name:       name,
		Conf:       confID,
		Args:       p.args,
		Params:     p.params,
		CurrentApp: p.currentApp,
	})
	if err != nil {
		return "", err
	}

	u := rv.cfg.Join(domain, path, p.scheme, p.subdomain)
	rv.logger.DebugContext(ctx, "url reversed",
		slog.String("name", name),
		slog.String("subdomain", p.subdomain.String()),
		slog.String("urlconf", confID),
		slog.String("url", u),
	)
	return u, nil
}

// SecureReverse is Reverse with the scheme fixed to "https".
func (rv *Reverser) SecureReverse(ctx context.Context, name string, opts ...ReverseOption) (string, error) {
	return rv.Reverse(ctx, name, append(opts[:len(opts):len(opts)], WithScheme(Secure()))...)
}

// InsecureReverse is Reverse with the scheme fixed to "http".
func (rv *Reverser) InsecureReverse(ctx context.Context, name string, opts ...ReverseOption) (string, error) {
	return rv.Reverse(ctx, name, append(opts[:len(opts):len(opts)], WithScheme(Insecure()))...)
}

// RelativeReverse is Reverse with an empty scheme, producing "//domain/path".
func (rv *Reverser) RelativeReverse(ctx context.Context, name string, opts ...ReverseOption) (string, error) {
	return rv.Reverse(ctx, name, append(opts[:len(opts):len(opts)], WithScheme(Relative()))...)
}

// ReverseRequest selects the subdomain for r with choice and reverses name
// on it. The selected subdomain overrides any OnSubdomain option.
func (rv *Reverser) ReverseRequest(r *http.Request, name string, choice Choice, opts ...ReverseOption) (string, error) {
	sub := rv.cfg.Select(r, choice)
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	return rv.Reverse(ctx, name, append(opts[:len(opts):len(opts)], OnSubdomain(sub))...)
}
