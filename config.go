package subdomains

import (
	"maps"
	"slices"
	"strings"
)

// Config is the static subdomain configuration: the routing table, the
// default subdomain and URL schemes. It is immutable once NewConfig returns
// and safe for concurrent use.
type Config struct {
	urlconfs      map[Subdomain]string
	schemes       map[Subdomain]string
	defaultGroup  map[Subdomain]struct{}
	defaultSub    Subdomain
	defaultScheme string
}

// Option configures a Config.
type Option func(*Config)

// WithURLConf maps a subdomain to a routing configuration id.
// Subdomains mapped to the same id form a group.
func WithURLConf(sub Subdomain, confID string) Option {
	return func(c *Config) {
		c.urlconfs[sub] = confID
	}
}

// WithURLConfs adds every entry of m to the routing table.
func WithURLConfs(m map[Subdomain]string) Option {
	return func(c *Config) {
		maps.Copy(c.urlconfs, m)
	}
}

// WithDefaultSubdomain sets the subdomain used when a request carries none.
// Defaults to no subdomain.
func WithDefaultSubdomain(sub Subdomain) Option {
	return func(c *Config) {
		c.defaultSub = sub
	}
}

// WithDefaultScheme sets the scheme used when neither the caller nor a
// per-subdomain override provides one. Defaults to "" (scheme-relative).
func WithDefaultScheme(scheme string) Option {
	return func(c *Config) {
		c.defaultScheme = scheme
	}
}

// WithSubdomainScheme overrides the default scheme for one subdomain.
func WithSubdomainScheme(sub Subdomain, scheme string) Option {
	return func(c *Config) {
		c.schemes[sub] = scheme
	}
}

// NewConfig creates a Config from the given options.
// The default group is computed once here.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		urlconfs: make(map[Subdomain]string),
		schemes:  make(map[Subdomain]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.defaultGroup = defaultGroup(c.urlconfs)
	return c
}

// defaultGroup collects the subdomains sharing the routing configuration of
// the bare domain. The bare domain itself is always a member.
func defaultGroup(urlconfs map[Subdomain]string) map[Subdomain]struct{} {
	group := map[Subdomain]struct{}{None(): {}}

	base, ok := urlconfs[None()]
	if !ok {
		return group
	}
	for sub, conf := range urlconfs {
		if conf == base {
			group[sub] = struct{}{}
		}
	}
	return group
}

// URLConf returns the routing configuration id mapped to sub.
func (c *Config) URLConf(sub Subdomain) (string, bool) {
	id, ok := c.urlconfs[sub]
	return id, ok
}

// Subdomains returns the routing table keys, bare domain first, then by label.
func (c *Config) Subdomains() []Subdomain {
	return sortSubdomains(slices.Collect(maps.Keys(c.urlconfs)))
}

// DefaultGroup returns the members of the default group, bare domain first.
func (c *Config) DefaultGroup() []Subdomain {
	return sortSubdomains(slices.Collect(maps.Keys(c.defaultGroup)))
}

// InDefaultGroup reports whether sub shares the bare domain's routing configuration.
func (c *Config) InDefaultGroup(sub Subdomain) bool {
	_, ok := c.defaultGroup[sub]
	return ok
}

// DefaultSubdomain returns the configured default subdomain.
func (c *Config) DefaultSubdomain() Subdomain {
	return c.defaultSub
}

// SchemeFor returns the scheme used for sub when the caller gives none:
// the per-subdomain override if non-empty, then the global default.
func (c *Config) SchemeFor(sub Subdomain) string {
	if s := c.schemes[sub]; s != "" {
		return s
	}
	return c.defaultScheme
}

func sortSubdomains(subs []Subdomain) []Subdomain {
	slices.SortFunc(subs, func(a, b Subdomain) int {
		return strings.Compare(a.label, b.label)
	})
	return subs
}
