package urls

import (
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
)

// routeTable maps route names to parsed patterns.
// It is shared by a Conf and every group created from it.
type routeTable struct {
	patterns map[string]*pattern
	mu       sync.RWMutex
}

func (t *routeTable) add(name string, p *pattern) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.patterns[name]; ok {
		panic(fmt.Sprintf("urls: route name %q registered twice", name))
	}
	t.patterns[name] = p
}

func (t *routeTable) get(name string) (*pattern, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.patterns[name]
	return p, ok
}

// Conf is a routing configuration: a chi router whose routes have names.
// Register routes during setup; a Conf is safe for concurrent use once serving.
type Conf struct {
	router chi.Router
	table  *routeTable
	prefix string
}

// New creates an empty routing configuration.
func New() *Conf {
	return &Conf{
		router: chi.NewRouter(),
		table:  &routeTable{patterns: make(map[string]*pattern)},
	}
}

// Router returns the underlying chi.Router.
func (c *Conf) Router() chi.Router {
	return c.router
}

// ServeHTTP dispatches the request through the chi router.
func (c *Conf) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}

// Get registers a named handler for GET requests.
// An empty name registers the route without making it reversible.
func (c *Conf) Get(name, pattern string, h http.HandlerFunc) {
	c.Method(http.MethodGet, name, pattern, h)
}

// Post registers a named handler for POST requests.
func (c *Conf) Post(name, pattern string, h http.HandlerFunc) {
	c.Method(http.MethodPost, name, pattern, h)
}

// Put registers a named handler for PUT requests.
func (c *Conf) Put(name, pattern string, h http.HandlerFunc) {
	c.Method(http.MethodPut, name, pattern, h)
}

// Patch registers a named handler for PATCH requests.
func (c *Conf) Patch(name, pattern string, h http.HandlerFunc) {
	c.Method(http.MethodPatch, name, pattern, h)
}

// Delete registers a named handler for DELETE requests.
func (c *Conf) Delete(name, pattern string, h http.HandlerFunc) {
	c.Method(http.MethodDelete, name, pattern, h)
}

// Method registers a named handler for the given HTTP method.
// It panics on an invalid pattern or a duplicate name, like chi does for bad routes.
func (c *Conf) Method(method, name, pattern string, h http.Handler) {
	c.remember(name, pattern)
	c.router.Method(method, pattern, h)
}

// Handle registers a named handler for all HTTP methods.
func (c *Conf) Handle(name, pattern string, h http.Handler) {
	c.remember(name, pattern)
	c.router.Handle(pattern, h)
}

// Use appends middleware to the router's middleware stack.
func (c *Conf) Use(mw ...func(http.Handler) http.Handler) {
	c.router.Use(mw...)
}

// Route creates a route group with a pattern prefix.
// Names registered inside fn are reversed with the prefix applied.
func (c *Conf) Route(prefix string, fn func(c *Conf)) {
	c.router.Route(prefix, func(r chi.Router) {
		fn(&Conf{
			router: r,
			table:  c.table,
			prefix: joinPattern(c.prefix, prefix),
		})
	})
}

// Include mounts another configuration under prefix and exposes its route
// names as "namespace:name". Routes added to sub after Include are served but
// not reversible through c.
func (c *Conf) Include(namespace, prefix string, sub *Conf) {
	c.router.Mount(prefix, sub.router)

	mount := joinPattern(c.prefix, prefix)
	for _, name := range sub.Names() {
		p, _ := sub.table.get(name)
		full := joinPattern(mount, p.raw)
		if namespace != "" {
			name = namespace + ":" + name
		}
		c.rememberFull(name, full)
	}
}

// Pattern returns the full chi pattern registered under name.
func (c *Conf) Pattern(name string) (string, bool) {
	p, ok := c.table.get(name)
	if !ok {
		return "", false
	}
	return p.raw, true
}

// Names returns every reversible route name in lexical order.
func (c *Conf) Names() []string {
	c.table.mu.RLock()
	defer c.table.mu.RUnlock()

	names := make([]string, 0, len(c.table.patterns))
	for name := range c.table.patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reverse turns a route name into a path using either positional args or
// named params.
func (c *Conf) Reverse(name string, args []string, params map[string]string) (string, error) {
	p, ok := c.table.get(name)
	if !ok {
		return "", fmt.Errorf("%w: route %q is not defined", ErrNoReverseMatch, name)
	}
	return p.build(args, params)
}

func (c *Conf) remember(name, p string) {
	if name == "" {
		return
	}
	c.rememberFull(name, joinPattern(c.prefix, p))
}

func (c *Conf) rememberFull(name, full string) {
	parsed, err := parsePattern(full)
	if err != nil {
		panic(err.Error())
	}
	c.table.add(name, parsed)
}
