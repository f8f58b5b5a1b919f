package urls

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Request describes a route to reverse.
type Request struct {
	// Params fills parameters by name. Mutually exclusive with Args.
	Params map[string]string

	// Name is the route name, optionally namespaced ("blog:article").
	Name string

	// Conf is the configuration id; empty selects the registry default.
	Conf string

	// CurrentApp is a namespace hint tried first for unqualified names.
	CurrentApp string

	// Args fills parameters by position.
	Args []string
}

// Registry holds routing configurations by id.
// It is immutable after NewRegistry.
type Registry struct {
	confs       map[string]*Conf
	defaultConf string
}

// NewRegistry creates a registry over confs. defaultConf is used for
// requests that do not name a configuration.
func NewRegistry(defaultConf string, confs map[string]*Conf) *Registry {
	return &Registry{
		confs:       maps.Clone(confs),
		defaultConf: defaultConf,
	}
}

// Default returns the id of the default configuration.
func (r *Registry) Default() string {
	return r.defaultConf
}

// Conf returns the configuration registered under id.
// An empty id returns the default configuration.
func (r *Registry) Conf(id string) (*Conf, bool) {
	if id == "" {
		id = r.defaultConf
	}
	c, ok := r.confs[id]
	return c, ok
}

// IDs returns the configuration ids in lexical order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.confs))
}

// Handlers returns every configuration as an http.Handler keyed by id.
func (r *Registry) Handlers() map[string]http.Handler {
	out := make(map[string]http.Handler, len(r.confs))
	for id, c := range r.confs {
		out[id] = c
	}
	return out
}

// Resolve turns req into a path under the requested configuration.
func (r *Registry) Resolve(_ context.Context, req Request) (string, error) {
	conf, ok := r.Conf(req.Conf)
	if !ok {
		id := req.Conf
		if id == "" {
			id = r.defaultConf
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownConf, id)
	}

	if req.CurrentApp != "" && !strings.Contains(req.Name, ":") {
		if _, ok := conf.Pattern(req.CurrentApp + ":" + req.Name); ok {
			return conf.Reverse(req.CurrentApp+":"+req.Name, req.Args, req.Params)
		}
	}

	return conf.Reverse(req.Name, req.Args, req.Params)
}
