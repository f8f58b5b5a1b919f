package urls

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
)

// HandlerFactory returns the handler served for a named route of a configuration.
type HandlerFactory func(confID, name string) http.Handler

// Build creates configurations from route tables (configuration id -> route
// name -> pattern), typically decoded from a settings file. Every route is
// registered for GET requests with the handler produced by newHandler.
func Build(tables map[string]map[string]string, newHandler HandlerFactory) (map[string]*Conf, error) {
	confs := make(map[string]*Conf, len(tables))

	for _, id := range slices.Sorted(maps.Keys(tables)) {
		conf := New()
		routes := tables[id]

		for _, name := range slices.Sorted(maps.Keys(routes)) {
			raw := routes[name]
			if _, err := parsePattern(raw); err != nil {
				return nil, fmt.Errorf("conf %q route %q: %w", id, name, err)
			}
			conf.Method(http.MethodGet, name, raw, newHandler(id, name))
		}

		confs[id] = conf
	}

	return confs, nil
}
