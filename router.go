package subdomains

import "net/http"

// Router dispatches requests to the handler of the routing configuration
// their ambient subdomain maps to. Use it behind [Middleware].
type Router struct {
	cfg      *Config
	handlers map[string]http.Handler
	fallback http.Handler
}

// NewRouter creates a Router. handlers maps routing configuration ids to
// handlers; fallback serves subdomains missing from the routing table or
// mapped to an id without a handler. A nil fallback responds 404.
//
// Example:
//
//	router := subdomains.NewRouter(cfg, registry.Handlers(), defaultConf)
//	http.ListenAndServe(":8080", subdomains.Middleware(site, log)(router))
func NewRouter(cfg *Config, handlers map[string]http.Handler, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}
	return &Router{cfg: cfg, handlers: handlers, fallback: fallback}
}

// ServeHTTP routes the request by its ambient subdomain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if id, ok := rt.cfg.URLConf(FromRequest(r)); ok {
		if h, ok := rt.handlers[id]; ok {
			h.ServeHTTP(w, r)
			return
		}
	}
	rt.fallback.ServeHTTP(w, r)
}
