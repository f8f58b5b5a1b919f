package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/subdomains"
)

// Page is the response body of every configured route.
type Page struct {
	Links     map[string]string `json:"links,omitempty"`
	Conf      string            `json:"urlconf"`
	Route     string            `json:"route"`
	Subdomain string            `json:"subdomain"`
	URL       string            `json:"url"`
}

// page answers with the route's own reversed URL plus links to every route
// of the same configuration that takes no parameters.
func (st *State) page(confID, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sub := subdomains.FromRequest(r)

		conf, _ := st.registry.Conf(confID)
		pattern, _ := conf.Pattern(name)

		self, err := st.reverser.Reverse(ctx, name,
			subdomains.OnSubdomain(sub),
			subdomains.WithParams(routeParams(r, pattern)),
		)
		if err != nil {
			st.log.ErrorContext(ctx, "failed to reverse current route",
				slog.String("route", name),
				slog.Any("error", err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		p := Page{
			Conf:      confID,
			Route:     name,
			Subdomain: sub.String(),
			URL:       self,
			Links:     st.links(r, confID, sub),
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	})
}

func (st *State) links(r *http.Request, confID string, sub subdomains.Subdomain) map[string]string {
	conf, ok := st.registry.Conf(confID)
	if !ok {
		return nil
	}

	out := make(map[string]string)
	for _, name := range conf.Names() {
		pattern, _ := conf.Pattern(name)
		if strings.ContainsAny(pattern, "{*") {
			continue
		}
		if u, err := st.reverser.Reverse(r.Context(), name, subdomains.OnSubdomain(sub)); err == nil {
			out[name] = u
		}
	}
	return out
}

// routeParams collects the chi URL parameters of the matched route.
// The "*" of mounted sub-routers is kept only for wildcard patterns.
func routeParams(r *http.Request, pattern string) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	wildcard := strings.HasSuffix(pattern, "*")
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" && !wildcard {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
