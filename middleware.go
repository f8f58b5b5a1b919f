package subdomains

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/subdomains/pkg/hostrouter"
	"github.com/dmitrymomot/subdomains/pkg/logger"
)

// Middleware stores the subdomain each request arrived on in its context.
//
// The subdomain is what precedes the current site domain in the Host header:
// "api.example.com" on site "example.com" yields "api", the bare domain
// yields none. Requests for hosts outside the site domain, and requests
// arriving while the site registry fails, are logged and carry no subdomain.
//
// Example:
//
//	handler := subdomains.Middleware(sites.Static("example.com"), log)(mux)
func Middleware(sites Sites, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNope()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sub := None()

			domain, err := sites.CurrentDomain(ctx)
			if err != nil {
				log.ErrorContext(ctx, "failed to load current site domain",
					slog.String("host", r.Host),
					slog.Any("error", err),
				)
			} else {
				label, ok := hostrouter.SplitSubdomain(r.Host, domain)
				if !ok {
					log.WarnContext(ctx, "host does not belong to the site domain",
						slog.String("host", hostrouter.GetDomain(r)),
						slog.String("domain", domain),
					)
				}
				sub = Named(label)
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSubdomain(ctx, sub)))
		})
	}
}
