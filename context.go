package subdomains

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/subdomains/pkg/logger"
)

// subdomainKey is the context key for the ambient subdomain of a request.
type subdomainKey struct{}

// ContextWithSubdomain returns a copy of ctx carrying sub as the ambient subdomain.
func ContextWithSubdomain(ctx context.Context, sub Subdomain) context.Context {
	return context.WithValue(ctx, subdomainKey{}, sub)
}

// FromContext returns the ambient subdomain stored in ctx, or None.
func FromContext(ctx context.Context) Subdomain {
	if sub, ok := ctx.Value(subdomainKey{}).(Subdomain); ok {
		return sub
	}
	return None()
}

// FromRequest returns the ambient subdomain of r, or None when r is nil or
// has not passed through [Middleware].
func FromRequest(r *http.Request) Subdomain {
	if r == nil {
		return None()
	}
	return FromContext(r.Context())
}

// SubdomainExtractor adds the ambient subdomain to log records.
//
// Example:
//
//	log := logger.New(logger.Config{}, subdomains.SubdomainExtractor())
func SubdomainExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if sub, ok := ctx.Value(subdomainKey{}).(Subdomain); ok {
			return slog.String("subdomain", sub.String()), true
		}
		return slog.Attr{}, false
	}
}
