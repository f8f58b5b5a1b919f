package subdomains_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subdomains"
	"github.com/dmitrymomot/subdomains/pkg/sites"
)

// echoSubdomain writes the ambient subdomain of the request.
func echoSubdomain() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, subdomains.FromRequest(r).String())
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    string
		want    string
		wantLog string
	}{
		{name: "bare domain", host: "example.com", want: "@"},
		{name: "subdomain", host: "api.example.com", want: "api"},
		{name: "nested subdomain", host: "eu.api.example.com", want: "eu.api"},
		{name: "port and case", host: "API.Example.COM:8080", want: "api"},
		{name: "trailing dot", host: "www.example.com.", want: "www"},
		{name: "foreign host", host: "evil.test", want: "@", wantLog: "host does not belong to the site domain"},
		{name: "suffix lookalike", host: "notexample.com", want: "@", wantLog: "host does not belong to the site domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))
			h := subdomains.Middleware(sites.Static("example.com"), log)(echoSubdomain())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tt.want, rec.Body.String())
			if tt.wantLog != "" {
				require.Contains(t, buf.String(), tt.wantLog)
			} else {
				require.Empty(t, buf.String())
			}
		})
	}
}

func TestMiddleware_RegistryFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := subdomains.Middleware(sites.Static(""), log)(echoSubdomain())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "api.example.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "@", rec.Body.String())
	require.Contains(t, buf.String(), "failed to load current site domain")
	require.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestMiddleware_NilLogger(t *testing.T) {
	t.Parallel()

	h := subdomains.Middleware(sites.Static("example.com"), nil)(echoSubdomain())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "other.test"
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })
	require.Equal(t, "@", rec.Body.String())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	require.True(t, subdomains.FromContext(context.Background()).IsNone())
	require.True(t, subdomains.FromRequest(nil).IsNone())

	ctx := subdomains.ContextWithSubdomain(context.Background(), subdomains.Named("api"))
	require.Equal(t, subdomains.Named("api"), subdomains.FromContext(ctx))
}
