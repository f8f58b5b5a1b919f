package subdomains_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subdomains"
)

func TestSubdomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sub     subdomains.Subdomain
		isNone  bool
		str     string
		qualify string
	}{
		{name: "zero value", sub: subdomains.Subdomain{}, isNone: true, str: "@", qualify: "example.com"},
		{name: "none", sub: subdomains.None(), isNone: true, str: "@", qualify: "example.com"},
		{name: "empty label", sub: subdomains.Named(""), isNone: true, str: "@", qualify: "example.com"},
		{name: "parsed at", sub: subdomains.ParseSubdomain("@"), isNone: true, str: "@", qualify: "example.com"},
		{name: "label", sub: subdomains.Named("api"), str: "api", qualify: "api.example.com"},
		{name: "dotted label", sub: subdomains.ParseSubdomain("eu.api"), str: "eu.api", qualify: "eu.api.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.isNone, tt.sub.IsNone())
			require.Equal(t, tt.str, tt.sub.String())
			require.Equal(t, tt.qualify, tt.sub.Qualify("example.com"))
		})
	}

	require.Equal(t, subdomains.None(), subdomains.Named(""))
}

func TestChoice_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ambient", subdomains.Choice{}.String())
	require.Equal(t, "ambient", subdomains.Ambient().String())
	require.Equal(t, "explicit:api", subdomains.Explicit("api").String())
	require.Equal(t, "same-group", subdomains.Explicit("").String())
	require.Equal(t, "same-group", subdomains.SameGroup().String())
	require.Equal(t, "none", subdomains.NoSubdomain().String())
}

func TestScheme(t *testing.T) {
	t.Parallel()

	require.False(t, subdomains.Scheme{}.IsSet())
	require.True(t, subdomains.Relative().IsSet())
	require.Empty(t, subdomains.Relative().Value())
	require.Equal(t, "https", subdomains.Secure().Value())
	require.Equal(t, "http", subdomains.Insecure().Value())
	require.Equal(t, "wss", subdomains.UseScheme("wss").Value())
}
