package subdomains_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subdomains"
)

func TestReverser_FuncMap(t *testing.T) {
	t.Parallel()

	rv := newTestReverser()

	tests := []struct {
		name string
		sub  subdomains.Subdomain
		tmpl string
		want string
	}{
		{
			name: "url on request subdomain",
			sub:  subdomains.Named("blog"),
			tmpl: `{{ url "article" "intro" }}`,
			want: "https://blog.example.com/articles/intro",
		},
		{
			name: "subdomain_url with explicit label",
			sub:  subdomains.Named("blog"),
			tmpl: `{{ subdomain_url "api" "user" 42 }}`,
			want: "https://api.example.com/users/42",
		},
		{
			name: "subdomain_url with empty label stays in group",
			sub:  subdomains.Named("api"),
			tmpl: `{{ subdomain_url "" "home" }}`,
			want: "https://www.example.com/",
		},
		{
			name: "root_url",
			sub:  subdomains.Named("api"),
			tmpl: `{{ root_url "home" }}`,
			want: "https://example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := requestOn(tt.sub)
			tpl, err := template.New("t").Funcs(rv.FuncMap(r)).Parse(tt.tmpl)
			require.NoError(t, err)

			var sb strings.Builder
			require.NoError(t, tpl.Execute(&sb, nil))
			require.Equal(t, tt.want, sb.String())
		})
	}
}

func TestReverser_FuncMapError(t *testing.T) {
	t.Parallel()

	rv := newTestReverser()
	tpl := template.Must(template.New("t").Funcs(rv.FuncMap(nil)).Parse(`{{ url "missing" }}`))

	var sb strings.Builder
	err := tpl.Execute(&sb, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}
