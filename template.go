package subdomains

import (
	"fmt"
	"html/template"
	"net/http"
)

// FuncMap returns template functions that reverse URLs relative to r:
//
//	{{ url "article" .Slug }}             on the request's subdomain
//	{{ subdomain_url "api" "user" .ID }}  on an explicit subdomain ("" = same group)
//	{{ root_url "home" }}                 on the bare domain
//
// Arguments after the route name fill its parameters by position.
func (rv *Reverser) FuncMap(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"url": func(name string, args ...any) (string, error) {
			return rv.ReverseRequest(r, name, Ambient(), WithArgs(stringify(args)...))
		},
		"subdomain_url": func(label, name string, args ...any) (string, error) {
			return rv.ReverseRequest(r, name, Explicit(label), WithArgs(stringify(args)...))
		},
		"root_url": func(name string, args ...any) (string, error) {
			return rv.ReverseRequest(r, name, NoSubdomain(), WithArgs(stringify(args)...))
		},
	}
}

func stringify(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = fmt.Sprint(a)
	}
	return out
}
