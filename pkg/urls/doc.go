// Package urls provides named routes on top of chi and reverses them into paths.
//
// A [Conf] is one routing configuration: a chi router whose routes carry a
// name. A [Registry] holds several configurations by id (for example one per
// group of subdomains) and resolves a route name into a path.
//
// # Declaring Routes
//
//	base := urls.New()
//	base.Get("home", "/", homeHandler)
//	base.Route("/articles", func(c *urls.Conf) {
//	    c.Get("article-list", "/", listHandler)
//	    c.Get("article", "/{slug:[a-z0-9-]+}", articleHandler)
//	})
//
//	api := urls.New()
//	api.Get("user", "/users/{id:[0-9]+}", userHandler)
//
//	reg := urls.NewRegistry("base", map[string]*urls.Conf{
//	    "base": base,
//	    "api":  api,
//	})
//
// # Reversing
//
// Parameters are filled either by position or by name, never both:
//
//	reg.Resolve(ctx, urls.Request{Name: "article", Args: []string{"hello-world"}})
//	// "/articles/hello-world"
//
//	reg.Resolve(ctx, urls.Request{Name: "user", Conf: "api", Params: map[string]string{"id": "42"}})
//	// "/users/42"
//
// A value that does not satisfy the parameter's regular expression, a missing
// or extra parameter, or an unknown name results in [ErrNoReverseMatch].
//
// # Namespaces
//
// [Conf.Include] mounts another configuration under a prefix and exposes its
// names as "namespace:name". When [Request.CurrentApp] is set, an unqualified
// name is first looked up as "CurrentApp:name".
package urls
