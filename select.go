package subdomains

import "net/http"

// Select picks the subdomain to reverse a URL for while handling r.
// r may be nil. The rules, in order:
//
//  1. Explicit and NoSubdomain choices are returned as given.
//  2. Without an ambient subdomain on r, the configured default is returned.
//  3. Ambient returns the request's subdomain.
//  4. SameGroup returns the request's subdomain if it is in the default
//     group, the configured default otherwise.
func (c *Config) Select(r *http.Request, choice Choice) Subdomain {
	switch choice.kind {
	case choiceExplicit:
		return Named(choice.label)
	case choiceNone:
		return None()
	}

	ambient := FromRequest(r)
	if ambient.IsNone() {
		return c.defaultSub
	}

	switch choice.kind {
	case choiceAmbient:
		return ambient
	case choiceSameGroup:
		if c.InDefaultGroup(ambient) {
			return ambient
		}
	}
	return c.defaultSub
}
