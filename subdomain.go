package subdomains

// noneLabel is how the bare domain is written in settings files and logs.
const noneLabel = "@"

// Subdomain is either a host label (or dotted labels) preceding the base
// domain, or none. The zero value is none. Subdomain is comparable and can be
// used as a map key.
type Subdomain struct {
	label string
}

// None returns the subdomain value meaning "no subdomain".
func None() Subdomain {
	return Subdomain{}
}

// Named returns the subdomain with the given label.
// An empty label is the same as None.
func Named(label string) Subdomain {
	return Subdomain{label: label}
}

// ParseSubdomain converts a settings-file key into a Subdomain.
// Both "" and "@" mean no subdomain.
func ParseSubdomain(s string) Subdomain {
	if s == noneLabel {
		return None()
	}
	return Named(s)
}

// IsNone reports whether s means "no subdomain".
func (s Subdomain) IsNone() bool {
	return s.label == ""
}

// Label returns the subdomain label, or an empty string for none.
func (s Subdomain) Label() string {
	return s.label
}

// Qualify prefixes domain with the subdomain label.
// For none it returns domain unchanged.
func (s Subdomain) Qualify(domain string) string {
	if s.IsNone() {
		return domain
	}
	return s.label + "." + domain
}

// String returns the label, or "@" for none.
func (s Subdomain) String() string {
	if s.IsNone() {
		return noneLabel
	}
	return s.label
}
