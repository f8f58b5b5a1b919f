package subdomains

// Scheme is the URL scheme argument of [Config.Join] and [Reverser.Reverse].
// The zero value means "use the configured default"; an explicit empty scheme
// produces a scheme-relative URL.
type Scheme struct {
	value string
	set   bool
}

// UseScheme returns an explicit scheme. An empty string means scheme-relative.
func UseScheme(s string) Scheme {
	return Scheme{value: s, set: true}
}

// Secure is the explicit "https" scheme.
func Secure() Scheme {
	return UseScheme("https")
}

// Insecure is the explicit "http" scheme.
func Insecure() Scheme {
	return UseScheme("http")
}

// Relative is the explicit empty scheme.
func Relative() Scheme {
	return UseScheme("")
}

// IsSet reports whether the scheme was given explicitly.
func (s Scheme) IsSet() bool {
	return s.set
}

// Value returns the explicit scheme, or an empty string when unset.
func (s Scheme) Value() string {
	return s.value
}
