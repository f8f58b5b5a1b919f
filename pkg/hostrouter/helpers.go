package hostrouter

import (
	"net/http"
	"strings"
)

// GetDomain returns the normalized domain from the request Host header.
// Strips port, handles IPv6, and converts to lowercase.
//
// Examples:
//
//	"example.com:8080" -> "example.com"
//	"[::1]:8080" -> "[::1]"
//	"Example.COM" -> "example.com"
func GetDomain(r *http.Request) string {
	return Normalize(r.Host)
}

// SplitSubdomain splits host into the subdomain part and the base domain.
// The boolean reports whether host belongs to baseDomain at all: it is true
// for the bare domain (with an empty subdomain) and for any host ending in
// "."+baseDomain. A port on either argument is ignored.
func SplitSubdomain(host, baseDomain string) (string, bool) {
	host = Normalize(host)
	base := Normalize(baseDomain)
	if host == "" || base == "" {
		return "", false
	}

	// Exact match means no subdomain
	if host == base {
		return "", true
	}

	sub, found := strings.CutSuffix(host, "."+base)
	if !found || sub == "" {
		return "", false
	}
	return sub, true
}

// Normalize strips the port from host and converts it to lowercase.
// A trailing dot (fully-qualified form) is removed as well.
func Normalize(host string) string {
	host = strings.TrimSpace(host)
	// Strip port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		// Check it's not an IPv6 address
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	host = strings.TrimSuffix(host, ".")
	return strings.ToLower(host)
}
