// Package hostrouter parses request hosts relative to a base domain.
//
// It answers one question for the subdomain middleware: given the Host header
// of a request and the domain of the current site, which subdomain (if any)
// did the request arrive on?
//
// # Host Normalization
//
// Ports are stripped and hosts are lower-cased before matching. IPv6 literals
// keep their brackets:
//
//	"Example.COM:8080" -> "example.com"
//	"[::1]:8080"       -> "[::1]"
//
// # Subdomain Extraction
//
//	sub, ok := hostrouter.SplitSubdomain("api.example.com", "example.com")
//	// sub == "api", ok == true
//
//	sub, ok = hostrouter.SplitSubdomain("example.com", "example.com")
//	// sub == "", ok == true (request is on the bare domain)
//
//	sub, ok = hostrouter.SplitSubdomain("other.com", "example.com")
//	// sub == "", ok == false (host does not belong to the domain)
package hostrouter
