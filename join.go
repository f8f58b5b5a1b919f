package subdomains

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// netlocSchemes are schemes whose URLs always carry an authority part, so a
// "//" is emitted even when the domain is empty.
var netlocSchemes = map[string]bool{
	"ftp":      true,
	"http":     true,
	"gopher":   true,
	"nntp":     true,
	"telnet":   true,
	"imap":     true,
	"wais":     true,
	"file":     true,
	"mms":      true,
	"https":    true,
	"shttp":    true,
	"snews":    true,
	"prospero": true,
	"rtsp":     true,
	"rtspu":    true,
	"rsync":    true,
	"svn":      true,
	"svn+ssh":  true,
	"sftp":     true,
	"nfs":      true,
	"git":      true,
	"git+ssh":  true,
}

// Join assembles a URL from domain, path and scheme. An unset scheme falls
// back to the scheme configured for sub, then to the global default; an empty
// result yields a scheme-relative URL ("//example.com/a/").
func (c *Config) Join(domain, path string, scheme Scheme, sub Subdomain) string {
	s := scheme.Value()
	if !scheme.IsSet() {
		s = c.SchemeFor(sub)
	}
	return unparse(s, asciiHost(domain), path)
}

// unparse composes scheme, host and path with the usual URL rules:
// the authority is introduced by "//" and separated from a relative path by "/".
func unparse(scheme, host, path string) string {
	u := path
	if host != "" || (netlocSchemes[scheme] && !strings.HasPrefix(u, "//")) {
		if u != "" && u[0] != '/' {
			u = "/" + u
		}
		u = "//" + host + u
	}
	if scheme != "" {
		u = scheme + ":" + u
	}
	return u
}

// asciiHost converts an internationalized host to its ASCII form.
// ASCII hosts and hosts that fail conversion are returned unchanged.
func asciiHost(host string) string {
	if isASCII(host) {
		return host
	}

	name, port := host, ""
	if i := strings.LastIndexByte(host, ':'); i != -1 && !strings.Contains(host[i:], "]") {
		name, port = host[:i], host[i:]
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return host
	}
	return ascii + port
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
