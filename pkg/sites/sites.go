package sites

import (
	"context"
	"strings"
)

// Registry reports the base domain of the current site.
type Registry interface {
	CurrentDomain(ctx context.Context) (string, error)
}

// Site is a row of the sites table.
type Site struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
	ID     int64  `json:"id"`
}

// staticRegistry always reports the same domain.
type staticRegistry struct {
	domain string
}

// Static returns a Registry for a fixed domain.
// The domain is lower-cased and stripped of surrounding whitespace.
func Static(domain string) Registry {
	return staticRegistry{domain: strings.ToLower(strings.TrimSpace(domain))}
}

func (s staticRegistry) CurrentDomain(context.Context) (string, error) {
	if s.domain == "" {
		return "", ErrEmptyDomain
	}
	return s.domain, nil
}
