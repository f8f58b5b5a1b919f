package subdomains

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Settings is the file form of a Config plus the route tables and site
// domain used by the command-line tool. Keys naming subdomains accept "@"
// (or "") for the bare domain.
//
//	domain: example.com
//	default_scheme: https
//	default_subdomain: www
//	schemes:
//	  api: https
//	urlconfs:
//	  "@": base
//	  www: base
//	  api: api
//	routes:
//	  base:
//	    home: /
//	    article: /articles/{slug}
//	  api:
//	    user: /users/{id:[0-9]+}
//
// Environment variables override the scalar fields.
type Settings struct {
	Schemes          map[string]string            `yaml:"schemes"`
	URLConfs         map[string]string            `yaml:"urlconfs"`
	Routes           map[string]map[string]string `yaml:"routes"`
	Domain           string                       `yaml:"domain" env:"SITE_DOMAIN"`
	DefaultScheme    string                       `yaml:"default_scheme" env:"SUBDOMAINS_DEFAULT_SCHEME"`
	DefaultSubdomain string                       `yaml:"default_subdomain" env:"SUBDOMAINS_DEFAULT_SUBDOMAIN"`
	DefaultURLConf   string                       `yaml:"default_urlconf" env:"SUBDOMAINS_DEFAULT_URLCONF"`
}

// LoadSettings reads settings from a YAML file and applies environment overrides.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadSettings, err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings and applies environment overrides.
func ParseSettings(data []byte) (*Settings, error) {
	s := &Settings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Join(ErrParseSettings, err)
	}

	if err := env.Parse(s); err != nil {
		return nil, errors.Join(ErrEnvSettings, err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if err := uniqueKeys("urlconfs", s.URLConfs); err != nil {
		return err
	}
	if err := uniqueKeys("schemes", s.Schemes); err != nil {
		return err
	}
	if len(s.Routes) == 0 {
		return nil
	}
	for sub, id := range s.URLConfs {
		if _, ok := s.Routes[id]; !ok {
			return fmt.Errorf("%w: subdomain %q maps to undefined urlconf %q", ErrInvalidSettings, sub, id)
		}
	}
	if id := s.DefaultConf(); id != "" {
		if _, ok := s.Routes[id]; !ok {
			return fmt.Errorf("%w: default urlconf %q is not defined", ErrInvalidSettings, id)
		}
	}
	return nil
}

// uniqueKeys rejects tables that name the bare domain both as "@" and "".
func uniqueKeys(table string, m map[string]string) error {
	_, at := m[noneLabel]
	_, empty := m[""]
	if at && empty {
		return fmt.Errorf("%w: %s names the bare domain twice (\"@\" and \"\")", ErrInvalidSettings, table)
	}
	return nil
}

// DefaultConf returns the routing configuration used for subdomains missing
// from the routing table: default_urlconf if set, else the bare domain's.
func (s *Settings) DefaultConf() string {
	if s.DefaultURLConf != "" {
		return s.DefaultURLConf
	}
	if id, ok := s.URLConfs[noneLabel]; ok {
		return id
	}
	return s.URLConfs[""]
}

// Config builds the immutable Config described by the settings.
func (s *Settings) Config() *Config {
	opts := []Option{
		WithDefaultScheme(s.DefaultScheme),
		WithDefaultSubdomain(ParseSubdomain(s.DefaultSubdomain)),
	}
	for key, id := range s.URLConfs {
		opts = append(opts, WithURLConf(ParseSubdomain(key), id))
	}
	for key, scheme := range s.Schemes {
		opts = append(opts, WithSubdomainScheme(ParseSubdomain(key), scheme))
	}
	return NewConfig(opts...)
}
