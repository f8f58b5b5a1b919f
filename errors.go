package subdomains

import "errors"

var (
	// ErrReadSettings is returned when the settings file cannot be read.
	ErrReadSettings = errors.New("subdomains: failed to read settings file")

	// ErrParseSettings is returned when the settings file is not valid YAML.
	ErrParseSettings = errors.New("subdomains: failed to parse settings")

	// ErrEnvSettings is returned when environment overrides cannot be applied.
	ErrEnvSettings = errors.New("subdomains: failed to apply environment settings")

	// ErrInvalidSettings is returned when settings are inconsistent.
	ErrInvalidSettings = errors.New("subdomains: invalid settings")
)
