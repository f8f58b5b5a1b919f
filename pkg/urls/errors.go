package urls

import "errors"

var (
	// ErrNoReverseMatch is returned when a route name cannot be turned into a path.
	ErrNoReverseMatch = errors.New("urls: no reverse match")

	// ErrUnknownConf is returned when a request names a configuration the registry does not hold.
	ErrUnknownConf = errors.New("urls: unknown url configuration")

	// ErrInvalidPattern is returned when a route pattern cannot be parsed.
	ErrInvalidPattern = errors.New("urls: invalid route pattern")
)
