package sites

import "errors"

var (
	// ErrSiteNotFound is returned when the configured site does not exist.
	ErrSiteNotFound = errors.New("sites: site not found")

	// ErrEmptyDomain is returned when a site has no domain.
	ErrEmptyDomain = errors.New("sites: empty domain")

	// ErrCacheMiss is returned by a Store when a key is absent or expired.
	ErrCacheMiss = errors.New("sites: cache miss")

	ErrFailedToParseDBConfig    = errors.New("sites: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("sites: failed to open database connection")
	ErrSetDialect               = errors.New("sites migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("sites migrator: failed to apply migrations")

	ErrEmptyRedisURL         = errors.New("sites: empty redis connection url")
	ErrFailedToParseRedisURL = errors.New("sites: failed to parse redis connection url")
	ErrRedisConnection       = errors.New("sites: failed to connect to redis")
	ErrHealthcheckFailed     = errors.New("sites: healthcheck failed")
)
