// Package logger builds log/slog loggers for services that reverse and serve
// subdomain URLs.
//
// Records are written as JSON (or text) to stdout. Context extractors add
// request-scoped attributes such as the ambient subdomain to every record,
// and errors can be fanned out to Sentry when a DSN is configured:
//
//	log := logger.New(logger.Config{
//		Level:     "debug",
//		SentryDSN: os.Getenv("SENTRY_DSN"),
//	}, subdomains.SubdomainExtractor())
//
//	log.InfoContext(ctx, "url reversed", slog.String("url", u))
//	// {"level":"INFO","msg":"url reversed","url":"https://api.example.com/","subdomain":"api"}
//
// Without a DSN, or when Sentry fails to initialize, the logger falls back to
// stdout only.
package logger
