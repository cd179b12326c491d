package domain

import "time"

const (
	// DefaultAPIURL is the base URL used when none is configured.
	DefaultAPIURL = "http://localhost:3000/api"

	// DefaultGCTime is how long an unobserved cache entry is kept.
	DefaultGCTime = 5 * time.Minute

	// DefaultRequestTimeout bounds a single HTTP attempt.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultRetryMax is the number of extra attempts for idempotent reads.
	DefaultRetryMax = 2
)

// Config is the resolved client configuration.
type Config struct {
	// APIURL is the base URL every endpoint path is appended to.
	APIURL string
	// TokenPath is the file holding the bearer token.
	TokenPath string
	// StaleTime is the default staleness window of queries. Zero means a
	// cached result is stale as soon as it is stored.
	StaleTime time.Duration
	// GCTime is how long an unobserved entry stays in the cache.
	GCTime time.Duration
	// RequestTimeout bounds a single HTTP attempt.
	RequestTimeout time.Duration
	// RetryMax is the number of retries for idempotent reads. Zero disables retries.
	RetryMax int
	// LogJSON switches the logger to JSON output.
	LogJSON bool
	// OTLPEndpoint enables span export when set.
	OTLPEndpoint string
}

// DefaultConfig returns the configuration used before any file or environment is applied.
func DefaultConfig() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		TokenPath:      DefaultTokenPath(),
		GCTime:         DefaultGCTime,
		RequestTimeout: DefaultRequestTimeout,
		RetryMax:       DefaultRetryMax,
	}
}
