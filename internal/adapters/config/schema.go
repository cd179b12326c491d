package config

import "time"

// fileSchema is the structure of ~/.reel/config.yaml.
// Pointer fields distinguish "unset" from zero values.
type fileSchema struct {
	APIURL         string         `yaml:"api_url"`
	TokenFile      string         `yaml:"token_file"`
	StaleTime      *time.Duration `yaml:"stale_time"`
	GCTime         *time.Duration `yaml:"gc_time"`
	RequestTimeout *time.Duration `yaml:"request_timeout"`
	RetryMax       *int           `yaml:"retry_max"`
	LogJSON        *bool          `yaml:"log_json"`
	OTLPEndpoint   string         `yaml:"otlp_endpoint"`
}

// envSchema lists the environment variables understood by the client.
type envSchema struct {
	ConfigFile     string         `env:"REEL_CONFIG"`
	APIURL         string         `env:"REEL_API_URL"`
	ViteAPIURL     string         `env:"VITE_API_URL"`
	TokenFile      string         `env:"REEL_TOKEN_FILE"`
	StaleTime      *time.Duration `env:"REEL_STALE_TIME"`
	GCTime         *time.Duration `env:"REEL_GC_TIME"`
	RequestTimeout *time.Duration `env:"REEL_REQUEST_TIMEOUT"`
	RetryMax       *int           `env:"REEL_RETRY_MAX"`
	LogJSON        *bool          `env:"REEL_LOG_JSON"`
	OTLPEndpoint   string         `env:"REEL_OTLP_ENDPOINT"`
}
