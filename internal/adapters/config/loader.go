// Package config loads the client configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	path   string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// WithPath sets an explicit config file path. A missing explicit file is an error.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Load resolves the configuration.
func (l *Loader) Load() (*domain.Config, error) {
	var vars envSchema
	if err := env.Parse(&vars); err != nil {
		return nil, domain.Wrap(err, domain.ErrConfigParseFailed)
	}

	cfg := domain.DefaultConfig()

	path, explicit := l.path, l.path != ""
	if !explicit && vars.ConfigFile != "" {
		path, explicit = vars.ConfigFile, true
	}
	if path == "" {
		path = domain.DefaultConfigPath()
	}

	file, err := readFile(path, explicit)
	if err != nil {
		return nil, err
	}
	if file != nil {
		file.apply(&cfg)
	}

	if vars.APIURL != "" && vars.ViteAPIURL != "" && vars.APIURL != vars.ViteAPIURL {
		l.Logger.Warn("REEL_API_URL overrides VITE_API_URL")
	}
	vars.apply(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, explicit bool) (*fileSchema, error) {
	//nolint:gosec // path comes from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, zerr.With(domain.Wrap(err, domain.ErrConfigReadFailed), "path", path)
	}

	var file fileSchema
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(domain.Wrap(err, domain.ErrConfigParseFailed), "path", path)
	}
	return &file, nil
}

func (f *fileSchema) apply(cfg *domain.Config) {
	if f.APIURL != "" {
		cfg.APIURL = f.APIURL
	}
	if f.TokenFile != "" {
		cfg.TokenPath = f.TokenFile
	}
	if f.StaleTime != nil {
		cfg.StaleTime = *f.StaleTime
	}
	if f.GCTime != nil {
		cfg.GCTime = *f.GCTime
	}
	if f.RequestTimeout != nil {
		cfg.RequestTimeout = *f.RequestTimeout
	}
	if f.RetryMax != nil {
		cfg.RetryMax = *f.RetryMax
	}
	if f.LogJSON != nil {
		cfg.LogJSON = *f.LogJSON
	}
	if f.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = f.OTLPEndpoint
	}
}

func (e *envSchema) apply(cfg *domain.Config) {
	// VITE_API_URL is what the web application's .env files use.
	switch {
	case e.APIURL != "":
		cfg.APIURL = e.APIURL
	case e.ViteAPIURL != "":
		cfg.APIURL = e.ViteAPIURL
	}
	if e.TokenFile != "" {
		cfg.TokenPath = e.TokenFile
	}
	if e.StaleTime != nil {
		cfg.StaleTime = *e.StaleTime
	}
	if e.GCTime != nil {
		cfg.GCTime = *e.GCTime
	}
	if e.RequestTimeout != nil {
		cfg.RequestTimeout = *e.RequestTimeout
	}
	if e.RetryMax != nil {
		cfg.RetryMax = *e.RetryMax
	}
	if e.LogJSON != nil {
		cfg.LogJSON = *e.LogJSON
	}
	if e.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = e.OTLPEndpoint
	}
}

func validate(cfg *domain.Config) error {
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, ""), "api_url", cfg.APIURL)
	}
	if cfg.RetryMax < 0 {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, ""), "retry_max", cfg.RetryMax)
	}
	if cfg.StaleTime < 0 || cfg.GCTime < 0 || cfg.RequestTimeout < 0 {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, ""), "reason", "durations must not be negative")
	}
	return nil
}
