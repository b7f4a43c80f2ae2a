// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"net/url"
	"time"

	"github.com/cbsinteractive/video-search-client/auth"
	"github.com/cbsinteractive/video-search-client/exceptions"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds everything the client needs to reach the backend and shape
// its output.
type Config struct {
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	SearchIndex string        `envconfig:"SEARCH_INDEX" default:"vss-index"`
	UserID      string        `envconfig:"USER_ID"`
	AuthToken   string        `envconfig:"AUTH_TOKEN"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	PlayerBinary string `envconfig:"PLAYER_BINARY" default:"mpv"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("vss", &cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment config")
	}
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, errors.Wrap(err, "invalid API base URL")
	}
	return &cfg, nil
}

// BaseURL returns the parsed backend base URL.
func (c *Config) BaseURL() *url.URL {
	u, _ := url.Parse(c.APIBaseURL)
	return u
}

// Logger builds the application logger from the configured level.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	logger := logrus.New()
	logger.SetLevel(level)
	return logger, nil
}

// Reporter builds the exception reporter: Sentry when a DSN is configured,
// otherwise log-only.
func (c *Config) Reporter(log *logrus.Logger) (exceptions.Reporter, error) {
	if c.SentryDSN == "" {
		return &exceptions.LogReporter{Log: log}, nil
	}
	return exceptions.NewSentryReporter(c.SentryDSN, c.Environment)
}

// Tokens returns the bearer token source: the configured static token when
// set, otherwise a per-request lookup of VSS_AUTH_TOKEN so externally
// refreshed tokens are honored.
func (c *Config) Tokens() auth.TokenSource {
	if c.AuthToken != "" {
		return auth.Static(c.AuthToken)
	}
	return auth.FromEnv("VSS_AUTH_TOKEN")
}
