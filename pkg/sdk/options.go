package weavegate

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	scheme           string
	apiKey           string
	headers          map[string]string
	readinessTimeout time.Duration
	logger           *zap.Logger
}

// WithScheme sets the connection scheme, "http" or "https".
// Default: "http".
func WithScheme(scheme string) Option {
	return optionFunc(func(c *clientConfig) {
		c.scheme = scheme
	})
}

// WithAPIKey authenticates against Weaviate with an API key.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithHeaders adds extra headers to every Weaviate request, e.g.
// vectorizer provider keys.
func WithHeaders(headers map[string]string) Option {
	return optionFunc(func(c *clientConfig) {
		c.headers = headers
	})
}

// WithReadinessTimeout bounds the initial readiness wait.
// Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
