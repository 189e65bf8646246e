package etapi

import (
	"net/http"
	"time"

	"github.com/etapi-go/etapi.go/pkg/logger"
	"github.com/etapi-go/etapi.go/pkg/search"
)

type config struct {
	httpClient    *http.Client
	timeout       time.Duration
	logger        logger.Logger
	searchVariant search.Variant
}

// Option configures a Session.
type Option func(*config)

// WithHTTPClient sets the client used for every request. It must be safe for
// concurrent use if the session is shared between goroutines.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithTimeout bounds each round trip. It replaces the timeout of a client
// passed with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithSearchVariant picks the search transport. Defaults to the query string.
func WithSearchVariant(v search.Variant) Option {
	return func(c *config) {
		c.searchVariant = v
	}
}

func newConfig(opts []Option) config {
	c := config{searchVariant: search.QueryStringVariant}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
