package transport

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/portalauth/client/auth/flow"
	"github.com/viant/portalauth/client/auth/store"
)

type Option func(*Coordinator)

// WithStore sets credential store
func WithStore(store store.Store) Option {
	return func(c *Coordinator) {
		c.store = store
	}
}

// WithRefresher sets the refresh endpoint client; it must not route through the coordinator
func WithRefresher(refresher flow.Refresher) Option {
	return func(c *Coordinator) {
		c.refresher = refresher
	}
}

// WithTransport sets the inner transport used to send requests
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Coordinator) {
		c.transport = transport
	}
}

// WithExclusions sets URL patterns that never trigger a refresh
func WithExclusions(patterns ...string) Option {
	return func(c *Coordinator) {
		c.exclusions = append(Exclusions{}, patterns...)
	}
}

// WithRefreshTimeout bounds a single refresh call
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		c.refreshTimeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}
