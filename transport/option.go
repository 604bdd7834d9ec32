package transport

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// AuthRequiredFunc is called once per request whose session could not be renewed.
// The session has already been cleared when it runs.
type AuthRequiredFunc func(ctx context.Context, cause error)

type Option func(*RoundTripper)

// WithTransport sets the inner transport requests are dispatched on
func WithTransport(transport http.RoundTripper) Option {
	return func(r *RoundTripper) {
		r.transport = transport
	}
}

// WithRefresher replaces the HTTP refresh call, mainly for tests
func WithRefresher(refresher Refresher) Option {
	return func(r *RoundTripper) {
		r.refresher = refresher
	}
}

// WithRefreshPath sets the path that identifies refresh calls (default "/auth/refresh")
func WithRefreshPath(path string) Option {
	return func(r *RoundTripper) {
		r.refreshPath = path
	}
}

// WithAuthRequired sets the handler told when the user must log in again
func WithAuthRequired(fn AuthRequiredFunc) Option {
	return func(r *RoundTripper) {
		r.onAuthRequired = fn
	}
}

// WithLogger sets the logger used for session lifecycle events
func WithLogger(logger zerolog.Logger) Option {
	return func(r *RoundTripper) {
		r.logger = logger
	}
}

// WithRefreshEndpoint sets the absolute URL of the refresh endpoint used by the default refresher
func WithRefreshEndpoint(endpoint string) Option {
	return func(r *RoundTripper) {
		r.refreshEndpoint = endpoint
	}
}
