// Package appeals wires the tax appeals API client: one session, one authenticating
// transport, and the services built on top of them.
package appeals

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/appeals-client/analytics"
	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/appealsync"
	"github.com/jrsteele09/appeals-client/auth"
	"github.com/jrsteele09/appeals-client/cases"
	"github.com/jrsteele09/appeals-client/dashboard"
	"github.com/jrsteele09/appeals-client/internal/config"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/ocr"
	"github.com/jrsteele09/appeals-client/search"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/jrsteele09/appeals-client/sessions/filestore"
	"github.com/jrsteele09/appeals-client/sessions/redisstore"
	"github.com/jrsteele09/appeals-client/transport"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Client struct {
	Auth      *auth.Service
	Cases     *cases.Service
	Analytics *analytics.Service
	Dashboard *dashboard.Service
	Search    *search.Service
	OCR       *ocr.Service
	Sync      *appealsync.Service

	options Options
	state   *sessions.State
	redis   redis.UniversalClient
}

type clientDeps struct {
	store        sessions.Store
	fs           afero.Fs
	httpRT       http.RoundTripper
	authRequired transport.AuthRequiredFunc
	dashboard    []dashboard.ServiceOption
	ocr          []ocr.ServiceOption
}

type Option func(*clientDeps)

// WithStore uses store for the session instead of the configured backend
func WithStore(store sessions.Store) Option {
	return func(d *clientDeps) {
		d.store = store
	}
}

// WithFs sets the filesystem used by the file session backend
func WithFs(fs afero.Fs) Option {
	return func(d *clientDeps) {
		d.fs = fs
	}
}

// WithHTTPTransport sets the round tripper beneath the session transport
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(d *clientDeps) {
		d.httpRT = rt
	}
}

// WithAuthRequired is called after the session has been cleared because the user must log in again
func WithAuthRequired(fn transport.AuthRequiredFunc) Option {
	return func(d *clientDeps) {
		d.authRequired = fn
	}
}

func WithDashboardOptions(options ...dashboard.ServiceOption) Option {
	return func(d *clientDeps) {
		d.dashboard = append(d.dashboard, options...)
	}
}

func WithOCROptions(options ...ocr.ServiceOption) Option {
	return func(d *clientDeps) {
		d.ocr = append(d.ocr, options...)
	}
}

func New(options Options, opts ...Option) (*Client, error) {
	if err := options.validate(); err != nil {
		return nil, errors.Wrapf(err, "[appeals New]")
	}
	if options.RefreshPath == "" {
		options.RefreshPath = config.DefaultRefreshPath
	}
	if options.Timeout <= 0 {
		options.Timeout = config.DefaultRequestTimeout
	}
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")

	deps := clientDeps{fs: afero.NewOsFs(), httpRT: http.DefaultTransport}
	for _, opt := range opts {
		opt(&deps)
	}

	c := &Client{options: options}
	store := deps.store
	if store == nil {
		var err error
		if store, err = c.openStore(deps.fs); err != nil {
			return nil, err
		}
	}
	c.state = sessions.NewState(store)

	authRequired := deps.authRequired
	if authRequired == nil {
		authRequired = c.logLoginRequired
	}
	rt, err := transport.New(c.state,
		transport.WithTransport(deps.httpRT),
		transport.WithRefreshEndpoint(options.BaseURL+options.RefreshPath),
		transport.WithRefreshPath(options.RefreshPath),
		transport.WithAuthRequired(authRequired),
	)
	if err != nil {
		_ = c.Close()
		return nil, errors.Wrapf(err, "[appeals New]")
	}

	public := api.New(options.BaseURL, api.WithTransport(deps.httpRT), api.WithTimeout(options.Timeout))
	session := api.New(options.BaseURL, api.WithTransport(rt), api.WithTimeout(options.Timeout))

	c.Auth = auth.NewService(public, session, c.state)
	c.Cases = cases.NewService(session)
	c.Analytics = analytics.NewService(session)
	c.Dashboard = dashboard.NewService(c.Cases, append([]dashboard.ServiceOption{dashboard.WithMockFallback(options.UseMockData)}, deps.dashboard...)...)
	c.Search = search.NewService(session)
	c.OCR = ocr.NewService(session, deps.ocr...)
	c.Sync = appealsync.NewService(session)
	return c, nil
}

func (c *Client) openStore(fs afero.Fs) (sessions.Store, error) {
	switch config.SessionBackend(c.options.SessionBackend) {
	case config.SessionBackendFile:
		store, err := filestore.New(c.options.SessionFile, filestore.WithFs(fs))
		if err != nil {
			return nil, errors.Wrapf(err, "[appeals New] open session file")
		}
		return store, nil
	case config.SessionBackendRedis:
		c.redis = redis.NewClient(&redis.Options{Addr: c.options.RedisAddr, Password: c.options.RedisPassword})
		key := c.options.RedisKey
		if key == "" {
			key = config.Session{}.GetRedisKey()
		}
		return redisstore.New(c.redis, key, redisstore.WithTTL(c.options.SessionTTL)), nil
	default:
		return sessions.NewMemoryStore(), nil
	}
}

func (c *Client) logLoginRequired(_ context.Context, cause error) {
	log.Warn().Err(cause).Str("loginUrl", c.options.LoginURL).Msg("session ended, login required")
}

// State is the session shared by every service of this client
func (c *Client) State() *sessions.State {
	return c.state
}

// Close releases the redis connection when the redis backend is in use
func (c *Client) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}
