package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/jrsteele09/appeals-client/internal/config"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// SessionState is the persisted credential set the RoundTripper reads, renews and clears
type SessionState interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}

var _ SessionState = (*sessions.State)(nil)

type RoundTripper struct {
	state           SessionState
	refresher       Refresher
	refreshEndpoint string
	refreshPath     string
	onAuthRequired  AuthRequiredFunc
	transport       http.RoundTripper
	logger          zerolog.Logger
	mux             sync.Mutex
}

func New(state SessionState, options ...Option) (*RoundTripper, error) {
	if state == nil {
		return nil, errors.New("[transport New] session state is required")
	}
	ret := &RoundTripper{
		state:       state,
		transport:   http.DefaultTransport,
		refreshPath: config.DefaultRefreshPath,
		logger:      log.Logger.With().Str("component", "transport").Logger(),
	}

	for _, opt := range options {
		opt(ret)
	}

	if ret.refresher == nil {
		if ret.refreshEndpoint == "" {
			return nil, errors.New("[transport New] a refresher or refresh endpoint is required")
		}
		ret.refresher = NewHTTPRefresher(ret.refreshEndpoint, ret.transport)
	}
	return ret, nil
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	getBody, err := replayableBody(req)
	if err != nil {
		return nil, errors.Wrapf(err, "buffer request body")
	}
	accessToken, err := r.state.AccessToken(req.Context())
	if err != nil {
		return nil, errors.Wrapf(err, "read session")
	}
	return r.send(req, getBody, accessToken)
}

func (r *RoundTripper) send(req *http.Request, getBody func() (io.ReadCloser, error), accessToken string) (*http.Response, error) {
	outgoing := req.Clone(req.Context())
	if getBody != nil {
		body, err := getBody()
		if err != nil {
			return nil, errors.Wrapf(err, "replay request body")
		}
		outgoing.Body = body
		outgoing.GetBody = getBody
	}
	if accessToken != "" {
		(&oauth2.Token{AccessToken: accessToken}).SetAuthHeader(outgoing)
	}

	resp, err := r.transport.RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	return r.unauthorized(req, getBody, accessToken, resp)
}

func (r *RoundTripper) unauthorized(req *http.Request, getBody func() (io.ReadCloser, error), staleToken string, resp *http.Response) (*http.Response, error) {
	ctx := req.Context()

	// Prevent infinite loop: the refresh call and replays never renew again.
	if r.isRefreshCall(req) || IsRetried(ctx) {
		r.loginRequired(ctx, errors.Wrapf(errors.ErrLoginRequired, "%s %s unauthorized", req.Method, req.URL.Path))
		return resp, nil
	}

	tok, err := r.renew(ctx, staleToken)
	if err != nil {
		if errors.Is(err, errors.ErrNoRefreshToken) {
			r.loginRequired(ctx, errors.Wrapf(errors.ErrLoginRequired, "%s %s unauthorized: %v", req.Method, req.URL.Path, err))
			return resp, nil
		}
		drainAndClose(resp)
		r.loginRequired(ctx, err)
		return nil, fmt.Errorf("%w: %w", errors.ErrLoginRequired, err)
	}

	drainAndClose(resp)
	r.logger.Debug().Str("method", req.Method).Str("path", req.URL.Path).Msg("replaying request with renewed session")
	return r.send(req.WithContext(MarkRetried(ctx)), getBody, tok.AccessToken)
}

// renew returns a usable access token, refreshing only if no concurrent request already did
func (r *RoundTripper) renew(ctx context.Context, staleToken string) (*oauth2.Token, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	current, err := r.state.AccessToken(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "read session")
	}
	if current != "" && current != staleToken {
		r.logger.Debug().Msg("session already renewed by a concurrent request")
		return &oauth2.Token{AccessToken: current, TokenType: "Bearer"}, nil
	}

	refreshToken, err := r.state.RefreshToken(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "read session")
	}
	if refreshToken == "" {
		return nil, errors.ErrNoRefreshToken
	}

	tok, err := r.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, errors.Wrapf(err, "refresh session")
	}
	if err := r.state.SaveTokens(ctx, tok.AccessToken, tok.RefreshToken); err != nil {
		return nil, errors.Wrapf(err, "persist refreshed session")
	}
	r.logger.Info().Msg("session refreshed")
	return tok, nil
}

func (r *RoundTripper) loginRequired(ctx context.Context, cause error) {
	if err := r.state.Clear(ctx); err != nil {
		r.logger.Err(err).Msg("failed to clear session")
	}
	r.logger.Warn().Err(cause).Msg("session ended, login required")
	if r.onAuthRequired != nil {
		r.onAuthRequired(ctx, cause)
	}
}

func (r *RoundTripper) isRefreshCall(req *http.Request) bool {
	path := strings.TrimRight(r.refreshPath, "/")
	return path != "" && strings.HasSuffix(strings.TrimRight(req.URL.Path, "/"), path)
}

// replayableBody returns a factory for fresh copies of the request body, or nil for bodiless requests.
// The caller's body is consumed and closed here.
func replayableBody(req *http.Request) (func() (io.ReadCloser, error), error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		_ = req.Body.Close()
		return req.GetBody, nil
	}
	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, err
	}
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}, nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
