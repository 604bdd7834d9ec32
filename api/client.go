package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/appeals-client/internal/config"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries a per-request id so client and server logs can be matched
const RequestIDHeader = "X-Request-ID"

// Client performs JSON calls against the appeals REST API. Authentication is the
// transport's job; Client only shapes requests and maps failures.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	defaultMessage string
	header         http.Header
}

type ClientOption func(*Client)

// WithTransport sets the round tripper requests are sent through, usually the session transport
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithTimeout sets the whole-request timeout. Timed out requests are not retried.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: config.DefaultRequestTimeout},
		defaultMessage: DefaultErrorMessage,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WithHeader returns a client sharing the same connection pool that adds key: value to every request
func (c *Client) WithHeader(key, value string) *Client {
	clone := *c
	clone.header = c.header.Clone()
	if clone.header == nil {
		clone.header = make(http.Header)
	}
	clone.header.Set(key, value)
	return &clone
}

// WithErrorMessage returns a client sharing the same connection pool but with a different
// fallback message for error responses
func (c *Client) WithErrorMessage(message string) *Client {
	clone := *c
	clone.defaultMessage = message
	return &clone
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path and query onto the base URL
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, result)
}

func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, result)
}

// Do sends a JSON request and decodes a JSON response into result when result is non-nil
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	respBody, _, err := c.send(ctx, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

// GetBytes fetches binary content such as a case document and returns it with its content type
func (c *Client) GetBytes(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	return c.send(ctx, http.MethodGet, path, query, nil, "*/*")
}

// Stream copies a binary response body to w as it arrives and returns the bytes written and the content type
func (c *Client) Stream(ctx context.Context, path string, query url.Values, w io.Writer) (int64, string, error) {
	resp, err := c.dispatch(ctx, http.MethodGet, path, query, nil, "*/*")
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, "", errors.Wrapf(err, "stream %s", path)
	}
	return n, resp.Header.Get("Content-Type"), nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string) ([]byte, string, error) {
	resp, err := c.dispatch(ctx, method, path, query, body, accept)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrapf(errors.ErrNoResponse, "read %s %s response: %v", method, path, err)
	}
	return respBody, resp.Header.Get("Content-Type"), nil
}

// dispatch sends the request and returns the response with its body unread when the status is 2xx.
// Any other status is read, closed and returned as *Error.
func (c *Client) dispatch(ctx context.Context, method, path string, query url.Values, body any, accept string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal request body")
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), bodyReader)
	if err != nil {
		return nil, errors.Wrapf(err, "create request")
	}
	for key, values := range c.header {
		req.Header[key] = append([]string(nil), values...)
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, method, path, err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("requestId", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrNoResponse, "read %s %s response: %v", method, path, err)
		}
		return nil, newError(resp.StatusCode, respBody, c.defaultMessage)
	}
	return resp, nil
}

// transportError keeps session and cancellation errors intact and reports anything else
// as a connectivity failure
func (c *Client) transportError(ctx context.Context, method, path string, err error) error {
	if errors.Is(err, errors.ErrLoginRequired) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s %s: %w", method, path, ctxErr)
	}
	log.Err(err).Str("method", method).Str("path", path).Msg("api request failed")
	return fmt.Errorf("%w: %s %s: %v", errors.ErrNoResponse, method, path, err)
}
