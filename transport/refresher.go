package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/appeals-client/internal/errors"
	"golang.org/x/oauth2"
)

// Refresher exchanges a refresh token for a new credential pair
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// RefreshError is returned when the refresh endpoint answers with a non 2xx status
type RefreshError struct {
	StatusCode int
	Body       []byte
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh returned status %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// HTTPRefresher posts {refreshToken} to the refresh endpoint and reads {accessToken, refreshToken}.
// It dispatches on the inner transport directly so a failing refresh never re-enters renewal.
type HTTPRefresher struct {
	Endpoint  string
	Transport http.RoundTripper
}

func NewHTTPRefresher(endpoint string, transport http.RoundTripper) *HTTPRefresher {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &HTTPRefresher{Endpoint: endpoint, Transport: transport}
}

func (h *HTTPRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, errors.Wrapf(err, "marshal refresh request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "create refresh request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.Transport.RoundTrip(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNoResponse, "refresh: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read refresh response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RefreshError{StatusCode: resp.StatusCode, Body: respBody}
	}

	var out refreshResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, errors.Wrapf(err, "decode refresh response")
	}
	if out.AccessToken == "" {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "refresh response missing accessToken")
	}
	return &oauth2.Token{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken, TokenType: "Bearer"}, nil
}
