package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar     = "API_BASE_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"
	refreshPathVar    = "AUTH_REFRESH_PATH"
	loginURLVar       = "LOGIN_URL"
	useMockDataVar    = "USE_MOCK_DATA"

	DefaultRequestTimeout = 10 * time.Second
	DefaultRefreshPath    = "/auth/refresh"
)

type Client struct{}

var _ ClientConfig = Client{}

// GetAPIBaseURL returns the API root every endpoint path is appended to (e.g., "https://appeals.example.com/api/v1")
func (Client) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:8080/api/v1"), "/")
}

// GetRequestTimeout is applied per request by the HTTP client; timed out requests are not retried
func (Client) GetRequestTimeout() time.Duration {
	return GetEnvDuration(requestTimeoutVar, DefaultRequestTimeout)
}

func (Client) GetRefreshPath() string {
	return GetEnv(refreshPathVar, DefaultRefreshPath)
}

// GetLoginURL is handed to the auth-required handler when a session can no longer be renewed
func (Client) GetLoginURL() string {
	return GetEnv(loginURLVar, "/login")
}

// GetUseMockData enables the built-in sample data when dashboard endpoints are unreachable
func (Client) GetUseMockData() bool {
	return GetEnvBool(useMockDataVar, true)
}
