// Package apitest runs an in-process stand-in for the appeals REST API so clients can be
// exercised end to end, bearer checks and 401s included.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// BasePath is the API prefix every route is mounted under
const BasePath = "/api/v1"

const signingSecret = "apitest-secret"

// Request is one call received by the server
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          []byte
}

type Server struct {
	mux         *http.ServeMux
	httpServer  *httptest.Server
	routes      []string
	requests    []Request
	validTokens map[string]bool
	lock        sync.Mutex
}

func New(t testing.TB) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		validTokens: make(map[string]bool),
	}
	s.httpServer = httptest.NewServer(s)
	t.Cleanup(s.httpServer.Close)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// URL is the API base URL clients should be configured with
func (s *Server) URL() string {
	return s.httpServer.URL + BasePath
}

// Close stops the server, so later calls fail without a response
func (s *Server) Close() {
	s.httpServer.Close()
}

// Handle registers an open route. Pattern is "METHOD /path" relative to BasePath.
func (s *Server) Handle(pattern string, handler http.HandlerFunc) {
	s.register(pattern, ChainMiddleware(handler, s.RecoverMiddleware, s.RecordingMiddleware))
}

// HandleProtected registers a route that answers 401 unless the bearer token was accepted
func (s *Server) HandleProtected(pattern string, handler http.HandlerFunc) {
	s.register(pattern, ChainMiddleware(handler, s.RecoverMiddleware, s.RecordingMiddleware, s.BearerMiddleware))
}

func (s *Server) register(pattern string, handler http.HandlerFunc) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		method, path = "", pattern
	}
	full := strings.TrimSpace(method + " " + BasePath + path)
	s.lock.Lock()
	s.routes = append(s.routes, full)
	s.lock.Unlock()
	s.mux.HandleFunc(full, handler)
}

// AcceptToken makes protected routes accept the given access token
func (s *Server) AcceptToken(accessToken string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.validTokens[accessToken] = true
}

// RevokeToken makes protected routes reject the given access token
func (s *Server) RevokeToken(accessToken string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.validTokens, accessToken)
}

func (s *Server) Requests() []Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many calls hit method and path (path relative to BasePath)
func (s *Server) Count(method, path string) int {
	count := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == BasePath+path {
			count++
		}
	}
	return count
}

// Last returns the most recent call to method and path
func (s *Server) Last(method, path string) (Request, bool) {
	requests := s.Requests()
	for i := len(requests) - 1; i >= 0; i-- {
		if requests[i].Method == method && requests[i].Path == BasePath+path {
			return requests[i], true
		}
	}
	return Request{}, false
}

// JSON answers every call with status 200 and v encoded as JSON
func JSON(v any) http.HandlerFunc {
	return Status(http.StatusOK, v)
}

// Status answers every call with the given status and v encoded as JSON
func Status(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, v)
	}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("apitest: encode response: %v", err))
	}
}

// IssueToken signs an access token carrying claims. An exp claim is added one hour
// ahead when claims has none.
func IssueToken(t testing.TB, claims jwtlib.MapClaims) string {
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	require.NoError(t, err)
	return signed
}
