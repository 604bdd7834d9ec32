package apitest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// RecoverMiddleware turns a panicking handler into a 500 so a broken fixture fails the test, not the server
func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprint(rec)})
			}
		}()
		next(w, r)
	}
}

// RecordingMiddleware keeps a copy of every request, body included
func (s *Server) RecordingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.lock.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		s.lock.Unlock()
		next(w, r)
	}
}

func (s *Server) BearerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.lock.Lock()
		valid := ok && s.validTokens[accessToken]
		s.lock.Unlock()
		if !valid {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			return
		}
		next(w, r)
	}
}
