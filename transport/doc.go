// Package transport implements an http.RoundTripper that carries a client session.
//
// Every outgoing request gets the stored access token as a Bearer credential. When the
// server answers 401 Unauthorized the RoundTripper exchanges the stored refresh token for
// a new pair, persists it, and replays the original request exactly once. If renewal is
// impossible (no refresh token, the refresh call fails, the request already was replayed,
// or the request is itself the refresh call) the session is cleared and the injected
// auth-required handler is told the user must log in again.
//
// Concurrent requests that fail together share one refresh: whoever takes the renewal
// lock first performs the exchange and later waiters notice the stored token changed
// and replay with it instead of refreshing again.
package transport
