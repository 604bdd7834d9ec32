package apitest

import (
	"testing"

	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/jrsteele09/appeals-client/transport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Clients returns a plain client and a client whose requests go through the session transport,
// both pointed at the server
func (s *Server) Clients(t testing.TB, state *sessions.State, options ...transport.Option) (public, session *api.Client) {
	options = append([]transport.Option{
		transport.WithRefreshEndpoint(s.URL() + "/auth/refresh"),
		transport.WithLogger(zerolog.Nop()),
	}, options...)
	rt, err := transport.New(state, options...)
	require.NoError(t, err)
	return api.New(s.URL()), api.New(s.URL(), api.WithTransport(rt))
}

// Session returns only the session client
func (s *Server) Session(t testing.TB, state *sessions.State, options ...transport.Option) *api.Client {
	_, session := s.Clients(t, state, options...)
	return session
}
