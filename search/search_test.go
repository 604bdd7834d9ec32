package search_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/jrsteele09/appeals-client/internal/apitest"
	appealerrors "github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/internal/utils"
	"github.com/jrsteele09/appeals-client/search"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*apitest.Server, *search.Service) {
	server := apitest.New(t)
	server.AcceptToken("a1")
	state := sessions.NewState(sessions.NewMemoryStore())
	require.NoError(t, state.SaveTokens(context.Background(), "a1", "r1"))
	return server, search.NewService(server.Session(t, state))
}

func lastQuery(t *testing.T, server *apitest.Server, path string) url.Values {
	req, ok := server.Last(http.MethodGet, path)
	require.True(t, ok)
	q, err := url.ParseQuery(req.Query)
	require.NoError(t, err)
	return q
}

func TestService_HybridDefaults(t *testing.T) {
	server, svc := newService(t)
	server.HandleProtected("GET /search", apitest.JSON(map[string]any{
		"results": []map[string]any{{"caseId": "c1", "score": 0.91, "ftScore": 0.8, "semScore": 0.95}},
	}))

	results, err := svc.Hybrid(context.Background(), "input vat", search.HybridOptions{})
	require.NoError(t, err)
	require.Equal(t, "input vat", results.Query)
	require.Equal(t, 1, results.Total)
	require.Equal(t, 0.95, results.Results[0].SemanticScore)

	q := lastQuery(t, server, "/search")
	require.Equal(t, "input vat", q.Get("q"))
	require.Equal(t, "10", q.Get("limit"))
	require.Equal(t, "0.5", q.Get("ftWeight"))
	require.Equal(t, "0.5", q.Get("semWeight"))
}

func TestService_HybridWeights(t *testing.T) {
	server, svc := newService(t)
	server.HandleProtected("GET /search", apitest.JSON([]map[string]any{}))

	_, err := svc.Hybrid(context.Background(), "customs", search.HybridOptions{Limit: 3, FullTextWeight: utils.Ptr(0.7), SemanticWeight: utils.Ptr(0.3)})
	require.NoError(t, err)
	q := lastQuery(t, server, "/search")
	require.Equal(t, "3", q.Get("limit"))
	require.Equal(t, "0.7", q.Get("ftWeight"))
	require.Equal(t, "0.3", q.Get("semWeight"))
}

func TestService_HybridZeroWeightIsSent(t *testing.T) {
	server, svc := newService(t)
	server.HandleProtected("GET /search", apitest.JSON([]map[string]any{}))

	_, err := svc.Hybrid(context.Background(), "customs", search.HybridOptions{FullTextWeight: utils.Ptr(0.0), SemanticWeight: utils.Ptr(1.0)})
	require.NoError(t, err)
	q := lastQuery(t, server, "/search")
	require.Equal(t, "0", q.Get("ftWeight"))
	require.Equal(t, "1", q.Get("semWeight"))

	_, err = svc.Hybrid(context.Background(), "customs", search.HybridOptions{SemanticWeight: utils.Ptr(-0.5)})
	require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
	require.Equal(t, 1, server.Count(http.MethodGet, "/search"))
}

func TestService_FullTextAndSemantic(t *testing.T) {
	server, svc := newService(t)
	server.HandleProtected("GET /search/full-text", apitest.JSON([]map[string]any{{"caseId": "c1"}, {"caseId": "c2"}}))
	server.HandleProtected("GET /search/semantic", apitest.JSON(map[string]any{"query": "withholding", "results": []map[string]any{{"caseId": "c3"}}, "total": 30}))

	results, err := svc.FullText(context.Background(), "withholding", 0)
	require.NoError(t, err)
	require.Equal(t, 2, results.Total)
	require.Equal(t, "10", lastQuery(t, server, "/search/full-text").Get("limit"))

	results, err = svc.Semantic(context.Background(), "withholding", 25)
	require.NoError(t, err)
	require.Equal(t, 30, results.Total)
	require.Equal(t, "25", lastQuery(t, server, "/search/semantic").Get("limit"))
}

func TestService_EmptyQuery(t *testing.T) {
	server, svc := newService(t)
	_, err := svc.FullText(context.Background(), "  ", 5)
	require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
	require.Empty(t, server.Requests())
}
