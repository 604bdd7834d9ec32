// Package search queries the case corpus by keyword, by meaning, or by a weighted blend of both.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/internal/utils"
)

const (
	DefaultLimit  = 10
	DefaultWeight = 0.5
)

type Result struct {
	CaseID        string  `json:"caseId" yaml:"caseId"`
	CaseNumber    string  `json:"caseNumber,omitempty" yaml:"caseNumber,omitempty"`
	DocumentID    string  `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	Title         string  `json:"title,omitempty" yaml:"title,omitempty"`
	Appellant     string  `json:"appellant,omitempty" yaml:"appellant,omitempty"`
	Snippet       string  `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Score         float64 `json:"score" yaml:"score"`
	FullTextScore float64 `json:"ftScore,omitempty" yaml:"ftScore,omitempty"`
	SemanticScore float64 `json:"semScore,omitempty" yaml:"semScore,omitempty"`
}

// Results is a ranked result set. A bare array response is accepted too.
type Results struct {
	Query   string   `json:"query,omitempty" yaml:"query,omitempty"`
	Results []Result `json:"results" yaml:"results"`
	Total   int      `json:"total" yaml:"total"`
}

func (r *Results) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Result
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*r = Results{Results: items, Total: len(items)}
		return nil
	}
	type plain Results
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*r = Results(out)
	if r.Total == 0 {
		r.Total = len(r.Results)
	}
	return nil
}

// HybridOptions weights the two rankings. A nil weight takes DefaultWeight; an explicit 0
// switches that ranking off. A zero Limit takes DefaultLimit.
type HybridOptions struct {
	Limit          int
	FullTextWeight *float64
	SemanticWeight *float64
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Hybrid(ctx context.Context, query string, opts HybridOptions) (*Results, error) {
	q, err := baseQuery(query, opts.Limit)
	if err != nil {
		return nil, err
	}
	if err := validateWeights(opts.FullTextWeight, opts.SemanticWeight); err != nil {
		return nil, err
	}
	q.Set("ftWeight", formatWeight(opts.FullTextWeight))
	q.Set("semWeight", formatWeight(opts.SemanticWeight))
	return s.search(ctx, "/search", q)
}

func (s *Service) FullText(ctx context.Context, query string, limit int) (*Results, error) {
	q, err := baseQuery(query, limit)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "/search/full-text", q)
}

func (s *Service) Semantic(ctx context.Context, query string, limit int) (*Results, error) {
	q, err := baseQuery(query, limit)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "/search/semantic", q)
}

func (s *Service) search(ctx context.Context, path string, q url.Values) (*Results, error) {
	var out Results
	if err := s.client.Get(ctx, path, q, &out); err != nil {
		return nil, errors.Wrapf(err, "search %q", q.Get("q"))
	}
	if out.Query == "" {
		out.Query = q.Get("q")
	}
	return &out, nil
}

func validateWeights(weights ...*float64) error {
	for _, w := range weights {
		if w != nil && *w < 0 {
			return errors.Wrapf(errors.ErrInvalidRequest, "search weight must not be negative, got %v", *w)
		}
	}
	return nil
}

func baseQuery(query string, limit int) (url.Values, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "search query is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return url.Values{"q": {query}, "limit": {strconv.Itoa(limit)}}, nil
}

func formatWeight(w *float64) string {
	return strconv.FormatFloat(utils.ValueOr(w, DefaultWeight), 'f', -1, 64)
}
