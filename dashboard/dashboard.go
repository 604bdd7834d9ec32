// Package dashboard assembles the figures on the landing page from the case endpoints,
// aggregating client side where the server does not provide a breakdown.
package dashboard

import (
	"context"
	"time"

	"github.com/jrsteele09/appeals-client/cases"
	"github.com/rs/zerolog/log"
)

// DefaultResolutionDays is reported when no decided case has usable dates
const DefaultResolutionDays = 156

const (
	allCasesLimit   = 10000
	aggregateLimit  = 1000
	resolutionLimit = 100
)

// CaseSource is the subset of the case service the dashboard reads from
type CaseSource interface {
	List(ctx context.Context, opts cases.ListOptions) (*cases.CaseList, error)
	Stats(ctx context.Context) (*cases.Stats, error)
	Recent(ctx context.Context, limit int) ([]cases.Case, error)
}

var _ CaseSource = (*cases.Service)(nil)

type Service struct {
	cases   CaseSource
	useMock bool
	nowTime func() time.Time
}

type ServiceOption func(*Service)

// WithMockFallback controls whether demo figures replace data the API could not supply
func WithMockFallback(enabled bool) ServiceOption {
	return func(s *Service) {
		s.useMock = enabled
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(source CaseSource, options ...ServiceOption) *Service {
	s := &Service{cases: source, useMock: true, nowTime: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Stats combines /cases/stats with counts taken from the full case list.
// The list is authoritative for the total and the outcome counts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	if apiStats, err := s.cases.Stats(ctx); err != nil {
		log.Warn().Err(err).Msg("stats endpoint unavailable, counting from the case list")
	} else {
		stats.Stats = *apiStats
	}

	list, err := s.cases.List(ctx, cases.ListOptions{Limit: allCasesLimit})
	if err != nil {
		if s.useMock {
			log.Warn().Err(err).Msg("case list unavailable, using demo dashboard data")
			return &Stats{Stats: *mockStats()}, nil
		}
		return nil, err
	}

	if list.Cases != nil {
		stats.TotalCases = len(list.Cases)
		outcomes := CountOutcomes(list.Cases)
		stats.AllowedCases = outcomes["allowed"]
		stats.DismissedCases = outcomes["dismissed"]
		stats.PartiallyAllowedCases = outcomes["partially_allowed"]
		stats.RemandedCases = outcomes["remanded"]
	} else {
		stats.TotalCases = list.Total
	}

	if stats.AverageResolutionDays == 0 {
		stats.AverageResolutionDays = float64(s.AverageResolutionDays(ctx))
	}
	if stats.CasesByType == nil && s.useMock {
		stats.CasesByType = mockCasesByType()
	}
	if stats.MonthlyTrends == nil && s.useMock {
		stats.MonthlyTrends = mockMonthlyTrends()
	}
	return stats, nil
}

// AverageResolutionDays computes the mean time to decision over recent decided cases,
// returning DefaultResolutionDays when it cannot
func (s *Service) AverageResolutionDays(ctx context.Context) int {
	list, err := s.cases.List(ctx, cases.ListOptions{Limit: resolutionLimit, Status: "decided"})
	if err != nil {
		log.Warn().Err(err).Msg("calculate average resolution days")
		return DefaultResolutionDays
	}
	days, ok := AverageResolutionDays(list.Cases)
	if !ok {
		return DefaultResolutionDays
	}
	return days
}

func (s *Service) CasesByJudge(ctx context.Context) ([]JudgeSummary, error) {
	list, err := s.cases.List(ctx, cases.ListOptions{Limit: allCasesLimit})
	if err != nil {
		if s.useMock {
			log.Warn().Err(err).Msg("cases by judge unavailable, using demo data")
			return mockCasesByJudge(), nil
		}
		return nil, err
	}
	if len(list.Cases) == 0 && s.useMock {
		return mockCasesByJudge(), nil
	}
	return AggregateByChairperson(list.Cases), nil
}

// CasesByStatus prefers the server breakdown, then the stats counters, then a client side count
func (s *Service) CasesByStatus(ctx context.Context) (map[string]int, error) {
	stats, err := s.cases.Stats(ctx)
	if err != nil {
		return s.fallback(err, "cases by status", mockCasesByStatus())
	}
	if stats.CasesByStatus != nil {
		return stats.CasesByStatus, nil
	}
	if stats.TotalCases > 0 {
		return map[string]int{
			"pending":   stats.PendingCases,
			"decided":   stats.DecidedCases,
			"appealed":  stats.AppealedCases,
			"withdrawn": stats.WithdrawnCases,
			"settled":   stats.SettledCases,
		}, nil
	}

	counts := CountStatuses(s.listForAggregation(ctx, ""))
	if allZero(counts) && s.useMock {
		return mockCasesByStatus(), nil
	}
	return counts, nil
}

func (s *Service) CasesByOutcome(ctx context.Context) (map[string]int, error) {
	stats, err := s.cases.Stats(ctx)
	if err != nil {
		return s.fallback(err, "cases by outcome", mockCasesByOutcome())
	}
	if stats.CasesByOutcome != nil {
		return stats.CasesByOutcome, nil
	}

	counts := CountOutcomes(s.listForAggregation(ctx, "decided"))
	if allZero(counts) && s.useMock {
		return mockCasesByOutcome(), nil
	}
	return counts, nil
}

func (s *Service) CasesByType(ctx context.Context) (map[string]int, error) {
	stats, err := s.cases.Stats(ctx)
	if err != nil {
		return s.fallback(err, "cases by type", mockCasesByType())
	}
	if stats.CasesByType != nil {
		return stats.CasesByType, nil
	}

	counts := CountTypes(s.listForAggregation(ctx, ""))
	if allZero(counts) && s.useMock {
		return mockCasesByType(), nil
	}
	return counts, nil
}

func (s *Service) RecentDecisions(ctx context.Context) ([]Decision, error) {
	recent, err := s.cases.Recent(ctx, 0)
	if err != nil {
		if s.useMock {
			log.Warn().Err(err).Msg("recent decisions unavailable, using demo data")
			return mockRecentDecisions(), nil
		}
		return nil, err
	}
	if recent == nil && s.useMock {
		return mockRecentDecisions(), nil
	}
	return ToDecisions(recent, s.nowTime()), nil
}

// listForAggregation returns nil on error; an empty aggregation then decides the fallback
func (s *Service) listForAggregation(ctx context.Context, status string) []cases.Case {
	list, err := s.cases.List(ctx, cases.ListOptions{Limit: aggregateLimit, Status: status})
	if err != nil {
		log.Warn().Err(err).Str("status", status).Msg("aggregate cases")
		return nil
	}
	return list.Cases
}

func (s *Service) fallback(err error, what string, mock map[string]int) (map[string]int, error) {
	if !s.useMock {
		return nil, err
	}
	log.Warn().Err(err).Msgf("%s unavailable, using demo data", what)
	return mock, nil
}

// Stats is the dashboard headline figures: the server stats plus outcome counts
type Stats struct {
	cases.Stats           `yaml:",inline"`
	AllowedCases          int `json:"allowedCases" yaml:"allowedCases"`
	DismissedCases        int `json:"dismissedCases" yaml:"dismissedCases"`
	PartiallyAllowedCases int `json:"partiallyAllowedCases" yaml:"partiallyAllowedCases"`
	RemandedCases         int `json:"remandedCases" yaml:"remandedCases"`
}
