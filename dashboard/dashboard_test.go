package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/appeals-client/cases"
	"github.com/jrsteele09/appeals-client/dashboard"
	appealerrors "github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/stretchr/testify/require"
)

// fakeSource answers List by status so decided-only queries can differ from the full list
type fakeSource struct {
	stats     *cases.Stats
	statsErr  error
	all       *cases.CaseList
	decided   *cases.CaseList
	listErr   error
	recent    []cases.Case
	recentErr error
	listCalls []cases.ListOptions
}

func (f *fakeSource) List(_ context.Context, opts cases.ListOptions) (*cases.CaseList, error) {
	f.listCalls = append(f.listCalls, opts)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if opts.Status == "decided" && f.decided != nil {
		return f.decided, nil
	}
	if f.all == nil {
		return &cases.CaseList{}, nil
	}
	return f.all, nil
}

func (f *fakeSource) Stats(context.Context) (*cases.Stats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats == nil {
		return &cases.Stats{}, nil
	}
	return f.stats, nil
}

func (f *fakeSource) Recent(context.Context, int) ([]cases.Case, error) {
	return f.recent, f.recentErr
}

func sampleCases() []cases.Case {
	return []cases.Case{
		{ID: "1", Chairperson: "Hon. A", Status: "decided", Outcome: "Allowed", CaseType: "VAT", FilingDate: "2024-01-01", DecisionDate: "2024-01-11"},
		{ID: "2", Chairperson: "Hon. A", Status: "decided", Outcome: "partially allowed", TaxType: "PAYE", FilingDate: "2024-01-01", DecisionDate: "2024-01-21"},
		{ID: "3", Chairperson: "Hon. B", Status: "pending", CaseType: "VAT"},
		{ID: "4", Status: "decided", Outcome: "dismissed", FilingDate: "2024-02-01", DecisionDate: "2024-03-02"},
		{ID: "5", Chairperson: "Hon. A", Status: "settled", Outcome: "partial"},
	}
}

func TestStats_CountsFromCaseList(t *testing.T) {
	source := &fakeSource{
		stats: &cases.Stats{TotalCases: 999, PendingCases: 1, TotalTaxDisputed: 5000},
		all:   &cases.CaseList{Cases: sampleCases(), Total: 500},
	}
	stats, err := dashboard.NewService(source).Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, stats.TotalCases, "list length wins over reported totals")
	require.Equal(t, 1, stats.PendingCases)
	require.Equal(t, cases.Amount(5000), stats.TotalTaxDisputed)
	require.Equal(t, 1, stats.AllowedCases)
	require.Equal(t, 1, stats.DismissedCases)
	require.Equal(t, 2, stats.PartiallyAllowedCases)
	require.Zero(t, stats.RemandedCases)
	// spans of 10, 20 and 30 days
	require.Equal(t, float64(20), stats.AverageResolutionDays)
	require.NotNil(t, stats.CasesByType)
	require.NotNil(t, stats.MonthlyTrends)
}

func TestStats_StatsEndpointDown(t *testing.T) {
	source := &fakeSource{statsErr: appealerrors.ErrNoResponse, all: &cases.CaseList{Total: 7}}
	stats, err := dashboard.NewService(source).Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalCases, "no case array, reported total is used")
	require.Equal(t, float64(dashboard.DefaultResolutionDays), stats.AverageResolutionDays)
}

func TestStats_MockFallback(t *testing.T) {
	source := &fakeSource{listErr: appealerrors.ErrNoResponse}

	stats, err := dashboard.NewService(source).Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1247, stats.TotalCases)

	_, err = dashboard.NewService(source, dashboard.WithMockFallback(false)).Stats(context.Background())
	require.ErrorIs(t, err, appealerrors.ErrNoResponse)
}

func TestAverageResolutionDays(t *testing.T) {
	list := []cases.Case{
		{FilingDate: "2024-01-01", DecisionDate: "2024-01-04"},
		{FilingDate: "2024-01-01", DecisionDate: "2024-01-06"},
		{FilingDate: "2024-01-10", DecisionDate: "2024-01-01"},
		{FilingDate: "2000-01-01", DecisionDate: "2024-01-01"},
		{FilingDate: "2024-01-01"},
	}
	days, ok := dashboard.AverageResolutionDays(list)
	require.True(t, ok)
	require.Equal(t, 4, days)

	_, ok = dashboard.AverageResolutionDays(list[2:])
	require.False(t, ok)

	svc := dashboard.NewService(&fakeSource{decided: &cases.CaseList{Cases: list[2:]}})
	require.Equal(t, dashboard.DefaultResolutionDays, svc.AverageResolutionDays(context.Background()))
}

func TestCasesByJudge(t *testing.T) {
	source := &fakeSource{all: &cases.CaseList{Cases: sampleCases()}}
	judges, err := dashboard.NewService(source).CasesByJudge(context.Background())
	require.NoError(t, err)
	require.Len(t, judges, 3)

	first := judges[0]
	require.Equal(t, "Hon. A", first.Chairperson)
	require.Equal(t, 3, first.TotalCases)
	require.Equal(t, 3, first.Decided)
	require.Equal(t, 1, first.Allowed)
	require.Equal(t, 1, first.PartiallyAllowed, "\"partial\" is not counted per chairperson")
	require.Equal(t, 15, first.AvgResolutionDays)

	require.Equal(t, "Hon. B", judges[1].Chairperson)
	require.Equal(t, 1, judges[1].Pending)
	require.Equal(t, "Not assigned", judges[2].Chairperson)
	require.Equal(t, 30, judges[2].AvgResolutionDays)
	require.Equal(t, cases.ListOptions{Limit: 10000}, source.listCalls[0])
}

func TestCasesByJudge_EmptyUsesDemoData(t *testing.T) {
	judges, err := dashboard.NewService(&fakeSource{}).CasesByJudge(context.Background())
	require.NoError(t, err)
	require.Len(t, judges, 7)

	judges, err = dashboard.NewService(&fakeSource{}, dashboard.WithMockFallback(false)).CasesByJudge(context.Background())
	require.NoError(t, err)
	require.Empty(t, judges)
}

func TestCasesByStatus(t *testing.T) {
	ctx := context.Background()

	fromServer := &fakeSource{stats: &cases.Stats{CasesByStatus: map[string]int{"pending": 2}}}
	byStatus, err := dashboard.NewService(fromServer).CasesByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"pending": 2}, byStatus)

	fromCounters := &fakeSource{stats: &cases.Stats{TotalCases: 10, PendingCases: 4, DecidedCases: 5, SettledCases: 1}}
	byStatus, err = dashboard.NewService(fromCounters).CasesByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"pending": 4, "decided": 5, "appealed": 0, "withdrawn": 0, "settled": 1}, byStatus)

	fromList := &fakeSource{all: &cases.CaseList{Cases: sampleCases()}}
	byStatus, err = dashboard.NewService(fromList).CasesByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"pending": 1, "decided": 3, "appealed": 0, "withdrawn": 0, "settled": 1}, byStatus)

	byStatus, err = dashboard.NewService(&fakeSource{statsErr: appealerrors.ErrNoResponse}).CasesByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 342, byStatus["pending"])
}

func TestCasesByOutcome(t *testing.T) {
	ctx := context.Background()
	decided := &cases.CaseList{Cases: sampleCases()[:2]}
	byOutcome, err := dashboard.NewService(&fakeSource{decided: decided}).CasesByOutcome(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"allowed": 1, "dismissed": 0, "partially_allowed": 1, "remanded": 0}, byOutcome)

	byOutcome, err = dashboard.NewService(&fakeSource{}).CasesByOutcome(ctx)
	require.NoError(t, err)
	require.Equal(t, 312, byOutcome["allowed"], "nothing to count, demo data")

	_, err = dashboard.NewService(&fakeSource{statsErr: appealerrors.ErrNoResponse}, dashboard.WithMockFallback(false)).CasesByOutcome(ctx)
	require.ErrorIs(t, err, appealerrors.ErrNoResponse)
}

func TestCasesByType(t *testing.T) {
	byType, err := dashboard.NewService(&fakeSource{all: &cases.CaseList{Cases: sampleCases()}}).CasesByType(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int{"VAT": 2, "PAYE": 1, "Other": 2}, byType)
}

func TestRecentDecisions(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	source := &fakeSource{recent: []cases.Case{
		{ID: "1", CaseNumber: "DSM.1/2024", Appellant: "ABC Ltd", Outcome: "allowed", TaxAmountDisputed: 100, DecisionDate: "2024-04-01", Chairperson: "Hon. A"},
		{ID: "2", FilingDate: "2024-03-01"},
		{ID: "3"},
	}}
	decisions, err := dashboard.NewService(source, dashboard.WithNowTime(func() time.Time { return now })).RecentDecisions(context.Background())
	require.NoError(t, err)
	require.Len(t, decisions, 3)
	require.Equal(t, cases.Amount(100), decisions[0].TaxAmount)
	require.Equal(t, dashboard.Decision{ID: "2", CaseNumber: "N/A", Appellant: "Unknown", Outcome: "pending", DecisionDate: "2024-03-01", Chairperson: "Not assigned"}, decisions[1])
	require.Equal(t, "2024-05-01", decisions[2].DecisionDate)

	decisions, err = dashboard.NewService(&fakeSource{recentErr: appealerrors.ErrNoResponse}).RecentDecisions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "mock-case-1", decisions[0].ID)
}
