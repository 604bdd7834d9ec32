// Package analytics reads the aggregated statistics behind the dashboard charts.
package analytics

import (
	"context"

	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/cases"
	"github.com/jrsteele09/appeals-client/internal/errors"
)

type Overview struct {
	TotalCases            int          `json:"totalCases" yaml:"totalCases"`
	PendingCases          int          `json:"pendingCases" yaml:"pendingCases"`
	DecidedCases          int          `json:"decidedCases" yaml:"decidedCases"`
	TotalTaxDisputed      cases.Amount `json:"totalTaxDisputed" yaml:"totalTaxDisputed"`
	TotalTaxRecovered     cases.Amount `json:"totalTaxRecovered" yaml:"totalTaxRecovered"`
	SuccessRate           float64      `json:"successRate" yaml:"successRate"`
	AverageResolutionDays float64      `json:"averageResolutionDays" yaml:"averageResolutionDays"`
	CasesThisYear         int          `json:"casesThisYear,omitempty" yaml:"casesThisYear,omitempty"`
}

type ChairpersonStats struct {
	Chairperson       string  `json:"chairperson" yaml:"chairperson"`
	TotalCases        int     `json:"totalCases" yaml:"totalCases"`
	Allowed           int     `json:"allowed" yaml:"allowed"`
	Dismissed         int     `json:"dismissed" yaml:"dismissed"`
	PartiallyAllowed  int     `json:"partiallyAllowed" yaml:"partiallyAllowed"`
	Remanded          int     `json:"remanded" yaml:"remanded"`
	AvgResolutionDays float64 `json:"avgResolutionDays" yaml:"avgResolutionDays"`
}

type TaxTypeStats struct {
	TaxType          string       `json:"taxType" yaml:"taxType"`
	TotalCases       int          `json:"totalCases" yaml:"totalCases"`
	TotalTaxDisputed cases.Amount `json:"totalTaxDisputed" yaml:"totalTaxDisputed"`
	AllowedRate      float64      `json:"allowedRate,omitempty" yaml:"allowedRate,omitempty"`
}

// TrendPoint is one period of the filing and decision time series
type TrendPoint struct {
	Period  string `json:"period" yaml:"period"`
	Filed   int    `json:"filed" yaml:"filed"`
	Decided int    `json:"decided" yaml:"decided"`
}

type OutcomeShare struct {
	Outcome    string  `json:"outcome" yaml:"outcome"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

type AppellantStats struct {
	Appellant        string       `json:"appellant" yaml:"appellant"`
	TotalCases       int          `json:"totalCases" yaml:"totalCases"`
	TotalTaxDisputed cases.Amount `json:"totalTaxDisputed" yaml:"totalTaxDisputed"`
	Allowed          int          `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

type CitedCase struct {
	CaseNumber string `json:"caseNumber" yaml:"caseNumber"`
	Count      int    `json:"count" yaml:"count"`
}

type CitationStats struct {
	TotalCitations int         `json:"totalCitations" yaml:"totalCitations"`
	MostCited      []CitedCase `json:"mostCited" yaml:"mostCited"`
}

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client.WithErrorMessage(api.AnalyticsErrorMessage)}
}

func (s *Service) Dashboard(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := s.client.Get(ctx, "/analytics/dashboard", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get dashboard overview")
	}
	return &out, nil
}

func (s *Service) Chairpersons(ctx context.Context) ([]ChairpersonStats, error) {
	var out []ChairpersonStats
	if err := s.client.Get(ctx, "/analytics/chairpersons", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get chairperson stats")
	}
	return out, nil
}

func (s *Service) TaxTypes(ctx context.Context) ([]TaxTypeStats, error) {
	var out []TaxTypeStats
	if err := s.client.Get(ctx, "/analytics/tax-types", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get tax type stats")
	}
	return out, nil
}

func (s *Service) Trends(ctx context.Context) ([]TrendPoint, error) {
	var out []TrendPoint
	if err := s.client.Get(ctx, "/analytics/trends", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get trends")
	}
	return out, nil
}

func (s *Service) Outcomes(ctx context.Context) ([]OutcomeShare, error) {
	var out []OutcomeShare
	if err := s.client.Get(ctx, "/analytics/outcomes", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get outcome distribution")
	}
	return out, nil
}

func (s *Service) TopAppellants(ctx context.Context) ([]AppellantStats, error) {
	var out []AppellantStats
	if err := s.client.Get(ctx, "/analytics/top-appellants", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get top appellants")
	}
	return out, nil
}

func (s *Service) Citations(ctx context.Context) (*CitationStats, error) {
	var out CitationStats
	if err := s.client.Get(ctx, "/analytics/citations", nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get citation stats")
	}
	return &out, nil
}
