package cases

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a money value the API sends either as a JSON number or a decimal string
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

type Case struct {
	ID                 string     `json:"id" yaml:"id"`
	CaseNumber         string     `json:"caseNumber" yaml:"caseNumber"`
	Appellant          string     `json:"appellant,omitempty" yaml:"appellant,omitempty"`
	Respondent         string     `json:"respondent,omitempty" yaml:"respondent,omitempty"`
	CaseType           string     `json:"caseType,omitempty" yaml:"caseType,omitempty"`
	TaxType            string     `json:"taxType,omitempty" yaml:"taxType,omitempty"`
	Status             string     `json:"status,omitempty" yaml:"status,omitempty"`
	Outcome            string     `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Chairperson        string     `json:"chairperson,omitempty" yaml:"chairperson,omitempty"`
	FilingDate         string     `json:"filingDate,omitempty" yaml:"filingDate,omitempty"`
	DecisionDate       string     `json:"decisionDate,omitempty" yaml:"decisionDate,omitempty"`
	TaxAmountDisputed  Amount     `json:"taxAmountDisputed,omitempty" yaml:"taxAmountDisputed,omitempty"`
	TaxAmountRecovered Amount     `json:"taxAmountRecovered,omitempty" yaml:"taxAmountRecovered,omitempty"`
	Summary            string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Documents          []Document `json:"documents,omitempty" yaml:"documents,omitempty"`
	Parties            []Party    `json:"parties,omitempty" yaml:"parties,omitempty"`
}

type Party struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

type Document struct {
	ID           string `json:"id" yaml:"id"`
	CaseID       string `json:"caseId,omitempty" yaml:"caseId,omitempty"`
	FileName     string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	DocumentType string `json:"documentType,omitempty" yaml:"documentType,omitempty"`
	MimeType     string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	FileSize     int64  `json:"fileSize,omitempty" yaml:"fileSize,omitempty"`
	PageCount    int    `json:"pageCount,omitempty" yaml:"pageCount,omitempty"`
	OcrStatus    string `json:"ocrStatus,omitempty" yaml:"ocrStatus,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// CaseList is a page of cases. The API answers either {cases, total} or a bare array.
type CaseList struct {
	Cases  []Case `json:"cases" yaml:"cases"`
	Total  int    `json:"total" yaml:"total"`
	Limit  int    `json:"limit,omitempty" yaml:"limit,omitempty"`
	Offset int    `json:"offset,omitempty" yaml:"offset,omitempty"`
	Page   int    `json:"page,omitempty" yaml:"page,omitempty"`
}

func (l *CaseList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Case
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = CaseList{Cases: items, Total: len(items)}
		return nil
	}
	type plain CaseList
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*l = CaseList(out)
	return nil
}

// DocumentList is the document set of one case. A bare array is accepted too.
type DocumentList struct {
	CaseID    string     `json:"caseId,omitempty" yaml:"caseId,omitempty"`
	Documents []Document `json:"documents" yaml:"documents"`
	Total     int        `json:"total" yaml:"total"`
}

func (l *DocumentList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Document
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = DocumentList{Documents: items, Total: len(items)}
		return nil
	}
	type plain DocumentList
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*l = DocumentList(out)
	if l.Total == 0 {
		l.Total = len(l.Documents)
	}
	return nil
}

// MonthlyTrends holds parallel series indexed by Labels
type MonthlyTrends struct {
	Labels  []string `json:"labels" yaml:"labels"`
	Filed   []int    `json:"filed" yaml:"filed"`
	Decided []int    `json:"decided" yaml:"decided"`
	Pending []int    `json:"pending" yaml:"pending"`
}

// Stats is the body of /cases/stats. Breakdowns are nil when the server omits them.
type Stats struct {
	TotalCases            int            `json:"totalCases" yaml:"totalCases"`
	PendingCases          int            `json:"pendingCases" yaml:"pendingCases"`
	DecidedCases          int            `json:"decidedCases" yaml:"decidedCases"`
	AppealedCases         int            `json:"appealedCases" yaml:"appealedCases"`
	WithdrawnCases        int            `json:"withdrawnCases,omitempty" yaml:"withdrawnCases,omitempty"`
	SettledCases          int            `json:"settledCases,omitempty" yaml:"settledCases,omitempty"`
	TotalTaxDisputed      Amount         `json:"totalTaxDisputed" yaml:"totalTaxDisputed"`
	TotalTaxRecovered     Amount         `json:"totalTaxRecovered" yaml:"totalTaxRecovered"`
	AverageResolutionDays float64        `json:"averageResolutionDays" yaml:"averageResolutionDays"`
	CasesByType           map[string]int `json:"casesByType,omitempty" yaml:"casesByType,omitempty"`
	CasesByStatus         map[string]int `json:"casesByStatus,omitempty" yaml:"casesByStatus,omitempty"`
	CasesByOutcome        map[string]int `json:"casesByOutcome,omitempty" yaml:"casesByOutcome,omitempty"`
	MonthlyTrends         *MonthlyTrends `json:"monthlyTrends,omitempty" yaml:"monthlyTrends,omitempty"`
}

// DocumentContent is a downloaded document body
type DocumentContent struct {
	Data        []byte
	ContentType string
}
