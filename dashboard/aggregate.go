package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jrsteele09/appeals-client/cases"
)

// maxResolutionDays bounds plausible filing-to-decision spans (ten years)
const maxResolutionDays = 3650

// JudgeSummary is the workload and outcome record of one chairperson
type JudgeSummary struct {
	Chairperson       string `json:"chairperson" yaml:"chairperson"`
	TotalCases        int    `json:"totalCases" yaml:"totalCases"`
	Pending           int    `json:"pending" yaml:"pending"`
	Decided           int    `json:"decided" yaml:"decided"`
	Allowed           int    `json:"allowed" yaml:"allowed"`
	Dismissed         int    `json:"dismissed" yaml:"dismissed"`
	PartiallyAllowed  int    `json:"partiallyAllowed" yaml:"partiallyAllowed"`
	Remanded          int    `json:"remanded" yaml:"remanded"`
	AvgResolutionDays int    `json:"avgResolutionDays" yaml:"avgResolutionDays"`
}

// Decision is a recently decided case shaped for the dashboard table
type Decision struct {
	ID           string       `json:"id" yaml:"id"`
	CaseNumber   string       `json:"caseNumber" yaml:"caseNumber"`
	Appellant    string       `json:"appellant" yaml:"appellant"`
	Outcome      string       `json:"outcome" yaml:"outcome"`
	TaxAmount    cases.Amount `json:"taxAmount" yaml:"taxAmount"`
	DecisionDate string       `json:"decisionDate" yaml:"decisionDate"`
	Chairperson  string       `json:"chairperson" yaml:"chairperson"`
}

func normalizeOutcome(outcome string) string {
	return strings.Join(strings.Fields(strings.ToLower(outcome)), "_")
}

// CountOutcomes tallies the four decided outcomes. "partial" counts as partially allowed.
func CountOutcomes(list []cases.Case) map[string]int {
	outcomes := map[string]int{"allowed": 0, "dismissed": 0, "partially_allowed": 0, "remanded": 0}
	for _, c := range list {
		switch o := normalizeOutcome(c.Outcome); o {
		case "allowed", "dismissed", "remanded":
			outcomes[o]++
		case "partially_allowed", "partial":
			outcomes["partially_allowed"]++
		}
	}
	return outcomes
}

// CountStatuses tallies the five known statuses, ignoring anything else
func CountStatuses(list []cases.Case) map[string]int {
	statuses := map[string]int{"pending": 0, "decided": 0, "appealed": 0, "withdrawn": 0, "settled": 0}
	for _, c := range list {
		status := strings.ToLower(c.Status)
		if _, ok := statuses[status]; ok {
			statuses[status]++
		}
	}
	return statuses
}

// CountTypes groups by case type, falling back to tax type and then "Other"
func CountTypes(list []cases.Case) map[string]int {
	types := make(map[string]int)
	for _, c := range list {
		caseType := c.CaseType
		if caseType == "" {
			caseType = c.TaxType
		}
		if caseType == "" {
			caseType = "Other"
		}
		types[caseType]++
	}
	return types
}

// AggregateByChairperson builds one summary per chairperson, busiest first
func AggregateByChairperson(list []cases.Case) []JudgeSummary {
	type tally struct {
		summary      JudgeSummary
		totalDays    int
		decidedCount int
	}
	byName := make(map[string]*tally)
	var order []string

	for _, c := range list {
		name := c.Chairperson
		if name == "" {
			name = "Not assigned"
		}
		t, ok := byName[name]
		if !ok {
			t = &tally{summary: JudgeSummary{Chairperson: name}}
			byName[name] = t
			order = append(order, name)
		}
		t.summary.TotalCases++

		if c.Status == "pending" {
			t.summary.Pending++
		} else {
			t.summary.Decided++
		}

		switch strings.ToLower(c.Outcome) {
		case "allowed":
			t.summary.Allowed++
		case "dismissed":
			t.summary.Dismissed++
		case "partially_allowed", "partially allowed":
			t.summary.PartiallyAllowed++
		case "remanded":
			t.summary.Remanded++
		}

		if days, ok := resolutionDays(c); ok {
			t.totalDays += days
			t.decidedCount++
		}
	}

	out := make([]JudgeSummary, 0, len(order))
	for _, name := range order {
		t := byName[name]
		if t.decidedCount > 0 {
			t.summary.AvgResolutionDays = int(math.Round(float64(t.totalDays) / float64(t.decidedCount)))
		}
		out = append(out, t.summary)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCases > out[j].TotalCases })
	return out
}

// AverageResolutionDays is the rounded mean filing-to-decision span of cases whose span
// is between zero and ten years exclusive. ok is false when no case qualifies.
func AverageResolutionDays(list []cases.Case) (days int, ok bool) {
	total, valid := 0, 0
	for _, c := range list {
		d, hasDates := resolutionDays(c)
		if !hasDates || d <= 0 || d >= maxResolutionDays {
			continue
		}
		total += d
		valid++
	}
	if valid == 0 {
		return 0, false
	}
	return int(math.Round(float64(total) / float64(valid))), true
}

// ToDecisions shapes recent cases for display, filling placeholders for missing fields
func ToDecisions(list []cases.Case, now time.Time) []Decision {
	out := make([]Decision, 0, len(list))
	for _, c := range list {
		decisionDate := c.DecisionDate
		if decisionDate == "" {
			decisionDate = c.FilingDate
		}
		if decisionDate == "" {
			decisionDate = now.Format("2006-01-02")
		}
		out = append(out, Decision{
			ID:           c.ID,
			CaseNumber:   orDefault(c.CaseNumber, "N/A"),
			Appellant:    orDefault(c.Appellant, "Unknown"),
			Outcome:      orDefault(c.Outcome, "pending"),
			TaxAmount:    c.TaxAmountDisputed,
			DecisionDate: decisionDate,
			Chairperson:  orDefault(c.Chairperson, "Not assigned"),
		})
	}
	return out
}

// resolutionDays is the whole number of days from filing to decision
func resolutionDays(c cases.Case) (int, bool) {
	if c.FilingDate == "" || c.DecisionDate == "" {
		return 0, false
	}
	filed, err := dateparse.ParseAny(c.FilingDate)
	if err != nil {
		return 0, false
	}
	decided, err := dateparse.ParseAny(c.DecisionDate)
	if err != nil {
		return 0, false
	}
	return int(math.Floor(decided.Sub(filed).Hours() / 24)), true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func allZero(counts map[string]int) bool {
	for _, n := range counts {
		if n > 0 {
			return false
		}
	}
	return true
}
