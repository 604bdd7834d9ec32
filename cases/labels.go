package cases

import "strings"

// Severity names the visual weight a status or outcome badge is drawn with
type Severity string

const (
	SeveritySuccess   Severity = "success"
	SeverityInfo      Severity = "info"
	SeverityWarn      Severity = "warn"
	SeverityDanger    Severity = "danger"
	SeveritySecondary Severity = "secondary"
)

var statusSeverities = map[string]Severity{
	"pending":   SeverityWarn,
	"decided":   SeveritySuccess,
	"appealed":  SeverityInfo,
	"withdrawn": SeveritySecondary,
	"settled":   SeveritySuccess,
}

var outcomeSeverities = map[string]Severity{
	"allowed":           SeveritySuccess,
	"dismissed":         SeverityDanger,
	"partially_allowed": SeverityWarn,
	"remanded":          SeverityInfo,
	"other":             SeveritySecondary,
}

var caseTypeLabels = map[string]string{
	"income_tax": "Income Tax",
	"vat":        "VAT",
	"customs":    "Customs",
	"excise":     "Excise Duty",
	"stamp_duty": "Stamp Duty",
	"other":      "Other",
}

// StatusSeverity maps a case status to a badge severity, defaulting to info
func StatusSeverity(status string) Severity {
	if s, ok := statusSeverities[strings.ToLower(status)]; ok {
		return s
	}
	return SeverityInfo
}

// OutcomeSeverity maps a case outcome to a badge severity, defaulting to info
func OutcomeSeverity(outcome string) Severity {
	if s, ok := outcomeSeverities[strings.ToLower(outcome)]; ok {
		return s
	}
	return SeverityInfo
}

// CaseTypeLabel returns the display name of a case type, or the raw value when unknown
func CaseTypeLabel(caseType string) string {
	if label, ok := caseTypeLabels[strings.ToLower(caseType)]; ok {
		return label
	}
	return caseType
}
