package dashboard

import "github.com/jrsteele09/appeals-client/cases"

// Demo figures shown when the API is unreachable and mock data is enabled

func mockStats() *cases.Stats {
	return &cases.Stats{
		TotalCases:            1247,
		PendingCases:          342,
		DecidedCases:          789,
		AppealedCases:         116,
		TotalTaxDisputed:      45678900000,
		TotalTaxRecovered:     23456700000,
		AverageResolutionDays: DefaultResolutionDays,
		CasesByType:           mockCasesByType(),
		MonthlyTrends:         mockMonthlyTrends(),
	}
}

func mockCasesByType() map[string]int {
	return map[string]int{
		"Income Tax":       456,
		"VAT":              298,
		"Customs & Excise": 234,
		"Withholding Tax":  156,
		"PAYE":             103,
	}
}

func mockMonthlyTrends() *cases.MonthlyTrends {
	return &cases.MonthlyTrends{
		Labels:  []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Filed:   []int{45, 52, 48, 61, 55, 67, 72, 68, 58, 63, 71, 65},
		Decided: []int{38, 42, 45, 48, 52, 55, 58, 62, 54, 59, 65, 61},
		Pending: []int{12, 22, 25, 38, 41, 53, 67, 73, 77, 81, 87, 91},
	}
}

func mockCasesByJudge() []JudgeSummary {
	return []JudgeSummary{
		{Chairperson: "Hon. Dr. Azaveli M. Lwiza", TotalCases: 234, Pending: 45, Decided: 189, Allowed: 79, Dismissed: 65, PartiallyAllowed: 35, Remanded: 10, AvgResolutionDays: 142},
		{Chairperson: "Hon. Hamza A. Johari", TotalCases: 198, Pending: 38, Decided: 160, Allowed: 61, Dismissed: 68, PartiallyAllowed: 25, Remanded: 6, AvgResolutionDays: 167},
		{Chairperson: "Hon. Dr. Happiness E. Murusuri", TotalCases: 187, Pending: 52, Decided: 135, Allowed: 61, Dismissed: 48, PartiallyAllowed: 20, Remanded: 6, AvgResolutionDays: 134},
		{Chairperson: "Hon. Jokate J. Shija", TotalCases: 176, Pending: 41, Decided: 135, Allowed: 55, Dismissed: 54, PartiallyAllowed: 22, Remanded: 4, AvgResolutionDays: 156},
		{Chairperson: "Hon. Joachim M. Ngerageza", TotalCases: 165, Pending: 36, Decided: 129, Allowed: 50, Dismissed: 55, PartiallyAllowed: 20, Remanded: 4, AvgResolutionDays: 148},
		{Chairperson: "Hon. Prof. Gamaliel P. Masanja", TotalCases: 158, Pending: 47, Decided: 111, Allowed: 52, Dismissed: 40, PartiallyAllowed: 16, Remanded: 3, AvgResolutionDays: 161},
		{Chairperson: "Hon. Petro R. Kyando", TotalCases: 129, Pending: 33, Decided: 96, Allowed: 35, Dismissed: 42, PartiallyAllowed: 16, Remanded: 3, AvgResolutionDays: 152},
	}
}

func mockCasesByStatus() map[string]int {
	return map[string]int{"pending": 342, "decided": 789, "appealed": 116, "withdrawn": 67, "settled": 45}
}

func mockCasesByOutcome() map[string]int {
	return map[string]int{"allowed": 312, "dismissed": 267, "partially_allowed": 178, "remanded": 32}
}

func mockRecentDecisions() []Decision {
	return []Decision{
		{ID: "mock-case-1", CaseNumber: "TRAB/VAT/APP/2024/156", Appellant: "ABC Trading Company Ltd", Outcome: "allowed", TaxAmount: 45678000, DecisionDate: "2024-01-15", Chairperson: "Hon. Dr. Azaveli M. Lwiza"},
		{ID: "mock-case-2", CaseNumber: "TRAB/IT/APP/2024/134", Appellant: "XYZ Manufacturing Ltd", Outcome: "partially_allowed", TaxAmount: 123456000, DecisionDate: "2024-01-14", Chairperson: "Hon. Hamza A. Johari"},
		{ID: "mock-case-3", CaseNumber: "TRAB/CE/APP/2024/089", Appellant: "Global Imports & Exports", Outcome: "dismissed", TaxAmount: 87654000, DecisionDate: "2024-01-12", Chairperson: "Hon. Dr. Happiness E. Murusuri"},
		{ID: "mock-case-4", CaseNumber: "TRAB/VAT/APP/2024/145", Appellant: "Tech Solutions Tanzania", Outcome: "allowed", TaxAmount: 34567000, DecisionDate: "2024-01-10", Chairperson: "Hon. Jokate J. Shija"},
		{ID: "mock-case-5", CaseNumber: "TRAB/IT/APP/2024/098", Appellant: "Coastal Traders Ltd", Outcome: "remanded", TaxAmount: 156789000, DecisionDate: "2024-01-08", Chairperson: "Hon. Joachim M. Ngerageza"},
	}
}
