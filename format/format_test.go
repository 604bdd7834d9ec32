package format_test

import (
	"testing"

	"github.com/jrsteele09/appeals-client/format"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	require.Equal(t, "TZS 1,234,567", format.Currency(1234567))
	require.Equal(t, "TZS 0", format.Currency(0))
}

func TestLargeCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{45678900000, "TZS 45.68B"},
		{123456000, "TZS 123.46M"},
		{1500, "TZS 1.50K"},
		{999, "TZS 999"},
		{0, "TZS 0"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, format.LargeCurrency(tt.amount))
	}
}

func TestPercentage(t *testing.T) {
	require.Equal(t, "39.5%", format.Percentage(39.46, 1))
	require.Equal(t, "40%", format.Percentage(39.6, 0))
	require.Equal(t, "0.00%", format.Percentage(0, 2))
}

func TestDate(t *testing.T) {
	require.Equal(t, "January 15, 2024", format.Date("2024-01-15", format.DateLong))
	require.Equal(t, "Jan 15, 2024", format.Date("2024-01-15T10:30:00Z", format.DateMedium))
	require.Equal(t, "01/15/2024", format.Date("2024-01-15", format.DateShort))
	require.Equal(t, format.NotAvailable, format.Date("  ", format.DateLong))
	require.Equal(t, "not a date", format.Date("not a date", format.DateLong))
}
