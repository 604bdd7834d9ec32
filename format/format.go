// Package format renders amounts, percentages and dates the way the dashboard displays them.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyCode prefixes every formatted amount
const CurrencyCode = "TZS"

// NotAvailable is shown for missing values
const NotAvailable = "N/A"

type DateStyle int

const (
	DateLong   DateStyle = iota // January 15, 2024
	DateMedium                  // Jan 15, 2024
	DateShort                   // 01/15/2024
)

var printer = message.NewPrinter(language.English)

// Currency formats an amount with grouping and at most two decimals, e.g. "TZS 1,234,567"
func Currency(amount float64) string {
	return CurrencyCode + " " + grouped(amount)
}

// LargeCurrency abbreviates thousands, millions and billions, e.g. "TZS 45.68B"
func LargeCurrency(amount float64) string {
	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("%s %.2fB", CurrencyCode, amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("%s %.2fM", CurrencyCode, amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("%s %.2fK", CurrencyCode, amount/1_000)
	}
	return Currency(amount)
}

// Percentage renders value (0-100) with the given number of decimals
func Percentage(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// Date parses value in any common layout and renders it in style.
// Empty input gives NotAvailable; input that cannot be parsed is returned unchanged.
func Date(value string, style DateStyle) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return NotAvailable
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return value
	}
	return FormatTime(t, style)
}

func FormatTime(t time.Time, style DateStyle) string {
	if t.IsZero() {
		return NotAvailable
	}
	switch style {
	case DateShort:
		return t.Format("01/02/2006")
	case DateMedium:
		return t.Format("Jan 2, 2006")
	}
	return t.Format("January 2, 2006")
}

func grouped(amount float64) string {
	return printer.Sprint(number.Decimal(amount, number.MinFractionDigits(0), number.MaxFractionDigits(2)))
}
