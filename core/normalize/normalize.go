// Package normalize turns raw reference-table cells into decimals.
//
// Cells come from spreadsheets exported to CSV and are not type-clean:
// thousands separators, wrapping quotes, stray whitespace, blanks and
// accounting dashes all appear. Failures are never returned to callers
// of Numeric or Percentage; they collapse to zero.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	dashPattern    = regexp.MustCompile(`^-+$`)

	hundred = decimal.NewFromInt(100)
)

// cutset covers straight and typographic quotes plus whitespace.
const cutset = "\"'`\u201c\u201d\u2018\u2019 \t\r\n\u00a0"

// Clean strips quotes, whitespace and thousands separators from raw.
func Clean(raw string) string {
	s := strings.Trim(raw, cutset)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	return s
}

// Parse reports the numeric value of raw and whether it was a real number.
// A blank cell or a cell made only of dashes is zero but not ok.
func Parse(raw string) (decimal.Decimal, bool) {
	s := Clean(raw)
	if s == "" || dashPattern.MatchString(s) {
		return decimal.Zero, false
	}
	if !numericPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Numeric returns the value of raw, or zero when it is not a number.
func Numeric(raw string) decimal.Decimal {
	d, _ := Parse(raw)
	return d
}

// ParsePercentage parses "15%" style text into the fraction 0.15.
func ParsePercentage(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSuffix(Clean(raw), "%")
	d, ok := Parse(s)
	if !ok {
		return decimal.Zero, false
	}
	return d.Div(hundred), true
}

// Percentage returns the fraction for raw, or zero when it is not a number.
func Percentage(raw string) decimal.Decimal {
	d, _ := ParsePercentage(raw)
	return d
}

// Float converts d for renderers that want a plain float64.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
