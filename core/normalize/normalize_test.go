package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"thousands separator", "1,234.50", "1234.50"},
		{"quoted with separator", `"12,500"`, "12500"},
		{"single quotes and spaces", " '3,000.75' ", "3000.75"},
		{"plain integer", "42", "42"},
		{"negative", "-17.5", "-17.5"},
		{"inner spaces", "1 234", "1234"},
		{"blank", "", "0"},
		{"whitespace only", "   ", "0"},
		{"lone dash", "-", "0"},
		{"padded dash", " - ", "0"},
		{"double dash", "--", "0"},
		{"text", "n/a", "0"},
		{"trailing garbage", "12abc", "0"},
		{"two points", "1.2.3", "0"},
		{"exponent", "1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Numeric(tt.raw)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Numeric(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseReportsFailure(t *testing.T) {
	for _, raw := range []string{"", "-", "abc", `""`} {
		if _, ok := Parse(raw); ok {
			t.Errorf("Parse(%q) ok = true, want false", raw)
		}
	}
	if d, ok := Parse("0"); !ok || !d.IsZero() {
		t.Errorf("Parse(\"0\") = %s, %v; want 0, true", d, ok)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"15%", "0.15"},
		{" 7.5% ", "0.075"},
		{"20", "0.2"},
		{"0%", "0"},
		{"%", "0"},
		{"high", "0"},
		{"", "0"},
	}

	for _, tt := range tests {
		got := Percentage(tt.raw)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Percentage(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestFloat(t *testing.T) {
	if got := Float(decimal.RequireFromString("1234.5")); got != 1234.5 {
		t.Errorf("Float() = %v, want 1234.5", got)
	}
}
