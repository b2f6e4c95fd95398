// Package types - Quote cost types
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyMode is the currency a quote is displayed in
type CurrencyMode string

const (
	// CurrencyUSD displays amounts in US dollars
	CurrencyUSD CurrencyMode = "USD"

	// CurrencyLocal displays amounts in the selected country's currency
	CurrencyLocal CurrencyMode = "Local"
)

// String returns the string representation
func (c CurrencyMode) String() string {
	return string(c)
}

// Valid reports whether c is one of the two display modes
func (c CurrencyMode) Valid() bool {
	return c == CurrencyUSD || c == CurrencyLocal
}

// ParseCurrencyMode accepts "USD" or "Local" in any letter case.
func ParseCurrencyMode(s string) (CurrencyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "usd":
		return CurrencyUSD, nil
	case "local":
		return CurrencyLocal, nil
	}
	return "", fmt.Errorf("unknown currency mode %q (want USD or Local)", s)
}

// CostLine is one priced component of a quote
type CostLine struct {
	// ID identifies the component ("service", "labor")
	ID string `json:"id"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Base is the amount before display-currency adjustment
	Base decimal.Decimal `json:"base"`

	// BaseCurrency is the currency Base is denominated in
	BaseCurrency string `json:"base_currency"`

	// Amount is the amount in the display currency
	Amount decimal.Decimal `json:"amount"`

	// Currency is the display currency
	Currency CurrencyMode `json:"currency"`

	// Lineage tracks how the amount was calculated
	Lineage CostLineage `json:"lineage"`
}

// CostLineage tracks the origin and calculation of a cost
type CostLineage struct {
	// Formula describes how the cost was calculated
	Formula string `json:"formula"`

	// Factors are the named values fed into Formula
	Factors map[string]string `json:"factors,omitempty"`

	// Assumptions lists fallbacks and other assumptions made
	Assumptions []string `json:"assumptions,omitempty"`
}

// Fallback records a neutral default substituted during a quote
type Fallback struct {
	// Field is the value that could not be resolved
	Field string `json:"field"`

	// Key is the selection that was looked up
	Key string `json:"key"`

	// Substitute is the value used instead
	Substitute string `json:"substitute"`

	// Reason is the underlying error message
	Reason string `json:"reason"`
}

// String renders the fallback for assumption lists
func (f Fallback) String() string {
	return fmt.Sprintf("%s %q unresolved, using %s", f.Field, f.Key, f.Substitute)
}
