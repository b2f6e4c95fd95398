// Package quote is the pricing engine: it turns quote inputs and the
// reference tables into service, labor and total costs.
package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotecalc/core/duration"
	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
)

// DefaultIDPrefix prefixes generated quote ids
const DefaultIDPrefix = "COT-"

// Bounds on user-entered unit costs
const (
	MaxUnitCostDigits = 12
	MaxUnitCostPlaces = 6
)

var maxUnitCost = decimal.New(1, MaxUnitCostDigits)

// Inputs is everything a user selects for one quote. A fresh value is
// built for every recomputation; nothing in it is shared.
type Inputs struct {
	QuoteID   string             `json:"quote_id"`
	Customer  string             `json:"customer,omitempty"`
	QuoteDate time.Time          `json:"quote_date"`
	Country   string             `json:"country"`
	Currency  types.CurrencyMode `json:"currency"`
	Risk      string             `json:"risk,omitempty"`
	Service   ServiceInputs      `json:"service"`
	Labor     LaborInputs        `json:"labor"`
}

// ServiceInputs selects the service offering being quoted
type ServiceInputs struct {
	Offering      string          `json:"offering"`
	Quantity      int             `json:"quantity"`
	SLC           string          `json:"slc"`
	Period        duration.Range  `json:"period"`
	UnitCostUSD   decimal.Decimal `json:"unit_cost_usd"`
	UnitCostLocal decimal.Decimal `json:"unit_cost_local"`
}

// LaborInputs selects the labor being quoted. An empty Category means no
// labor is quoted.
type LaborInputs struct {
	Type     string         `json:"type"`
	Category string         `json:"category"`
	Hours    int            `json:"hours"`
	Period   duration.Range `json:"period"`
}

// HasLabor reports whether a labor category was selected
func (l LaborInputs) HasLabor() bool {
	return strings.TrimSpace(l.Category) != ""
}

// NewQuoteID returns a quote id such as "COT-1f3a9c2e".
func NewQuoteID(prefix string) string {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return prefix + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// WithDefaults fills the quote header fields a user may leave blank.
func (in Inputs) WithDefaults(idPrefix string, now time.Time) Inputs {
	if in.QuoteID == "" {
		in.QuoteID = NewQuoteID(idPrefix)
	}
	if in.QuoteDate.IsZero() {
		u := now.UTC()
		in.QuoteDate = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}
	if in.Currency == "" {
		in.Currency = types.CurrencyUSD
	}
	return in
}

// Validate checks what the presentation boundary must guarantee before a
// quote is computed. Selections are not checked against the tables here;
// unknown selections price through their fallbacks.
func (in Inputs) Validate() error {
	var problems []string

	if strings.TrimSpace(in.Country) == "" {
		problems = append(problems, "country is required")
	}
	if !in.Currency.Valid() {
		problems = append(problems, fmt.Sprintf("currency must be USD or Local, got %q", in.Currency))
	}
	if in.Service.Quantity < 1 {
		problems = append(problems, "service quantity must be at least 1")
	}
	if in.Service.UnitCostUSD.IsNegative() || in.Service.UnitCostLocal.IsNegative() {
		problems = append(problems, "unit costs must not be negative")
	}
	for _, c := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"unit_cost_usd", in.Service.UnitCostUSD},
		{"unit_cost_local", in.Service.UnitCostLocal},
	} {
		name, v := c.name, c.v
		if v.Abs().GreaterThanOrEqual(maxUnitCost) {
			problems = append(problems, fmt.Sprintf("%s must be below 1e%d", name, MaxUnitCostDigits))
		}
		if -v.Exponent() > MaxUnitCostPlaces {
			problems = append(problems, fmt.Sprintf("%s must have at most %d decimal places", name, MaxUnitCostPlaces))
		}
	}
	if in.Service.Period.Start.IsZero() || in.Service.Period.End.IsZero() {
		problems = append(problems, "service start and end dates are required")
	}
	if in.Labor.HasLabor() {
		if in.Labor.Hours < 1 {
			problems = append(problems, "labor hours must be at least 1")
		}
		if in.Labor.Period.Start.IsZero() || in.Labor.Period.End.IsZero() {
			problems = append(problems, "labor start and end dates are required")
		}
	}

	if len(problems) > 0 {
		return qerrors.Input(strings.Join(problems, "; ")).WithContext("problems", problems)
	}
	return nil
}
