// Package lookup resolves quote selections against the reference tables.
//
// Every resolver returns an error of type LOOKUP_MISS when the selection
// is absent. Choosing a substitute value is left to the caller so each
// field's fallback is explicit at the call site.
package lookup

import (
	"strings"

	"github.com/shopspring/decimal"

	"quotecalc/core/normalize"
	"quotecalc/core/reference"
	qerrors "quotecalc/internal/errors"
)

const (
	// PeggedCountry always prices at one local unit per USD.
	PeggedCountry = "Ecuador"

	// ScopedCountry is the only country with its own service-level codes.
	ScopedCountry = "Brazil"

	// ScopedSLC is the Scope value that marks ScopedCountry's codes.
	ScopedSLC = "only Brazil"

	// MachineMarker routes a labor type to the platform table.
	MachineMarker = "Machine"
)

// ResolveRow returns the first row whose keyColumn equals keyValue.
// Cells and key are compared with surrounding whitespace removed.
func ResolveRow(t *reference.Table, keyColumn, keyValue string) (reference.Row, error) {
	col, ok := t.Column(keyColumn)
	if !ok {
		return nil, qerrors.LookupMiss(t.Name(), keyColumn).WithContext("reason", "no such column")
	}

	want := strings.TrimSpace(keyValue)
	match := -1
	t.Each(func(i int) bool {
		if strings.TrimSpace(t.Cell(i, col)) == want {
			match = i
			return false
		}
		return true
	})
	if match < 0 {
		return nil, qerrors.LookupMiss(t.Name(), keyValue).WithContext("column", keyColumn)
	}
	return t.Row(match), nil
}

// CountryCell returns the raw cell of row in the column named exactly country.
func CountryCell(t *reference.Table, row reference.Row, country string) (string, error) {
	col, ok := t.Column(country)
	if !ok {
		return "", qerrors.LookupMiss(t.Name(), country).WithContext("reason", "no country column")
	}
	return row.Get(col), nil
}

// ExchangeRate returns local units per USD for country. The pegged country
// is 1 whatever the table says. A blank or malformed cell is a parsing
// error; a zero rate is returned as is.
func ExchangeRate(s *reference.Store, country string) (decimal.Decimal, error) {
	if country == PeggedCountry {
		return decimal.NewFromInt(1), nil
	}

	col, ok := s.Countries.Column(country)
	if !ok || col < reference.FirstCountryColumn {
		return decimal.Zero, qerrors.LookupMiss(s.Countries.Name(), country)
	}

	raw := s.Countries.Cell(reference.ExchangeRateRow, col)
	er, ok := normalize.Parse(raw)
	if !ok {
		return decimal.Zero, qerrors.Parsing("exchange rate for "+country, nil).
			WithContext("raw", raw)
	}
	return er, nil
}

// SLCEligible reports whether a row's Scope admits country.
func SLCEligible(scope, country string) bool {
	scope = strings.TrimSpace(scope)
	if country == ScopedCountry {
		return scope == ScopedSLC
	}
	return scope == ""
}

// EligibleSLC lists the service-level codes selectable for country.
func EligibleSLC(s *reference.Store, country string) []string {
	codeCol, _ := s.SLC.Column(reference.ColSLC)
	scopeCol, _ := s.SLC.Column(reference.ColScope)

	var out []string
	s.SLC.Each(func(i int) bool {
		if SLCEligible(s.SLC.Cell(i, scopeCol), country) {
			if code := strings.TrimSpace(s.SLC.Cell(i, codeCol)); code != "" {
				out = append(out, code)
			}
		}
		return true
	})
	return out
}

// UPLF returns the uplift multiplier of code, considering only the codes
// eligible for country.
func UPLF(s *reference.Store, country, code string) (decimal.Decimal, error) {
	codeCol, _ := s.SLC.Column(reference.ColSLC)
	scopeCol, _ := s.SLC.Column(reference.ColScope)
	uplfCol, _ := s.SLC.Column(reference.ColUPLF)

	want := strings.TrimSpace(code)
	var (
		uplf  decimal.Decimal
		found bool
	)
	s.SLC.Each(func(i int) bool {
		if strings.TrimSpace(s.SLC.Cell(i, codeCol)) != want {
			return true
		}
		if !SLCEligible(s.SLC.Cell(i, scopeCol), country) {
			return true
		}
		uplf = normalize.Numeric(s.SLC.Cell(i, uplfCol))
		found = true
		return false
	})
	if !found {
		return decimal.Zero, qerrors.LookupMiss(s.SLC.Name(), code).WithContext("country", country)
	}
	return uplf, nil
}

// L40 returns the display-only classification of an offering.
func L40(s *reference.Store, offering string) (string, error) {
	row, err := ResolveRow(s.Offerings, reference.ColOffering, offering)
	if err != nil {
		return "", err
	}
	col, _ := s.Offerings.Column(reference.ColL40)
	return strings.TrimSpace(row.Get(col)), nil
}

// Contingency returns the fraction for a risk level ("15%" becomes 0.15).
func Contingency(s *reference.Store, risk string) (decimal.Decimal, error) {
	row, err := ResolveRow(s.Risks, reference.ColRisk, risk)
	if err != nil {
		return decimal.Zero, err
	}
	col, _ := s.Risks.Column(reference.ColContingency)
	return normalize.Percentage(row.Get(col)), nil
}
