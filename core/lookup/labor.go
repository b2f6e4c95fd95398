package lookup

import (
	"strings"

	"github.com/shopspring/decimal"

	"quotecalc/core/normalize"
	"quotecalc/core/reference"
)

// LaborRoute is the labor-rate table a labor type resolves to
type LaborRoute struct {
	Kind      reference.Kind
	Table     *reference.Table
	KeyColumn string
}

// IsPlatform reports whether the route reads the platform table
func (r LaborRoute) IsPlatform() bool {
	return r.Kind == reference.KindLaborPlatform
}

// RouteLabor picks the platform table for any labor type containing
// MachineMarker and the band table for everything else.
func RouteLabor(s *reference.Store, laborType string) LaborRoute {
	if strings.Contains(laborType, MachineMarker) {
		return LaborRoute{
			Kind:      reference.KindLaborPlatform,
			Table:     s.LaborPlatform,
			KeyColumn: reference.ColPlatform,
		}
	}
	return LaborRoute{
		Kind:      reference.KindLaborBand,
		Table:     s.LaborBand,
		KeyColumn: reference.ColBand,
	}
}

// LaborCategories lists the categories selectable under laborType.
func LaborCategories(s *reference.Store, laborType string) []string {
	route := RouteLabor(s, laborType)
	return route.Table.Values(route.KeyColumn)
}

// MonthlyLaborCost returns the local-currency monthly cost of category in
// country. Unparseable cells normalize to zero; only a missing category or
// country is an error.
func MonthlyLaborCost(s *reference.Store, laborType, category, country string) (decimal.Decimal, LaborRoute, error) {
	route := RouteLabor(s, laborType)

	row, err := ResolveRow(route.Table, route.KeyColumn, category)
	if err != nil {
		return decimal.Zero, route, err
	}
	raw, err := CountryCell(route.Table, row, country)
	if err != nil {
		return decimal.Zero, route, err
	}
	return normalize.Numeric(raw), route, nil
}
