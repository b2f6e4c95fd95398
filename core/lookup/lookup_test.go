package lookup

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"quotecalc/core/reference"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExchangeRate(t *testing.T) {
	s := testutil.Store(t)

	tests := []struct {
		country string
		want    string
		errType qerrors.Type
	}{
		{country: "Mexico", want: "17"},
		{country: "Brazil", want: "5.1"},
		{country: "Colombia", want: "4000"},
		{country: "Ecuador", want: "1"},
		{country: "Peru", errType: qerrors.TypeParsing},
		{country: "Chile", errType: qerrors.TypeLookupMiss},
		{country: "Notes", errType: qerrors.TypeLookupMiss},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			got, err := ExchangeRate(s, tt.country)
			if tt.errType != "" {
				if !qerrors.IsType(err, tt.errType) {
					t.Fatalf("expected %s, got %v", tt.errType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExchangeRate() error = %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ExchangeRate(%s) = %s, want %s", tt.country, got, tt.want)
			}
		})
	}
}

func TestExchangeRateWithBlankRowAboveIt(t *testing.T) {
	grids := testutil.Grids()
	grids[reference.KindCountries] = [][]string{
		{"Attribute", "Notes", "Mexico"},
		{"", "", ""},
		{"Exchange Rate", "", "17.0"},
		{"Other", "", "99"},
	}
	s, err := reference.Build(grids, "test")
	if err != nil {
		t.Fatal(err)
	}

	er, err := ExchangeRate(s, "Mexico")
	if err != nil {
		t.Fatalf("ExchangeRate() error = %v", err)
	}
	if !er.Equal(dec("17")) {
		t.Errorf("ExchangeRate() = %s, want 17", er)
	}
}

func TestExchangeRateEcuadorPegIgnoresTable(t *testing.T) {
	grids := testutil.Grids()
	grids[reference.KindCountries][2][4] = "999"
	s, err := reference.Build(grids, "test")
	if err != nil {
		t.Fatal(err)
	}

	got, err := ExchangeRate(s, "Ecuador")
	if err != nil || !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("ExchangeRate(Ecuador) = %s, %v; want 1", got, err)
	}
}

func TestEligibleSLC(t *testing.T) {
	s := testutil.Store(t)

	tests := []struct {
		country string
		want    []string
	}{
		{"Brazil", []string{"SLC-BR-24x7", "SLC-BR-8x5"}},
		{"Mexico", []string{"SLC-24x7", "SLC-8x5"}},
		{"Ecuador", []string{"SLC-24x7", "SLC-8x5"}},
		{"Atlantis", []string{"SLC-24x7", "SLC-8x5"}},
	}

	for _, tt := range tests {
		if got := EligibleSLC(s, tt.country); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("EligibleSLC(%s) = %v, want %v", tt.country, got, tt.want)
		}
	}
}

func TestSLCEligibleOnlyTwoScopes(t *testing.T) {
	if SLCEligible("only Mexico", "Mexico") {
		t.Error("unknown scopes are never eligible")
	}
	if SLCEligible("only Brazil", "Mexico") {
		t.Error("Brazil-only codes must not leak to other countries")
	}
	if SLCEligible("", "Brazil") {
		t.Error("unscoped codes are not offered in Brazil")
	}
	if !SLCEligible("  ", "Peru") {
		t.Error("whitespace scope counts as empty")
	}
}

func TestUPLF(t *testing.T) {
	s := testutil.Store(t)

	got, err := UPLF(s, "Mexico", "SLC-24x7")
	if err != nil || !got.Equal(dec("1.1")) {
		t.Errorf("UPLF(Mexico, SLC-24x7) = %s, %v", got, err)
	}

	got, err = UPLF(s, "Brazil", "SLC-BR-24x7")
	if err != nil || !got.Equal(dec("1.25")) {
		t.Errorf("UPLF(Brazil, SLC-BR-24x7) = %s, %v", got, err)
	}

	if _, err := UPLF(s, "Brazil", "SLC-24x7"); !qerrors.IsType(err, qerrors.TypeLookupMiss) {
		t.Errorf("out-of-scope code should miss, got %v", err)
	}
	if _, err := UPLF(s, "Mexico", "SLC-unknown"); !qerrors.IsType(err, qerrors.TypeLookupMiss) {
		t.Errorf("unknown code should miss, got %v", err)
	}
}

func TestL40AndContingency(t *testing.T) {
	s := testutil.Store(t)

	if l40, err := L40(s, "Managed Backup"); err != nil || l40 != "L40-MB" {
		t.Errorf("L40() = %q, %v", l40, err)
	}
	if _, err := L40(s, "Nope"); !qerrors.IsType(err, qerrors.TypeLookupMiss) {
		t.Errorf("expected lookup miss, got %v", err)
	}

	c, err := Contingency(s, "High")
	if err != nil || !c.Equal(dec("0.15")) {
		t.Errorf("Contingency(High) = %s, %v", c, err)
	}
	if _, err := Contingency(s, "Extreme"); !qerrors.IsType(err, qerrors.TypeLookupMiss) {
		t.Errorf("expected lookup miss, got %v", err)
	}
}

func TestResolveRow(t *testing.T) {
	s := testutil.Store(t)

	row, err := ResolveRow(s.Offerings, reference.ColOffering, " X ")
	if err != nil {
		t.Fatalf("ResolveRow() error = %v", err)
	}
	if row.Get(1) != "L40-X" {
		t.Errorf("unexpected row %v", row)
	}

	if _, err := ResolveRow(s.Offerings, "Missing", "X"); !qerrors.IsType(err, qerrors.TypeLookupMiss) {
		t.Errorf("missing column should miss, got %v", err)
	}
}

func TestRouteLabor(t *testing.T) {
	s := testutil.Store(t)

	tests := []struct {
		label    string
		platform bool
		key      string
	}{
		{"Machine Category", true, "Plat"},
		{"Virtual Machine Hours", true, "Plat"},
		{"Band Rate", false, "Def"},
		{"machine category", false, "Def"},
		{"", false, "Def"},
	}

	for _, tt := range tests {
		r := RouteLabor(s, tt.label)
		if r.IsPlatform() != tt.platform || r.KeyColumn != tt.key {
			t.Errorf("RouteLabor(%q) = %s/%s, want platform=%v key=%s",
				tt.label, r.Kind, r.KeyColumn, tt.platform, tt.key)
		}
	}
}

func TestLaborCategories(t *testing.T) {
	s := testutil.Store(t)

	if got := LaborCategories(s, "Machine Category"); !reflect.DeepEqual(got, []string{"Power Systems", "Mainframe"}) {
		t.Errorf("platform categories = %v", got)
	}
	if got := LaborCategories(s, "Band Rate"); !reflect.DeepEqual(got, []string{"Band 6", "Band 8"}) {
		t.Errorf("band categories = %v", got)
	}
}

func TestMonthlyLaborCost(t *testing.T) {
	s := testutil.Store(t)

	tests := []struct {
		name      string
		laborType string
		category  string
		country   string
		want      string
		miss      bool
	}{
		{"platform with separator", "Machine Category", "Power Systems", "Mexico", "5000", false},
		{"quoted cell", "Machine Category", "Mainframe", "Mexico", "12000", false},
		{"dash is zero", "Machine Category", "Power Systems", "Colombia", "0", false},
		{"text is zero", "Machine Category", "Power Systems", "Peru", "0", false},
		{"blank is zero", "Machine Category", "Mainframe", "Ecuador", "0", false},
		{"band", "Band Rate", "Band 8", "Mexico", "8250.75", false},
		{"padded dash", "Band Rate", "Band 6", "Colombia", "0", false},
		{"unknown category", "Band Rate", "Band 99", "Mexico", "0", true},
		{"category from other table", "Band Rate", "Power Systems", "Mexico", "0", true},
		{"unknown country", "Band Rate", "Band 6", "Chile", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := MonthlyLaborCost(s, tt.laborType, tt.category, tt.country)
			if tt.miss {
				if !qerrors.IsType(err, qerrors.TypeLookupMiss) {
					t.Fatalf("expected lookup miss, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MonthlyLaborCost() error = %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("MonthlyLaborCost() = %s, want %s", got, tt.want)
			}
		})
	}
}
