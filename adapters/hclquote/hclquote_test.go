package hclquote

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	qerrors "quotecalc/internal/errors"
)

const sample = `
customer = "Acme"
country  = "Mexico"
currency = "Local"
risk     = "Medium"

service {
  offering        = "X"
  quantity        = 2
  slc             = "SLC-24x7"
  start           = "2024-01-01"
  end             = "2024-04-01"
  unit_cost_usd   = 100.1
  unit_cost_local = "1,700"
}

labor {
  type     = "Band Rate"
  category = "Band 6"
  hours    = 40
  start    = "2024-01-01"
  end      = "2024-02-01"
}
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sample), "quote.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Country != "Mexico" || d.Currency != "Local" || d.Risk != "Medium" {
		t.Errorf("header = %+v", d)
	}
	if d.Service.Quantity != 2 || d.Labor.Hours != 40 || d.Labor.Category != "Band 6" {
		t.Errorf("blocks = %+v / %+v", d.Service, d.Labor)
	}

	in, err := d.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}
	if !in.Service.UnitCostUSD.Equal(decimal.RequireFromString("100.1")) {
		t.Errorf("UnitCostUSD = %s", in.Service.UnitCostUSD)
	}
	if !in.Service.UnitCostLocal.Equal(decimal.NewFromInt(1700)) {
		t.Errorf("UnitCostLocal = %s", in.Service.UnitCostLocal)
	}
	if in.Service.Period.Months() != 3 {
		t.Errorf("service months = %d", in.Service.Period.Months())
	}
}

func TestParseWithoutLabor(t *testing.T) {
	src := `
country = "Peru"
service {
  offering = "X"
  slc      = "SLC-8x5"
  start    = "2024-01-01"
  end      = "2024-01-15"
}
`
	d, err := Parse([]byte(src), "min.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Service.Quantity != 1 {
		t.Errorf("default quantity = %d, want 1", d.Service.Quantity)
	}
	if d.Labor.Category != "" {
		t.Errorf("unexpected labor %+v", d.Labor)
	}
}

func TestParseKeepsExplicitZeroQuantity(t *testing.T) {
	src := strings.Replace(sample, "quantity        = 2", "quantity        = 0", 1)
	d, err := Parse([]byte(src), "zero.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Service.Quantity != 0 {
		t.Fatalf("quantity = %d, want 0", d.Service.Quantity)
	}

	in, err := d.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}
	if err := in.Validate(); !qerrors.IsType(err, qerrors.TypeInput) {
		t.Errorf("expected INPUT_ERROR for zero quantity, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "country = ", "bad.hcl:"},
		{"missing service", `country = "Mexico"`, "service"},
		{"missing country", "service {\n offering = \"X\"\n slc = \"S\"\n start = \"a\"\n end = \"b\"\n}\n", "country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			if !qerrors.IsType(err, qerrors.TypeParsing) {
				t.Fatalf("expected PARSING_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q"+Extension)
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(path); err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.hcl")); !qerrors.IsType(err, qerrors.TypeInput) {
		t.Errorf("expected INPUT_ERROR for missing file, got %v", err)
	}
}
