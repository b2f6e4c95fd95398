package quote

import (
	"strings"
	"testing"
	"time"

	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
)

func TestDraftInputs(t *testing.T) {
	d := Draft{
		Customer: " Acme ",
		Date:     "2024-05-02",
		Country:  "Mexico",
		Currency: "local",
		Service: ServiceDraft{
			Offering:      "X",
			Quantity:      2,
			SLC:           "SLC-24x7",
			Start:         "2024-01-01",
			End:           "2024-04-01",
			UnitCostUSD:   "1,200.50",
			UnitCostLocal: "",
		},
		Labor: LaborDraft{Type: "Band Rate", Category: "Band 6", Hours: 10, Start: "2024-01-01", End: "2024-02-01"},
	}

	in, err := d.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}
	if in.Customer != "Acme" || in.Currency != types.CurrencyLocal {
		t.Errorf("header = %+v", in)
	}
	if !in.QuoteDate.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("QuoteDate = %v", in.QuoteDate)
	}
	assertDec(t, "UnitCostUSD", in.Service.UnitCostUSD, "1200.50")
	assertDec(t, "UnitCostLocal", in.Service.UnitCostLocal, "0")
	if in.Service.Period.Months() != 3 || in.Labor.Period.Months() != 1 {
		t.Errorf("periods = %v, %v", in.Service.Period, in.Labor.Period)
	}
	if err := in.WithDefaults("", time.Now()).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDraftInputsReportsEveryProblem(t *testing.T) {
	d := Draft{
		Country:  "Mexico",
		Currency: "EUR",
		Service:  ServiceDraft{Quantity: 1, Start: "01/01/2024", End: "2024-02-01", UnitCostUSD: "abc"},
	}

	_, err := d.Inputs()
	if !qerrors.IsType(err, qerrors.TypeInput) {
		t.Fatalf("expected INPUT_ERROR, got %v", err)
	}
	for _, want := range []string{"service start", "unit_cost_usd", "EUR"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestDraftInputsRejectsExponentAmounts(t *testing.T) {
	for _, raw := range []string{"1e3000000", "2E2", "1.5e-3"} {
		d := Draft{
			Country:  "Mexico",
			Currency: "usd",
			Service:  ServiceDraft{Quantity: 1, Start: "2024-01-01", End: "2024-02-01", UnitCostUSD: raw},
		}
		_, err := d.Inputs()
		if !qerrors.IsType(err, qerrors.TypeInput) {
			t.Fatalf("%s: expected INPUT_ERROR, got %v", raw, err)
		}
		if !strings.Contains(err.Error(), "exponent") {
			t.Errorf("%s: error %q does not mention the exponent", raw, err)
		}
	}
}
