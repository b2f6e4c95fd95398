package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"quotecalc/core/duration"
	"quotecalc/core/quote"
	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/testutil"
)

func sampleResult(t *testing.T) *quote.Result {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := quote.Inputs{
		QuoteID:   "COT-TEST",
		Customer:  "Acme",
		QuoteDate: start,
		Country:   "Mexico",
		Currency:  types.CurrencyLocal,
		Risk:      "Medium",
		Service: quote.ServiceInputs{
			Offering:    "X",
			Quantity:    2,
			SLC:         "SLC-24x7",
			Period:      duration.Range{Start: start, End: start.AddDate(0, 3, 0)},
			UnitCostUSD: decimal.NewFromInt(100),
		},
		Labor: quote.LaborInputs{
			Type:     "Band Rate",
			Category: "Band 6",
			Hours:    1,
			Period:   duration.Range{Start: start, End: start.AddDate(0, 1, 0)},
		},
	}
	return quote.NewEngine(testutil.Store(t), quote.Options{}).Compute(in)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"660", "660.00"},
		{"11220", "11,220.00"},
		{"1234567.891", "1,234,567.89"},
	}
	for _, tt := range tests {
		if got := Money(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("Money(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Percent(decimal.RequireFromString("0.15")); got != "15%" {
		t.Errorf("Percent(0.15) = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("html"); !qerrors.IsType(err, qerrors.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestTextFormatter(t *testing.T) {
	res := sampleResult(t)
	f, err := New(FormatCLI, RenderOptions{ShowLineage: true})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf, res); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"COT-TEST",
		"L40-X",
		"11,220.00",
		"5,000.00",
		"16,220.00",
		"Contingency 10% (not charged)",
		"1,622.00",
		"formula",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warnings") {
		t.Errorf("unexpected warnings section:\n%s", out)
	}
}

func TestTextFormatterWarnings(t *testing.T) {
	res := sampleResult(t)
	res.Fallbacks = []types.Fallback{{Field: "uplf", Key: "SLC-X", Substitute: "0"}}

	var buf bytes.Buffer
	if err := (&TextFormatter{}).Render(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `uplf "SLC-X" unresolved`) {
		t.Errorf("missing fallback warning:\n%s", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Render(&buf, sampleResult(t)); err != nil {
		t.Fatal(err)
	}

	var got struct {
		QuoteID string          `json:"quote_id"`
		Total   decimal.Decimal `json:"total"`
		Lines   []struct {
			ID string `json:"id"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.QuoteID != "COT-TEST" || !got.Total.Equal(decimal.NewFromInt(16220)) || len(got.Lines) != 2 {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
}

func TestXLSXFormatter(t *testing.T) {
	f, _ := New(FormatXLSX, RenderOptions{})

	var buf bytes.Buffer
	if err := f.Render(&buf, sampleResult(t)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(QuoteSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 || rows[0][0] != DefaultTitle {
		t.Fatalf("missing title row: %v", rows)
	}

	found := map[string]string{}
	for _, r := range rows {
		if len(r) >= 2 {
			found[r[0]] = r[1]
		}
	}
	if found["Quote"] != "COT-TEST" {
		t.Errorf("Quote = %q", found["Quote"])
	}
	if found["Total Local"] != "16,220.00" {
		t.Errorf("Total Local = %q", found["Total Local"])
	}
}

func TestPDFFormatter(t *testing.T) {
	f, _ := New(FormatPDF, RenderOptions{Title: "Quote COT-TEST"})

	var buf bytes.Buffer
	if err := f.Render(&buf, sampleResult(t)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output is not a PDF (%d bytes)", buf.Len())
	}
}

func TestFormatMetadata(t *testing.T) {
	if FormatPDF.ContentType() != "application/pdf" || FormatCLI.Extension() != "txt" {
		t.Error("unexpected format metadata")
	}
	if FormatXLSX.Extension() != "xlsx" {
		t.Error("unexpected xlsx extension")
	}
}
