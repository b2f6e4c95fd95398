// Package hclquote reads quotes from HCL files.
//
// A quote file holds the header as top-level attributes, one service
// block and an optional labor block:
//
//	customer = "Acme"
//	country  = "Mexico"
//	currency = "USD"
//	risk     = "Medium"
//
//	service {
//	  offering      = "Managed Backup"
//	  quantity      = 2
//	  slc           = "SLC-24x7"
//	  start         = "2024-01-01"
//	  end           = "2024-04-01"
//	  unit_cost_usd = 100
//	}
//
//	labor {
//	  type     = "Band Rate"
//	  category = "Band 6"
//	  hours    = 40
//	  start    = "2024-01-01"
//	  end      = "2024-02-01"
//	}
package hclquote

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"quotecalc/core/quote"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/logging"
)

// Extension is the conventional quote file extension
const Extension = ".hcl"

type fileSchema struct {
	QuoteID  string       `hcl:"id,optional"`
	Customer string       `hcl:"customer,optional"`
	Date     string       `hcl:"date,optional"`
	Country  string       `hcl:"country"`
	Currency string       `hcl:"currency,optional"`
	Risk     string       `hcl:"risk,optional"`
	Service  serviceBlock `hcl:"service,block"`
	Labor    *laborBlock  `hcl:"labor,block"`
}

// Amounts are decoded as strings so 0.1 stays exact; HCL converts
// number literals to their decimal text.
type serviceBlock struct {
	Offering      string `hcl:"offering"`
	Quantity      *int   `hcl:"quantity,optional"`
	SLC           string `hcl:"slc"`
	Start         string `hcl:"start"`
	End           string `hcl:"end"`
	UnitCostUSD   string `hcl:"unit_cost_usd,optional"`
	UnitCostLocal string `hcl:"unit_cost_local,optional"`
}

type laborBlock struct {
	Type     string `hcl:"type,optional"`
	Category string `hcl:"category"`
	Hours    int    `hcl:"hours"`
	Start    string `hcl:"start"`
	End      string `hcl:"end"`
}

// ParseFile reads a quote file from disk
func ParseFile(path string) (quote.Draft, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return quote.Draft{}, qerrors.Wrap(qerrors.TypeInput, "cannot read quote file "+path, err)
	}
	return Parse(src, path)
}

// Parse decodes a quote file. filename is used in diagnostics only.
func Parse(src []byte, filename string) (quote.Draft, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return quote.Draft{}, diagError(filename, diags)
	}

	var fs fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &fs); diags.HasErrors() {
		return quote.Draft{}, diagError(filename, diags)
	}

	// Only an absent quantity defaults; an explicit 0 is left for Validate.
	quantity := 1
	if fs.Service.Quantity != nil {
		quantity = *fs.Service.Quantity
	}

	d := quote.Draft{
		QuoteID:  fs.QuoteID,
		Customer: fs.Customer,
		Date:     fs.Date,
		Country:  fs.Country,
		Currency: fs.Currency,
		Risk:     fs.Risk,
		Service: quote.ServiceDraft{
			Offering:      fs.Service.Offering,
			Quantity:      quantity,
			SLC:           fs.Service.SLC,
			Start:         fs.Service.Start,
			End:           fs.Service.End,
			UnitCostUSD:   fs.Service.UnitCostUSD,
			UnitCostLocal: fs.Service.UnitCostLocal,
		},
	}
	if fs.Labor != nil {
		d.Labor = quote.LaborDraft{
			Type:     fs.Labor.Type,
			Category: fs.Labor.Category,
			Hours:    fs.Labor.Hours,
			Start:    fs.Labor.Start,
			End:      fs.Labor.End,
		}
	}

	logging.Debug("quote file parsed",
		zap.String("file", filename),
		zap.String("country", d.Country),
		zap.Bool("labor", fs.Labor != nil),
	)
	return d, nil
}

func diagError(filename string, diags hcl.Diagnostics) error {
	var first *hcl.Diagnostic
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			first = d
			break
		}
	}
	msg := diags.Error()
	line := 0
	if first != nil {
		msg = first.Summary
		if first.Detail != "" {
			msg += ": " + first.Detail
		}
		if first.Subject != nil {
			line = first.Subject.Start.Line
		}
	}
	return qerrors.Parsing(fmt.Sprintf("%s:%d: %s", filename, line, msg), diags).
		WithContext("file", filename).
		WithContext("line", line)
}
