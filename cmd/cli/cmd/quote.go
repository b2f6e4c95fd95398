// Package cmd - quote command
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quotecalc/adapters/hclquote"
	"quotecalc/core/output"
	"quotecalc/core/quote"
	"quotecalc/internal/config"
	"quotecalc/internal/logging"
)

var (
	quoteFile        string
	outputFormat     string
	outPath          string
	showLineage      bool
	applyContingency bool
	draftFlags       = map[string]*string{}
	quantityFlag     int
	hoursFlag        int
)

// stringFlags are the quote flags backed by draft fields, see draftFields
var stringFlags = []struct {
	name  string
	usage string
}{
	{"id", "quote id (default: generated)"},
	{"customer", "customer name"},
	{"date", "quote date YYYY-MM-DD (default: today)"},
	{"country", "country to price in"},
	{"currency", "display currency: USD or Local"},
	{"risk", "QA risk level"},
	{"offering", "service offering"},
	{"slc", "service level code"},
	{"start", "service start date YYYY-MM-DD"},
	{"end", "service end date YYYY-MM-DD"},
	{"unit-cost-usd", "monthly unit cost in USD"},
	{"unit-cost-local", "monthly unit cost in local currency"},
	{"labor-type", "labor type (a Machine type routes to the platform table)"},
	{"labor-category", "labor category; empty for no labor"},
	{"labor-start", "labor start date YYYY-MM-DD"},
	{"labor-end", "labor end date YYYY-MM-DD"},
}

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a quote",
	Long: `Price a quote from flags or from an HCL quote file.

Flags given alongside --file override the file's values.

Examples:
  quotecalc quote --country Mexico --offering X --slc SLC-24x7 \
    --start 2024-01-01 --end 2024-04-01 --unit-cost-usd 100 --quantity 2
  quotecalc quote --file quote.hcl --currency Local
  quotecalc quote --file quote.hcl --format xlsx --out quote.xlsx`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&quoteFile, "file", "", "HCL quote file")
	f.StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, xlsx, pdf)")
	f.StringVarP(&outPath, "out", "o", "", "write output to this file")
	f.BoolVar(&showLineage, "lineage", false, "show formulas and factors per cost line")
	f.BoolVar(&applyContingency, "apply-contingency", false, "charge the risk contingency on top of the total")
	f.IntVar(&quantityFlag, "quantity", 1, "service quantity")
	f.IntVar(&hoursFlag, "hours", 0, "labor hours")
	for _, sf := range stringFlags {
		draftFlags[sf.name] = f.String(sf.name, "", sf.usage)
	}
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	draft, err := buildDraft(cmd)
	if err != nil {
		return err
	}
	in, err := draft.Inputs()
	if err != nil {
		return err
	}
	if in.Currency == "" {
		in.Currency = cfg.Quote.DefaultCurrency
	}
	in = in.WithDefaults(cfg.Quote.IDPrefix, time.Now())
	if err := in.Validate(); err != nil {
		return err
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("apply-contingency") {
		opts := engine.Options()
		opts.ApplyContingency = applyContingency
		engine = engine.WithOptions(opts)
	}
	res := engine.Compute(in)

	name := outputFormat
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	formatter, err := output.New(format, output.RenderOptions{
		ShowLineage: showLineage || cfg.Output.ShowLineage,
		Title:       "Quotation " + res.QuoteID,
	})
	if err != nil {
		return err
	}

	target := outPath
	if target == "" && (format == output.FormatXLSX || format == output.FormatPDF) {
		target = res.QuoteID + "." + format.Extension()
	}
	if target == "" {
		return formatter.Render(cmd.OutOrStdout(), res)
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, res); err != nil {
		return err
	}
	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	logging.Info("quote written", zap.String("file", target), zap.String("format", string(format)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (total %s %s)\n", target, output.Money(res.Total), res.CurrencyLabel)
	return nil
}

// buildDraft reads --file when given and lays explicitly set flags over it
func buildDraft(cmd *cobra.Command) (quote.Draft, error) {
	var d quote.Draft
	if quoteFile != "" {
		parsed, err := hclquote.ParseFile(quoteFile)
		if err != nil {
			return d, err
		}
		d = parsed
	}

	flags := cmd.Flags()
	for name, field := range draftFields(&d) {
		if flags.Changed(name) {
			*field = *draftFlags[name]
		}
	}
	if quoteFile == "" || flags.Changed("quantity") {
		d.Service.Quantity = quantityFlag
	}
	if flags.Changed("hours") {
		d.Labor.Hours = hoursFlag
	}
	return d, nil
}

func draftFields(d *quote.Draft) map[string]*string {
	return map[string]*string{
		"id":              &d.QuoteID,
		"customer":        &d.Customer,
		"date":            &d.Date,
		"country":         &d.Country,
		"currency":        &d.Currency,
		"risk":            &d.Risk,
		"offering":        &d.Service.Offering,
		"slc":             &d.Service.SLC,
		"start":           &d.Service.Start,
		"end":             &d.Service.End,
		"unit-cost-usd":   &d.Service.UnitCostUSD,
		"unit-cost-local": &d.Service.UnitCostLocal,
		"labor-type":      &d.Labor.Type,
		"labor-category":  &d.Labor.Category,
		"labor-start":     &d.Labor.Start,
		"labor-end":       &d.Labor.End,
	}
}
