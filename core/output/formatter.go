// Package output renders priced quotes.
// This package produces human and machine-readable outputs.
package output

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"quotecalc/core/normalize"
	"quotecalc/core/quote"
	qerrors "quotecalc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable text summary
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatXLSX is a one-sheet Excel workbook
	FormatXLSX Format = "xlsx"

	// FormatPDF is a printable one-page quote
	FormatPDF Format = "pdf"
)

// Formats lists every supported format
var Formats = []Format{FormatCLI, FormatJSON, FormatXLSX, FormatPDF}

// ContentType returns the MIME type for f
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Extension returns the file extension for f, without the dot
func (f Format) Extension() string {
	if f == FormatCLI {
		return "txt"
	}
	return string(f)
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes res to w
	Render(w io.Writer, res *quote.Result) error
}

// RenderOptions tunes the human-facing formatters
type RenderOptions struct {
	// ShowLineage includes formulas and factors per cost line
	ShowLineage bool

	// Title heads the XLSX and PDF documents
	Title string
}

// DefaultTitle heads exported documents when no title is configured
const DefaultTitle = "Quotation"

// New returns the formatter for f
func New(f Format, opts RenderOptions) (Formatter, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	switch f {
	case FormatCLI:
		return &TextFormatter{opts: opts}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	case FormatXLSX:
		return &XLSXFormatter{opts: opts}, nil
	case FormatPDF:
		return &PDFFormatter{opts: opts}, nil
	}
	return nil, qerrors.NotSupported("output format " + string(f))
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", qerrors.Input("unknown output format " + s + " (want cli, json, xlsx or pdf)")
}

// Money formats d with thousands separators and two decimals
func Money(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", normalize.Float(d.Round(2)))
}

// Percent formats a fraction such as 0.1 as "10%"
func Percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}
