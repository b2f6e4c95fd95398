package output

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"quotecalc/core/quote"
)

// PDFFormatter renders a quote as a printable A4 document
type PDFFormatter struct {
	opts RenderOptions
}

// Format returns the format type
func (f *PDFFormatter) Format() Format {
	return FormatPDF
}

// Render writes res as PDF
func (f *PDFFormatter) Render(w io.Writer, res *quote.Result) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(f.opts.Title, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Center,
			})),
		),
	)

	pdfSection(m, "", headerFields(res))
	pdfSection(m, "Service", serviceFields(res))
	pdfSection(m, "Labor", laborFields(res))
	pdfTotals(m, totalFields(res))

	if len(res.Fallbacks) > 0 {
		warn := props.Text{Size: 8, Color: &props.Color{Red: 160, Green: 40, Blue: 40}}
		m.AddRows(row.New(6))
		for _, fb := range res.Fallbacks {
			m.AddRows(row.New(5).Add(col.New(12).Add(text.New(fb.String(), warn))))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

func pdfSection(m core.Maroto, title string, fields []field) {
	if len(fields) == 0 {
		return
	}
	m.AddRows(row.New(4))
	if title != "" {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New(title, props.Text{Size: 11, Style: fontstyle.Bold})),
		))
	}

	label := props.Text{Size: 9, Style: fontstyle.Bold}
	value := props.Text{Size: 9}
	for _, fl := range fields {
		m.AddRows(row.New(6).Add(
			col.New(4).Add(text.New(fl.Label, label)),
			col.New(8).Add(text.New(fl.Value, value)),
		))
	}
}

func pdfTotals(m core.Maroto, fields []field) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	for _, fl := range fields {
		m.AddRows(row.New(8).Add(
			col.New(8).Add(text.New(fl.Label, label)).WithStyle(cell),
			col.New(4).Add(text.New(fl.Value, value)).WithStyle(cell),
		))
	}
}
