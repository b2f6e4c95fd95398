package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"quotecalc/core/normalize"
	"quotecalc/core/quote"
)

// QuoteSheet is the name of the sheet XLSX exports are written to
const QuoteSheet = "Quote"

// XLSXFormatter renders a quote as a single-sheet workbook
type XLSXFormatter struct {
	opts RenderOptions
}

// Format returns the format type
func (f *XLSXFormatter) Format() Format {
	return FormatXLSX
}

// Render writes res as an xlsx workbook
func (f *XLSXFormatter) Render(w io.Writer, res *quote.Result) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), QuoteSheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	if err := wb.SetColWidth(QuoteSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := wb.SetColWidth(QuoteSheet, "B", "E", 18); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	titleStyle, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}
	headStyle, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := wb.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	s := &sheetWriter{f: wb, row: 1}
	s.str("A", f.opts.Title, titleStyle)
	s.row += 2

	for _, group := range [][]field{headerFields(res), serviceFields(res), laborFields(res)} {
		if len(group) == 0 {
			continue
		}
		for _, fl := range group {
			s.str("A", fl.Label, 0)
			s.str("B", fl.Value, 0)
			s.row++
		}
		s.row++
	}

	for i, h := range []string{"Component", "Base", "Base currency", "Amount", "Formula"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		s.str(col, h, headStyle)
	}
	s.row++
	for _, line := range res.Lines {
		s.str("A", line.Label, 0)
		s.num("B", normalize.Float(line.Base), moneyStyle)
		s.str("C", line.BaseCurrency, 0)
		s.num("D", normalize.Float(line.Amount), moneyStyle)
		s.str("E", line.Lineage.Formula, 0)
		s.row++
	}
	s.row++

	for _, fl := range totalFields(res) {
		s.str("A", fl.Label, 0)
		s.str("B", fl.Value, 0)
		s.row++
	}

	if len(res.Fallbacks) > 0 {
		s.row++
		s.str("A", "Warnings", titleStyle)
		s.row++
		for _, fb := range res.Fallbacks {
			s.str("A", fb.String(), 0)
			s.row++
		}
	}

	if s.err != nil {
		return s.err
	}
	_, err = wb.WriteTo(w)
	return err
}

// sheetWriter writes cells on one row of QuoteSheet, keeping the first error
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (s *sheetWriter) cell(col string) string {
	return fmt.Sprintf("%s%d", col, s.row)
}

func (s *sheetWriter) str(col, value string, style int) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellStr(QuoteSheet, s.cell(col), value)
	s.style(col, style)
}

func (s *sheetWriter) num(col string, value float64, style int) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellFloat(QuoteSheet, s.cell(col), value, 2, 64)
	s.style(col, style)
}

func (s *sheetWriter) style(col string, style int) {
	if s.err != nil || style == 0 {
		return
	}
	s.err = s.f.SetCellStyle(QuoteSheet, s.cell(col), s.cell(col), style)
}
