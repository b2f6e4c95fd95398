// Package testutil provides reference table fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"quotecalc/core/reference"
)

// Grids returns a small but complete set of reference tables. Mexico trades
// at 17, Brazil has its own SLC scope, Ecuador's row is deliberately wrong
// to prove the USD peg, and Peru has a blank exchange rate.
func Grids() map[reference.Kind][][]string {
	return map[reference.Kind][][]string{
		reference.KindCountries: {
			{"Attribute", "Notes", "Mexico", "Brazil", "Ecuador", "Colombia", "Peru"},
			{"Currency", "", "MXN", "BRL", "USD", "COP", "PEN"},
			{"ER", "local per USD", "17.0", `"5.10"`, "0.98", "4,000.00", ""},
		},
		reference.KindOfferings: {
			{"Offering", "L40"},
			{"X", "L40-X"},
			{"Managed Backup", "L40-MB"},
		},
		reference.KindRisks: {
			{"Risk", "Contingency"},
			{"Low", "5%"},
			{"Medium", "10%"},
			{"High", "15%"},
		},
		reference.KindSLC: {
			{"SLC", "UPLF", "Scope"},
			{"SLC-24x7", "1.1", ""},
			{"SLC-8x5", "1.0", ""},
			{"SLC-BR-24x7", "1.25", "only Brazil"},
			{"SLC-BR-8x5", "1.05", "only Brazil"},
		},
		reference.KindLaborTypes: {
			{"MCBR"},
			{"Machine Category"},
			{"Band Rate"},
		},
		reference.KindLaborPlatform: {
			{"Id", "Family", "Plat", "Mexico", "Brazil", "Ecuador", "Colombia", "Peru"},
			{"1", "Power", "Power Systems", "5,000", "2,100.50", "450", "-", "n/a"},
			{"2", "Z", "Mainframe", `"12,000"`, "6000", "", "9,500,000", "3000"},
		},
		reference.KindLaborBand: {
			{"Id", "Family", "Def", "Mexico", "Brazil", "Ecuador", "Colombia", "Peru"},
			{"1", "Band", "Band 6", "5000", "1,800", "300", " - ", "1200"},
			{"2", "Band", "Band 8", "8,250.75", "2,600", "520", "7,000,000", "1800"},
		},
	}
}

// Store builds a Store from Grids.
func Store(t testing.TB) *reference.Store {
	t.Helper()

	s, err := reference.Build(Grids(), "fixture")
	if err != nil {
		t.Fatalf("failed to build fixture store: %v", err)
	}
	return s
}

// WriteCSVDir writes Grids as CSV files named per reference.DefaultFiles
// into a temporary directory and returns it.
func WriteCSVDir(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	for kind, grid := range Grids() {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(grid); err != nil {
			t.Fatalf("failed to encode %s: %v", kind, err)
		}
		path := filepath.Join(dir, reference.DefaultFiles[kind])
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return dir
}

// WriteWorkbook writes Grids as one xlsx workbook with a sheet per table
// and returns its path.
func WriteWorkbook(t testing.TB) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, kind := range reference.Kinds {
		sheet := reference.DefaultSheets[kind]
		if first {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				t.Fatalf("failed to rename sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("failed to add sheet %s: %v", sheet, err)
		}

		for r, row := range Grids()[kind] {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("bad coordinates: %v", err)
				}
				if err := f.SetCellStr(sheet, cell, v); err != nil {
					t.Fatalf("failed to set %s!%s: %v", sheet, cell, err)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "tables.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}
