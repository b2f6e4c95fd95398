package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/logging"
)

// Names maps each table kind to a file name (CSV directory) or a sheet
// name (workbook).
type Names map[Kind]string

// DefaultFiles are the CSV file names the calculator has always shipped with
var DefaultFiles = Names{
	KindCountries:     "countries.csv",
	KindOfferings:     "offering.csv",
	KindRisks:         "risk.csv",
	KindSLC:           "slc.csv",
	KindLaborTypes:    "mcbr.csv",
	KindLaborBand:     "lband.csv",
	KindLaborPlatform: "lplat.csv",
}

// DefaultSheets are the workbook sheet names, one per table kind
var DefaultSheets = Names{
	KindCountries:     "countries",
	KindOfferings:     "offering",
	KindRisks:         "risk",
	KindSLC:           "slc",
	KindLaborTypes:    "mcbr",
	KindLaborBand:     "lband",
	KindLaborPlatform: "lplat",
}

// Merge returns defaults overridden by any non-empty entries in n.
func (n Names) Merge(defaults Names) Names {
	out := make(Names, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range n {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// ReadCSV reads every record of a CSV stream. Rows may be ragged.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, qerrors.Parsing("failed to parse CSV", err)
	}
	return rows, nil
}

// LoadDir loads the seven tables from CSV files in dir.
func LoadDir(dir string, files Names) (*Store, error) {
	files = files.Merge(DefaultFiles)
	grids := make(map[Kind][][]string, len(Kinds))

	for _, kind := range Kinds {
		path := filepath.Join(dir, files[kind])
		grid, err := readCSVFile(path)
		if err != nil {
			return nil, qerrors.Wrapf(qerrors.TypeTable, err, "%s: cannot load %s", kind, path)
		}
		grids[kind] = grid
		logging.Debug("reference table loaded",
			zap.String("table", string(kind)),
			zap.String("path", path),
			zap.Int("rows", len(grid)),
		)
	}

	store, err := Build(grids, dir)
	if err != nil {
		return nil, err
	}
	logging.Info("reference tables ready",
		zap.String("source", dir),
		zap.Int("countries", len(store.countries)),
		zap.String("fingerprint", store.fingerprint[:12]),
	)
	return store, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// LoadWorkbook loads the seven tables from the sheets of one xlsx workbook.
func LoadWorkbook(path string, sheets Names) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qerrors.Wrapf(qerrors.TypeTable, err, "cannot open workbook %s", path)
	}
	defer f.Close()
	return ReadWorkbook(f, path, sheets)
}

// ReadWorkbook loads the seven tables from an xlsx stream.
func ReadWorkbook(r io.Reader, source string, sheets Names) (*Store, error) {
	sheets = sheets.Merge(DefaultSheets)

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, qerrors.Parsing("failed to open workbook", err)
	}
	defer wb.Close()

	grids := make(map[Kind][][]string, len(Kinds))
	for _, kind := range Kinds {
		if idx, _ := wb.GetSheetIndex(sheets[kind]); idx < 0 {
			return nil, qerrors.Table(string(kind), fmt.Sprintf("sheet %q not found", sheets[kind]))
		}
		rows, err := wb.GetRows(sheets[kind])
		if err != nil {
			return nil, qerrors.Wrapf(qerrors.TypeTable, err, "%s: cannot read sheet %q", kind, sheets[kind])
		}
		grids[kind] = rows
	}

	store, err := Build(grids, source)
	if err != nil {
		return nil, err
	}
	logging.Info("reference workbook ready",
		zap.String("source", source),
		zap.Int("countries", len(store.countries)),
	)
	return store, nil
}
