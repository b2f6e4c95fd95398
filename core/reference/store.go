package reference

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	qerrors "quotecalc/internal/errors"
)

// Kind names one of the seven reference tables
type Kind string

const (
	KindCountries     Kind = "countries"
	KindOfferings     Kind = "offering"
	KindRisks         Kind = "risk"
	KindSLC           Kind = "slc"
	KindLaborTypes    Kind = "mcbr"
	KindLaborBand     Kind = "lband"
	KindLaborPlatform Kind = "lplat"
)

// Kinds lists every table in load order
var Kinds = []Kind{
	KindCountries,
	KindOfferings,
	KindRisks,
	KindSLC,
	KindLaborTypes,
	KindLaborBand,
	KindLaborPlatform,
}

// Column names the tables are keyed by
const (
	ColOffering    = "Offering"
	ColL40         = "L40"
	ColRisk        = "Risk"
	ColContingency = "Contingency"
	ColSLC         = "SLC"
	ColUPLF        = "UPLF"
	ColScope       = "Scope"
	ColMCBR        = "MCBR"
	ColPlatform    = "Plat"
	ColBand        = "Def"
)

// Countries table layout: columns before FirstCountryColumn are metadata,
// and data row ExchangeRateRow holds local units per USD.
const (
	FirstCountryColumn = 2
	ExchangeRateRow    = 1
)

var requiredColumns = map[Kind][]string{
	KindOfferings:     {ColOffering, ColL40},
	KindRisks:         {ColRisk, ColContingency},
	KindSLC:           {ColSLC, ColUPLF, ColScope},
	KindLaborTypes:    {ColMCBR},
	KindLaborBand:     {ColBand},
	KindLaborPlatform: {ColPlatform},
}

// Store is the immutable set of reference tables
type Store struct {
	Countries     *Table
	Offerings     *Table
	Risks         *Table
	SLC           *Table
	LaborTypes    *Table
	LaborBand     *Table
	LaborPlatform *Table

	countries   []string
	fingerprint string
	loadedAt    time.Time
	source      string
}

// Build validates raw grids and assembles a Store. source describes where
// the grids came from and is kept for display only.
func Build(grids map[Kind][][]string, source string) (*Store, error) {
	h := sha256.New()
	tables := make(map[Kind]*Table, len(Kinds))

	for _, kind := range Kinds {
		grid, ok := grids[kind]
		if !ok {
			return nil, qerrors.Table(string(kind), "table not provided")
		}
		if len(grid) == 0 {
			return nil, qerrors.Table(string(kind), "missing header row")
		}
		t := NewTable(string(kind), grid)
		for _, col := range requiredColumns[kind] {
			if _, ok := t.Column(col); !ok {
				return nil, qerrors.Table(string(kind), fmt.Sprintf("missing column %q", col))
			}
		}
		tables[kind] = t

		fmt.Fprintf(h, "%s\x1e", kind)
		for _, row := range grid {
			fmt.Fprintf(h, "%s\x1e", strings.Join(row, "\x1f"))
		}
	}

	countries := tables[KindCountries]
	if len(countries.header) <= FirstCountryColumn {
		return nil, qerrors.Table(string(KindCountries), "no country columns")
	}
	if countries.Len() <= ExchangeRateRow {
		return nil, qerrors.Table(string(KindCountries), "missing exchange rate row")
	}

	s := &Store{
		Countries:     countries,
		Offerings:     tables[KindOfferings],
		Risks:         tables[KindRisks],
		SLC:           tables[KindSLC],
		LaborTypes:    tables[KindLaborTypes],
		LaborBand:     tables[KindLaborBand],
		LaborPlatform: tables[KindLaborPlatform],
		fingerprint:   hex.EncodeToString(h.Sum(nil)),
		loadedAt:      time.Now().UTC(),
		source:        source,
	}

	seen := make(map[string]bool)
	for _, name := range countries.header[FirstCountryColumn:] {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		s.countries = append(s.countries, name)
	}

	return s, nil
}

// CountryNames returns the selectable countries in column order
func (s *Store) CountryNames() []string {
	out := make([]string, len(s.countries))
	copy(out, s.countries)
	return out
}

// Table returns the table of the given kind
func (s *Store) Table(kind Kind) *Table {
	switch kind {
	case KindCountries:
		return s.Countries
	case KindOfferings:
		return s.Offerings
	case KindRisks:
		return s.Risks
	case KindSLC:
		return s.SLC
	case KindLaborTypes:
		return s.LaborTypes
	case KindLaborBand:
		return s.LaborBand
	case KindLaborPlatform:
		return s.LaborPlatform
	}
	return nil
}

// Fingerprint is a sha256 over every loaded cell. Two stores with the same
// fingerprint price identically.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

// LoadedAt returns when the store was built
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// Source describes where the tables were loaded from
func (s *Store) Source() string {
	return s.source
}
