package config

import (
	"os"
	"path/filepath"
	"testing"

	"quotecalc/core/reference"
	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/testutil"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Quote.DefaultCurrency != types.CurrencyUSD || cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quotecalc.json")

	cfg := Default()
	cfg.Tables.Workbook = "tables.xlsx"
	cfg.Tables.Sheets = reference.Names{reference.KindSLC: "service_levels"}
	cfg.Quote.DefaultCurrency = types.CurrencyLocal
	cfg.Quote.ApplyContingency = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Tables.Workbook != "tables.xlsx" || got.Tables.Sheets[reference.KindSLC] != "service_levels" {
		t.Errorf("tables not round-tripped: %+v", got.Tables)
	}
	if got.Quote.DefaultCurrency != types.CurrencyLocal || !got.Quote.ApplyContingency {
		t.Errorf("quote not round-tripped: %+v", got.Quote)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"quote":`},
		{"bad currency", `{"quote":{"default_currency":"EUR"}}`},
		{"bad format", `{"output":{"default_format":"html"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !qerrors.IsType(err, qerrors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvTablesDir, "/srv/tables")
	t.Setenv(EnvAddr, ":9090")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Tables.Dir != "/srv/tables" || cfg.Server.Addr != ":9090" || cfg.Logging.Level != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Tables.Workbook != "" {
		t.Errorf("unset env should not change Workbook, got %q", cfg.Tables.Workbook)
	}
}

func TestLoadStore(t *testing.T) {
	cfg := Default()
	cfg.Tables.Dir = testutil.WriteCSVDir(t)

	s, err := cfg.LoadStore()
	if err != nil {
		t.Fatalf("LoadStore() from dir error = %v", err)
	}
	if len(s.CountryNames()) != 5 {
		t.Errorf("unexpected countries %v", s.CountryNames())
	}

	cfg.Tables.Workbook = testutil.WriteWorkbook(t)
	if _, err := cfg.LoadStore(); err != nil {
		t.Fatalf("LoadStore() from workbook error = %v", err)
	}
}
