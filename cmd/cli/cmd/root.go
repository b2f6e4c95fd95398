// Package cmd provides the CLI commands for quotecalc.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quotecalc/core/quote"
	"quotecalc/internal/config"
	"quotecalc/internal/logging"
)

// Version is the CLI version, overridable with -ldflags
var Version = "0.1.0"

var (
	cfgFile   string
	verbose   bool
	tablesDir string
	workbook  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quotecalc",
	Short: "Price service and labor quotes from reference tables",
	Long: `quotecalc prices service offerings and labor for a country from a set
of reference tables (countries, offerings, risk, SLC, labor rates).

Examples:
  quotecalc quote --country Mexico --offering "Managed Backup" --slc SLC-24x7 \
    --start 2024-01-01 --end 2024-04-01 --unit-cost-usd 100
  quotecalc quote --file quote.hcl --format pdf --out quote.pdf
  quotecalc tables slc --country Brazil`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./quotecalc.json when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&tablesDir, "tables", "", "directory holding the reference CSV files")
	rootCmd.PersistentFlags().StringVar(&workbook, "workbook", "", "xlsx workbook holding the reference tables")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// defaultConfigFile is read when --config is not given
const defaultConfigFile = "quotecalc.json"

func initConfig() {
	path := cfgFile
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	if tablesDir != "" {
		cfg.Tables.Dir = tablesDir
		cfg.Tables.Workbook = ""
	}
	if workbook != "" {
		cfg.Tables.Workbook = workbook
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadEngine loads the configured tables and builds an engine over them
func loadEngine() (*quote.Engine, error) {
	cfg := config.Get()
	store, err := cfg.LoadStore()
	if err != nil {
		return nil, err
	}
	return quote.NewEngine(store, quote.Options{ApplyContingency: cfg.Quote.ApplyContingency}), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quotecalc version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(config.Get())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigFile
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}
