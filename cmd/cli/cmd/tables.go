// Package cmd - tables command
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quotecalc/core/lookup"
	"quotecalc/core/output"
)

var (
	tablesCountry   string
	tablesLaborType string
)

// tableListings are the arguments tables accepts
var tableListings = []string{"countries", "offerings", "risks", "slc", "labor-types", "labor-categories", "info"}

// tablesCmd lists what the reference tables offer
var tablesCmd = &cobra.Command{
	Use:   "tables [countries|offerings|risks|slc|labor-types|labor-categories|info]",
	Short: "List selectable options from the reference tables",
	Long: `List the options a quote can select.

slc lists only the service levels eligible for --country.
labor-categories lists the categories of --labor-type.
info prints where the tables were loaded from and their fingerprint.

Examples:
  quotecalc tables countries
  quotecalc tables slc --country Brazil
  quotecalc tables labor-categories --labor-type "Machine Category"`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: tableListings,
	RunE:      runTables,
}

func init() {
	tablesCmd.Flags().StringVar(&tablesCountry, "country", "", "country for slc eligibility")
	tablesCmd.Flags().StringVar(&tablesLaborType, "labor-type", "", "labor type for labor-categories")
}

func runTables(cmd *cobra.Command, args []string) error {
	listing := "countries"
	if len(args) > 0 {
		listing = args[0]
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}
	store := engine.Store()
	catalog := lookup.Options(store, tablesCountry, tablesLaborType)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	switch listing {
	case "countries":
		for _, c := range catalog.Countries {
			er, err := lookup.ExchangeRate(store, c)
			rate := er.String()
			if err != nil {
				rate = "?"
			}
			fmt.Fprintf(tw, "%s\t%s\n", c, rate)
		}
	case "offerings":
		for _, o := range catalog.Offerings {
			fmt.Fprintf(tw, "%s\t%s\n", o.Name, o.L40)
		}
	case "risks":
		for _, r := range catalog.Risks {
			fmt.Fprintf(tw, "%s\t%s\n", r.Name, output.Percent(r.Contingency))
		}
	case "slc":
		printList(tw, catalog.SLC)
	case "labor-types":
		printList(tw, catalog.LaborTypes)
	case "labor-categories":
		printList(tw, catalog.LaborCategories)
	case "info":
		fmt.Fprintf(tw, "source\t%s\n", store.Source())
		fmt.Fprintf(tw, "loaded\t%s\n", store.LoadedAt().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(tw, "fingerprint\t%s\n", store.Fingerprint())
		fmt.Fprintf(tw, "countries\t%d\n", len(catalog.Countries))
	default:
		return fmt.Errorf("unknown listing %q, want one of %v", listing, tableListings)
	}
	return tw.Flush()
}

func printList(tw *tabwriter.Writer, values []string) {
	for _, v := range values {
		fmt.Fprintln(tw, v)
	}
}
