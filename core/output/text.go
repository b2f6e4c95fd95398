package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"quotecalc/core/quote"
)

// TextFormatter renders a quote as an aligned text summary
type TextFormatter struct {
	opts RenderOptions
}

// Format returns the format type
func (f *TextFormatter) Format() Format {
	return FormatCLI
}

// Render writes res as text
func (f *TextFormatter) Render(w io.Writer, res *quote.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	section(tw, "", headerFields(res))
	section(tw, "Service", serviceFields(res))
	if labor := laborFields(res); labor != nil {
		section(tw, "Labor", labor)
	}
	if f.opts.ShowLineage {
		for _, line := range res.Lines {
			fmt.Fprintf(tw, "\n%s lineage\n", line.Label)
			fmt.Fprintf(tw, "  formula\t%s\n", line.Lineage.Formula)
			keys := make([]string, 0, len(line.Lineage.Factors))
			for k := range line.Lineage.Factors {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(tw, "  %s\t%s\n", k, line.Lineage.Factors[k])
			}
			for _, a := range line.Lineage.Assumptions {
				fmt.Fprintf(tw, "  assumption\t%s\n", a)
			}
		}
	}
	section(tw, "Totals", totalFields(res))

	if len(res.Fallbacks) > 0 {
		fmt.Fprintln(tw, "\nWarnings")
		for _, fb := range res.Fallbacks {
			fmt.Fprintf(tw, "  ! %s\n", fb.String())
		}
	}

	return tw.Flush()
}

func section(w io.Writer, title string, fields []field) {
	if title != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	}
	for _, fl := range fields {
		fmt.Fprintf(w, "%s\t%s\n", fl.Label, fl.Value)
	}
}
