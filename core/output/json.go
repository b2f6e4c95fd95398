package output

import (
	"encoding/json"
	"io"

	"quotecalc/core/quote"
)

// JSONFormatter renders the full result as JSON
type JSONFormatter struct {
	Indent bool
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes res as JSON
func (f *JSONFormatter) Render(w io.Writer, res *quote.Result) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}
