package quote

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/types"
	"quotecalc/internal/logging"
)

// Fields that have a fallback policy. Each lookup that misses substitutes
// the value listed here and records a types.Fallback on the result.
const (
	FieldExchangeRate     = "exchange_rate"      // 1: price as if USD
	FieldUPLF             = "uplf"               // 0: service priced at zero
	FieldL40              = "l40"                // blank
	FieldContingency      = "contingency"        // 0
	FieldMonthlyLaborCost = "monthly_labor_cost" // 0: labor priced at zero
)

var (
	fallbackExchangeRate = decimal.NewFromInt(1)
	fallbackZero         = decimal.Zero
)

// fallbacks collects substitutions made while computing one quote
type fallbacks []types.Fallback

func (f *fallbacks) add(field, key, substitute string, cause error) {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	*f = append(*f, types.Fallback{
		Field:      field,
		Key:        key,
		Substitute: substitute,
		Reason:     reason,
	})
	logging.Fallback(field, key, substitute, cause)
}

func (f *fallbacks) dec(field, key string, substitute decimal.Decimal, cause error) decimal.Decimal {
	f.add(field, key, substitute.String(), cause)
	return substitute
}
