package output

import (
	"strconv"

	"quotecalc/core/duration"
	"quotecalc/core/quote"
)

// field is one label/value pair of a rendered quote
type field struct {
	Label string
	Value string
}

func headerFields(res *quote.Result) []field {
	fields := []field{
		{"Quote", res.QuoteID},
		{"Date", res.QuoteDate.Format(duration.DateLayout)},
	}
	if res.Customer != "" {
		fields = append(fields, field{"Customer", res.Customer})
	}
	return append(fields,
		field{"Country", res.Country},
		field{"Currency", res.CurrencyLabel},
		field{"Exchange rate", res.ExchangeRate.String()},
	)
}

func serviceFields(res *quote.Result) []field {
	fields := []field{{"Offering", res.Offering}}
	if res.L40 != "" {
		fields = append(fields, field{"L40", res.L40})
	}
	return append(fields,
		field{"SLC", res.SLC},
		field{"UPLF", res.UPLF.String()},
		field{"Months", strconv.Itoa(res.ServiceMonths)},
	)
}

func laborFields(res *quote.Result) []field {
	if res.LaborCategory == "" {
		return nil
	}
	return []field{
		{"Labor type", res.LaborType},
		{"Category", res.LaborCategory},
		{"Table", string(res.LaborTable)},
		{"Monthly cost", Money(res.MonthlyLaborCost)},
		{"Months", strconv.Itoa(res.LaborMonths)},
	}
}

func totalFields(res *quote.Result) []field {
	fields := []field{
		{"Service cost", Money(res.ServiceCost)},
		{"Labor cost", Money(res.LaborCost)},
	}
	if res.Risk != "" {
		label := "Contingency " + Percent(res.Contingency)
		if !res.ContingencyApplied {
			label += " (not charged)"
		}
		fields = append(fields, field{label, Money(res.ContingencyAmount)})
	}
	return append(fields, field{"Total " + res.CurrencyLabel, Money(res.Total)})
}
