package quote

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotecalc/core/duration"
	"quotecalc/core/normalize"
	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
)

// Draft is a quote as typed by a user: dates, currency and amounts are
// still text. Both the HTTP API and quote files decode into a Draft.
type Draft struct {
	QuoteID  string       `json:"quote_id,omitempty"`
	Customer string       `json:"customer,omitempty"`
	Date     string       `json:"date,omitempty"`
	Country  string       `json:"country"`
	Currency string       `json:"currency,omitempty"`
	Risk     string       `json:"risk,omitempty"`
	Service  ServiceDraft `json:"service"`
	Labor    LaborDraft   `json:"labor"`
}

// ServiceDraft is the text form of ServiceInputs
type ServiceDraft struct {
	Offering      string `json:"offering"`
	Quantity      int    `json:"quantity"`
	SLC           string `json:"slc"`
	Start         string `json:"start"`
	End           string `json:"end"`
	UnitCostUSD   string `json:"unit_cost_usd,omitempty"`
	UnitCostLocal string `json:"unit_cost_local,omitempty"`
}

// LaborDraft is the text form of LaborInputs
type LaborDraft struct {
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
	Hours    int    `json:"hours,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

// Inputs parses d. Every malformed field is reported in one INPUT_ERROR.
// Blank fields stay zero for WithDefaults and Validate to handle.
func (d Draft) Inputs() (Inputs, error) {
	p := &draftParser{}

	in := Inputs{
		QuoteID:   strings.TrimSpace(d.QuoteID),
		Customer:  strings.TrimSpace(d.Customer),
		QuoteDate: p.date("date", d.Date),
		Country:   strings.TrimSpace(d.Country),
		Risk:      strings.TrimSpace(d.Risk),
		Service: ServiceInputs{
			Offering: strings.TrimSpace(d.Service.Offering),
			Quantity: d.Service.Quantity,
			SLC:      strings.TrimSpace(d.Service.SLC),
			Period: duration.Range{
				Start: p.date("service start", d.Service.Start),
				End:   p.date("service end", d.Service.End),
			},
			UnitCostUSD:   p.amount("unit_cost_usd", d.Service.UnitCostUSD),
			UnitCostLocal: p.amount("unit_cost_local", d.Service.UnitCostLocal),
		},
		Labor: LaborInputs{
			Type:     strings.TrimSpace(d.Labor.Type),
			Category: strings.TrimSpace(d.Labor.Category),
			Hours:    d.Labor.Hours,
			Period: duration.Range{
				Start: p.date("labor start", d.Labor.Start),
				End:   p.date("labor end", d.Labor.End),
			},
		},
	}

	if c := strings.TrimSpace(d.Currency); c != "" {
		mode, err := types.ParseCurrencyMode(c)
		if err != nil {
			p.fail(err.Error())
		}
		in.Currency = mode
	}

	if len(p.problems) > 0 {
		return Inputs{}, qerrors.Input(strings.Join(p.problems, "; ")).WithContext("problems", p.problems)
	}
	return in, nil
}

type draftParser struct {
	problems []string
}

func (p *draftParser) fail(msg string) {
	p.problems = append(p.problems, msg)
}

func (p *draftParser) date(field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := duration.ParseDate(raw)
	if err != nil {
		p.fail(field + ": " + err.Error())
	}
	return t
}

func (p *draftParser) amount(field, raw string) decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero
	}
	if strings.ContainsAny(normalize.Clean(raw), "eE") {
		p.fail(field + ": " + raw + " must be written without an exponent")
		return decimal.Zero
	}
	v, ok := normalize.Parse(raw)
	if !ok {
		p.fail(field + ": " + raw + " is not a number")
	}
	return v
}
