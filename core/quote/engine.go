package quote

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quotecalc/core/lookup"
	"quotecalc/core/reference"
	"quotecalc/core/types"
	"quotecalc/internal/logging"
)

const (
	serviceFormula = "(unit_cost_usd + unit_cost_local / exchange_rate) * months * quantity * uplf"
	laborFormula   = "monthly_cost * hours * months"
)

// Options adjusts engine behaviour
type Options struct {
	// ApplyContingency folds the risk contingency into the total as
	// total * (1 + contingency). Off by default: contingency is reported
	// but not charged.
	ApplyContingency bool `json:"apply_contingency"`
}

// Engine prices quotes against one immutable reference store. It holds no
// per-quote state and is safe for concurrent use.
type Engine struct {
	store *reference.Store
	opts  Options
}

// NewEngine creates an engine over store
func NewEngine(store *reference.Store, opts Options) *Engine {
	return &Engine{store: store, opts: opts}
}

// Options returns the engine's options
func (e *Engine) Options() Options {
	return e.opts
}

// WithOptions returns an engine over the same store with opts
func (e *Engine) WithOptions(opts Options) *Engine {
	return &Engine{store: e.store, opts: opts}
}

// Store returns the reference store the engine prices from
func (e *Engine) Store() *reference.Store {
	return e.store
}

// Compute prices in. It never fails: unresolved selections are replaced by
// their fallback values and listed in Result.Fallbacks.
func (e *Engine) Compute(in Inputs) *Result {
	var fb fallbacks

	res := &Result{
		QuoteID:       in.QuoteID,
		Customer:      in.Customer,
		QuoteDate:     in.QuoteDate,
		Country:       in.Country,
		Currency:      in.Currency,
		CurrencyLabel: in.Currency.String(),
		Offering:      in.Service.Offering,
		SLC:           in.Service.SLC,
		Risk:          in.Risk,
		LaborType:     in.Labor.Type,
		LaborCategory: in.Labor.Category,
		Fingerprint:   e.store.Fingerprint(),
	}

	er, err := lookup.ExchangeRate(e.store, in.Country)
	if err != nil {
		er = fb.dec(FieldExchangeRate, in.Country, fallbackExchangeRate, err)
	}
	res.ExchangeRate = er

	l40, err := lookup.L40(e.store, in.Service.Offering)
	if err != nil {
		fb.add(FieldL40, in.Service.Offering, `""`, err)
	}
	res.L40 = l40

	if in.Risk != "" {
		c, err := lookup.Contingency(e.store, in.Risk)
		if err != nil {
			c = fb.dec(FieldContingency, in.Risk, fallbackZero, err)
		}
		res.Contingency = c
	}

	service := e.serviceLine(in, er, res, &fb)
	labor := e.laborLine(in, er, res, &fb)
	res.Lines = []types.CostLine{service, labor}
	res.ServiceCost = service.Amount
	res.LaborCost = labor.Amount

	subtotal := res.ServiceCost.Add(res.LaborCost)
	res.ContingencyAmount = subtotal.Mul(res.Contingency)
	res.Total = subtotal
	if e.opts.ApplyContingency {
		res.Total = subtotal.Add(res.ContingencyAmount)
		res.ContingencyApplied = true
	}

	res.Fallbacks = fb
	logging.Debug("quote computed",
		zap.String("quote_id", in.QuoteID),
		zap.String("country", in.Country),
		zap.String("currency", in.Currency.String()),
		zap.String("total", res.Total.StringFixed(2)),
		zap.Int("fallbacks", len(fb)),
	)
	return res
}

func (e *Engine) serviceLine(in Inputs, er decimal.Decimal, res *Result, fb *fallbacks) types.CostLine {
	svc := in.Service
	line := types.CostLine{
		ID:           "service",
		Label:        "Service",
		BaseCurrency: string(types.CurrencyUSD),
		Currency:     in.Currency,
		Lineage:      types.CostLineage{Formula: serviceFormula},
	}

	uplf, err := lookup.UPLF(e.store, in.Country, svc.SLC)
	if err != nil {
		uplf = fb.dec(FieldUPLF, svc.SLC, fallbackZero, err)
		line.Lineage.Assumptions = append(line.Lineage.Assumptions, "SLC not eligible or unknown, uplf 0")
	}
	res.UPLF = uplf

	months := svc.Period.Months()
	res.ServiceMonths = months

	base := svc.UnitCostUSD
	if er.IsZero() {
		line.Lineage.Assumptions = append(line.Lineage.Assumptions, "exchange rate is zero, local unit cost dropped")
	} else {
		base = base.Add(svc.UnitCostLocal.Div(er))
	}

	total := base.
		Mul(decimal.NewFromInt(int64(months))).
		Mul(decimal.NewFromInt(int64(svc.Quantity))).
		Mul(uplf)
	line.Base = total

	line.Amount = total
	if in.Currency == types.CurrencyLocal {
		line.Amount = total.Mul(er)
		line.Lineage.Formula += " * exchange_rate"
	}

	line.Lineage.Factors = map[string]string{
		"unit_cost_usd":   svc.UnitCostUSD.String(),
		"unit_cost_local": svc.UnitCostLocal.String(),
		"exchange_rate":   er.String(),
		"months":          strconv.Itoa(months),
		"quantity":        strconv.Itoa(svc.Quantity),
		"uplf":            uplf.String(),
	}
	return line
}

// laborLine prices labor. The labor tables hold local-currency amounts,
// so USD display divides by the exchange rate; service costs go the other
// way.
func (e *Engine) laborLine(in Inputs, er decimal.Decimal, res *Result, fb *fallbacks) types.CostLine {
	lab := in.Labor
	line := types.CostLine{
		ID:           "labor",
		Label:        "Labor",
		BaseCurrency: string(types.CurrencyLocal),
		Currency:     in.Currency,
		Lineage:      types.CostLineage{Formula: laborFormula},
	}

	route := lookup.RouteLabor(e.store, lab.Type)
	res.LaborTable = route.Kind

	months := lab.Period.Months()
	res.LaborMonths = months

	if !lab.HasLabor() {
		line.Lineage.Assumptions = append(line.Lineage.Assumptions, "no labor selected")
		line.Base = decimal.Zero
		line.Amount = decimal.Zero
		return line
	}

	monthly, _, err := lookup.MonthlyLaborCost(e.store, lab.Type, lab.Category, in.Country)
	if err != nil {
		monthly = fb.dec(FieldMonthlyLaborCost, lab.Category, fallbackZero, err)
	}
	res.MonthlyLaborCost = monthly

	total := monthly.
		Mul(decimal.NewFromInt(int64(lab.Hours))).
		Mul(decimal.NewFromInt(int64(months)))
	line.Base = total

	line.Amount = total
	if in.Currency == types.CurrencyUSD {
		if er.IsZero() {
			line.Lineage.Assumptions = append(line.Lineage.Assumptions, "exchange rate is zero, labor left undivided")
		} else {
			line.Amount = total.Div(er)
			line.Lineage.Formula += " / exchange_rate"
		}
	}

	line.Lineage.Factors = map[string]string{
		"monthly_cost":  monthly.String(),
		"hours":         strconv.Itoa(lab.Hours),
		"months":        strconv.Itoa(months),
		"exchange_rate": er.String(),
		"table":         string(route.Kind),
	}
	return line
}

// Result is the priced quote. It is derived from Inputs on every
// computation and never stored.
type Result struct {
	QuoteID   string             `json:"quote_id"`
	Customer  string             `json:"customer,omitempty"`
	QuoteDate time.Time          `json:"quote_date"`
	Country   string             `json:"country"`
	Currency  types.CurrencyMode `json:"currency"`

	// CurrencyLabel is the label totals are rendered with
	CurrencyLabel string `json:"currency_label"`

	// ExchangeRate is the rate in effect, local units per USD
	ExchangeRate decimal.Decimal `json:"exchange_rate"`

	Offering      string          `json:"offering"`
	L40           string          `json:"l40,omitempty"`
	SLC           string          `json:"slc"`
	UPLF          decimal.Decimal `json:"uplf"`
	ServiceMonths int             `json:"service_months"`

	LaborType        string          `json:"labor_type,omitempty"`
	LaborCategory    string          `json:"labor_category,omitempty"`
	LaborTable       reference.Kind  `json:"labor_table"`
	MonthlyLaborCost decimal.Decimal `json:"monthly_labor_cost"`
	LaborMonths      int             `json:"labor_months"`

	Risk               string          `json:"risk,omitempty"`
	Contingency        decimal.Decimal `json:"contingency"`
	ContingencyAmount  decimal.Decimal `json:"contingency_amount"`
	ContingencyApplied bool            `json:"contingency_applied"`

	ServiceCost decimal.Decimal `json:"service_cost"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	Total       decimal.Decimal `json:"total"`

	Lines     []types.CostLine `json:"lines"`
	Fallbacks []types.Fallback `json:"fallbacks,omitempty"`

	// Fingerprint identifies the reference tables the quote was priced from
	Fingerprint string `json:"tables_fingerprint"`
}
