package lookup

import (
	"strings"

	"github.com/shopspring/decimal"

	"quotecalc/core/normalize"
	"quotecalc/core/reference"
)

// Catalog is every selectable option for a given country and labor type
type Catalog struct {
	Countries       []string         `json:"countries"`
	Offerings       []OfferingOption `json:"offerings"`
	Risks           []RiskOption     `json:"risks"`
	SLC             []string         `json:"slc"`
	LaborTypes      []string         `json:"labor_types"`
	LaborCategories []string         `json:"labor_categories"`
}

// OfferingOption is an offering with its display-only L40 code
type OfferingOption struct {
	Name string `json:"name"`
	L40  string `json:"l40"`
}

// RiskOption is a risk level with its contingency fraction
type RiskOption struct {
	Name        string          `json:"name"`
	Contingency decimal.Decimal `json:"contingency"`
}

// Options lists what can be selected once country and laborType are known.
// Either may be empty; an empty laborType lists band categories.
func Options(s *reference.Store, country, laborType string) Catalog {
	c := Catalog{
		Countries:       s.CountryNames(),
		SLC:             EligibleSLC(s, country),
		LaborTypes:      s.LaborTypes.Values(reference.ColMCBR),
		LaborCategories: LaborCategories(s, laborType),
	}

	nameCol, _ := s.Offerings.Column(reference.ColOffering)
	l40Col, _ := s.Offerings.Column(reference.ColL40)
	s.Offerings.Each(func(i int) bool {
		if name := strings.TrimSpace(s.Offerings.Cell(i, nameCol)); name != "" {
			c.Offerings = append(c.Offerings, OfferingOption{
				Name: name,
				L40:  strings.TrimSpace(s.Offerings.Cell(i, l40Col)),
			})
		}
		return true
	})

	riskCol, _ := s.Risks.Column(reference.ColRisk)
	contCol, _ := s.Risks.Column(reference.ColContingency)
	s.Risks.Each(func(i int) bool {
		if name := strings.TrimSpace(s.Risks.Cell(i, riskCol)); name != "" {
			c.Risks = append(c.Risks, RiskOption{
				Name:        name,
				Contingency: normalize.Percentage(s.Risks.Cell(i, contCol)),
			})
		}
		return true
	})

	return c
}
