// Package registree contains the pure domain of convention registration:
// unit costs, the display-ready Summary of an attendee, the Registration
// request used for uploads, and money helpers. It does no I/O.
package registree

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit costs of purchase categories, in currency units.
const (
	FullRegCost    = 1285
	BanquetCost    = 500
	ConventionCost = 400
	ThemeCost      = 450
	PinCost        = 55
)

// Quantities holds the number of items bought in every purchase
// category. Missing purchases are zero.
type Quantities struct {
	FullRegs    int `json:"fullRegs"    validate:"gte=0"`
	Banquets    int `json:"banquets"    validate:"gte=0"`
	Conventions int `json:"conventions" validate:"gte=0"`
	Themes      int `json:"themes"      validate:"gte=0"`
	Pins        int `json:"pins"        validate:"gte=0"`
}

// Cost returns the total price of the quantities.
func (q Quantities) Cost() decimal.Decimal {
	items := []struct{ qty, cost int }{
		{q.FullRegs, FullRegCost},
		{q.Banquets, BanquetCost},
		{q.Conventions, ConventionCost},
		{q.Themes, ThemeCost},
		{q.Pins, PinCost},
	}
	res := decimal.Zero
	for _, v := range items {
		res = res.Add(decimal.NewFromInt(int64(v.qty * v.cost)))
	}
	return res
}

// SummaryParams are the raw inputs of a Summary.
type SummaryParams struct {
	RegNum     int    `validate:"gt=0"`
	FirstNames string `validate:"notblank"`
	LastName   string `validate:"notblank"`
	Cell       string
	// Email is not checked, stored rows may hold any text.
	Email  string
	IsLion bool
	// Club is empty for non-lions and for lions without a club row.
	Club  string
	Title string
	Quantities
	// Payments is the sum of all payments of the registree.
	Payments decimal.Decimal `validate:"-"`
}

// Summary is a display-ready record of a registree with its purchases
// and payments. It is built by NewSummary and treated as a value.
type Summary struct {
	RegNum     int    `json:"regNum"`
	FirstNames string `json:"firstNames"`
	LastName   string `json:"lastName"`
	Cell       string `json:"cell"`
	Email      string `json:"email"`
	IsLion     bool   `json:"isLion"`
	Club       string `json:"club,omitempty"`
	Title      string `json:"title,omitempty"`
	Quantities
	Payments decimal.Decimal `json:"payments"`

	// TitledFirstNames is the title followed by the trimmed first names.
	TitledFirstNames string `json:"titledFirstNames"`
	// Owed is the total cost of all purchases.
	Owed decimal.Decimal `json:"owed"`
	// PaidInFull is true when Payments cover Owed.
	PaidInFull bool `json:"paidInFull"`
}

// NewSummary validates required identity fields and computes derived
// fields. Returns ValidationError if RegNum, FirstNames or LastName
// are missing, or if any quantity is negative.
func NewSummary(p SummaryParams) (Summary, error) {
	if err := validate.Struct(p); err != nil {
		return Summary{}, ValidationError(p.RegNum, err)
	}

	res := Summary{
		RegNum:     p.RegNum,
		FirstNames: p.FirstNames,
		LastName:   p.LastName,
		Cell:       p.Cell,
		Email:      p.Email,
		IsLion:     p.IsLion,
		Club:       p.Club,
		Title:      p.Title,
		Quantities: p.Quantities,
		Payments:   p.Payments,
	}
	res.TitledFirstNames = TitledFirstNames(p.Title, p.FirstNames)
	res.Owed = p.Quantities.Cost()
	res.PaidInFull = res.Payments.GreaterThanOrEqual(res.Owed)
	return res, nil
}

// FullName returns titled first names followed by the last name.
func (s Summary) FullName() string {
	return s.TitledFirstNames + " " + strings.TrimSpace(s.LastName)
}

// Outstanding returns the amount still to be paid, never negative.
func (s Summary) Outstanding() decimal.Decimal {
	res := s.Owed.Sub(s.Payments)
	if res.IsNegative() {
		return decimal.Zero
	}
	return res
}

// TitledFirstNames prefixes trimmed first names with a title, if
// there is one.
func TitledFirstNames(title, firstNames string) string {
	first := strings.TrimSpace(firstNames)
	title = strings.TrimSpace(title)
	if title == "" {
		return first
	}
	return title + " " + first
}
