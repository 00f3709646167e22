package registree

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payee is a registree of the prior convention with the total amount
// they paid.
type Payee struct {
	RegNum int
	// Name is "Last, First".
	Name  string
	Total decimal.Decimal
}

// NewPayee creates a Payee with a "Last, First" name.
func NewPayee(regNum int, firstNames, lastName string, total decimal.Decimal) Payee {
	return Payee{
		RegNum: regNum,
		Name: strings.TrimSpace(lastName) + ", " +
			strings.TrimSpace(firstNames),
		Total: total,
	}
}
