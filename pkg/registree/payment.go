package registree

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one recorded payment of a registree.
type Payment struct {
	RegNum    int             `json:"regNum"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
}
