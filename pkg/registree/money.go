package registree

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds an amount to cents using banker's rounding.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// SplitAmount rounds amount to cents and divides it into n shares that
// add up to the rounded amount. Cents that cannot be split evenly go to
// the first shares. Returns nil if n < 1.
func SplitAmount(amount decimal.Decimal, n int) []decimal.Decimal {
	if n < 1 {
		return nil
	}
	cents := Round2(amount).Shift(2).IntPart()
	base := cents / int64(n)
	rem := cents % int64(n)

	step := int64(1)
	if rem < 0 {
		step, rem = -1, -rem
	}

	res := make([]decimal.Decimal, n)
	for i := range res {
		c := base
		if int64(i) < rem {
			c += step
		}
		res[i] = decimal.New(c, -2)
	}
	return res
}
