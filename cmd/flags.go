package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// withErrorMessage prints user-facing message of an error returned by
// a command.
func withErrorMessage(
	fn func(cmd *cobra.Command, args []string) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			gn.PrintErrorMessage(err)
		}
		return err
	}
}

func parseRegNum(s string) (int, error) {
	res, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || res <= 0 {
		return 0, fmt.Errorf("'%s' is not a registration number", s)
	}
	return res, nil
}

func parseRegNums(ss []string) ([]int, error) {
	res := make([]int, 0, len(ss))
	for _, v := range ss {
		regNum, err := parseRegNum(v)
		if err != nil {
			return nil, err
		}
		res = append(res, regNum)
	}
	return res, nil
}

// parseAmount reads a money amount with at most two decimal places.
func parseAmount(s string) (decimal.Decimal, error) {
	res, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not an amount: %w", s, err)
	}
	if res.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("'%s' has fractions of cents", s)
	}
	if res.IsZero() {
		return decimal.Zero, fmt.Errorf("amount cannot be zero")
	}
	return res, nil
}

// parseTime reads an RFC3339 timestamp. An empty string means now.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	res, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' is not an RFC3339 time: %w", s, err)
	}
	return res, nil
}

func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unknown format '%s', use one of %s",
		format, strings.Join(allowed, ", "))
}
