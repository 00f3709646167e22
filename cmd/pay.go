package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPayCmd returns the pay command.
func getPayCmd() *cobra.Command {
	var ts string

	payCmd := &cobra.Command{
		Use:   "pay REG_NUM AMOUNT",
		Short: "Record a payment",
		Long: `Pay records a payment made by a registree.

If the registree is paired, the amount is split evenly between both
members of the pair. Cents that cannot be split go to the first
member.

Examples:
  convdb pay 12 1285
  convdb pay 12 500.50 --time 2021-03-01T10:00:00+02:00`,
		Args: cobra.ExactArgs(2),
		RunE: withErrorMessage(func(cmd *cobra.Command, args []string) error {
			return runPay(cmd, args, ts)
		}),
	}

	payCmd.Flags().StringVarP(&ts, "time", "t", "",
		"time of the payment in RFC3339 format (default now)")

	return payCmd
}

func runPay(_ *cobra.Command, args []string, rawTime string) error {
	regNum, err := parseRegNum(args[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	ts, err := parseTime(rawTime)
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, repo, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	pays, err := repo.RecordPayment(ctx, regNum, amount, ts)
	if err != nil {
		return err
	}

	for _, v := range pays {
		gn.Info("Recorded <em>%s</em> for registree <em>%d</em>",
			money(v.Amount), v.RegNum)
	}
	return nil
}
