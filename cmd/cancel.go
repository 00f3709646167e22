package cmd

import (
	"context"
	"slices"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCancelCmd returns the cancel command.
func getCancelCmd() *cobra.Command {
	var withPair bool

	cancelCmd := &cobra.Command{
		Use:   "cancel REG_NUM...",
		Short: "Cancel registrations",
		Long: `Cancel removes clubs, purchases and pairs of registrees and
marks them cancelled. Payments are kept.

Use --with-pair to cancel pair partners as well.

Examples:
  convdb cancel 12
  convdb cancel 12 14
  convdb cancel 12 --with-pair`,
		Args: cobra.MinimumNArgs(1),
		RunE: withErrorMessage(func(cmd *cobra.Command, args []string) error {
			return runCancel(cmd, args, withPair)
		}),
	}

	cancelCmd.Flags().BoolVarP(&withPair, "with-pair", "p", false,
		"cancel pair partners too")

	return cancelCmd
}

func runCancel(_ *cobra.Command, args []string, withPair bool) error {
	regNums, err := parseRegNums(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, repo, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if withPair {
		var all []int
		for _, v := range regNums {
			pair, err := repo.PairedRegNums(ctx, v)
			if err != nil {
				return err
			}
			all = append(all, pair...)
		}
		slices.Sort(all)
		regNums = slices.Compact(all)
	}

	if err = repo.CancelRegistration(ctx, regNums...); err != nil {
		return err
	}

	gn.Info("Cancelled registrations: <em>%v</em>", regNums)
	return nil
}
