package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPairCmd returns the pair command.
func getPairCmd() *cobra.Command {
	pairCmd := &cobra.Command{
		Use:   "pair FIRST SECOND",
		Short: "Pair two registrees",
		Long: `Pair links two registrees that pay together. Payments made by
either of them are split between both.

A registree can be the first member of one pair only. Pairing it again
replaces the previous partner.

Examples:
  convdb pair 12 13`,
		Args: cobra.ExactArgs(2),
		RunE: withErrorMessage(runPair),
	}

	return pairCmd
}

func runPair(_ *cobra.Command, args []string) error {
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

	if err = repo.PairRegistrees(ctx, regNums[0], regNums[1]); err != nil {
		return err
	}

	gn.Info("Paired registrees <em>%d</em> and <em>%d</em>",
		regNums[0], regNums[1])
	return nil
}
