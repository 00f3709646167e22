package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// getListCmd returns the list command.
func getListCmd() *cobra.Command {
	var (
		format  string
		regNums []string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active registrees",
		Long: `List prints all active registrees with what they still owe.

Examples:
  convdb list
  convdb list --reg-nums 1,2,5
  convdb list --format json`,
		Args: cobra.NoArgs,
		RunE: withErrorMessage(func(cmd *cobra.Command, args []string) error {
			return runList(cmd, regNums, format)
		}),
	}

	listCmd.Flags().StringVarP(&format, "format", "F", "text",
		"output format (text, json)")
	listCmd.Flags().StringSliceVarP(&regNums, "reg-nums", "r", nil,
		"list only these registration numbers")

	return listCmd
}

func runList(cmd *cobra.Command, rawRegNums []string, format string) error {
	if err := checkFormat(format, "text", "json"); err != nil {
		return err
	}
	regNums, err := parseRegNums(rawRegNums)
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, repo, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	sums, err := repo.AllRegistrees(ctx, regNums...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(w, sums)
	}
	return writeList(w, sums)
}

func writeList(w io.Writer, sums []registree.Summary) error {
	owed := decimal.Zero
	paid := decimal.Zero
	for _, v := range sums {
		if _, err := fmt.Fprintln(w, summaryLine(v)); err != nil {
			return err
		}
		owed = owed.Add(v.Owed)
		paid = paid.Add(v.Payments)
	}
	_, err := fmt.Fprintf(w, "\n%s registrees, owed %s, paid %s\n",
		humanize.Comma(int64(len(sums))), money(owed), money(paid))
	return err
}
