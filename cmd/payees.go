package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/gnames/gnfmt"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/spf13/cobra"
)

// getPayeesCmd returns the payees command.
func getPayeesCmd() *cobra.Command {
	var format string

	payeesCmd := &cobra.Command{
		Use:   "payees",
		Short: "List payments of the prior convention",
		Long: `Payees prints the total paid by every active registree of
the prior convention.

Examples:
  convdb payees
  convdb payees --format csv > payees.csv`,
		Args: cobra.NoArgs,
		RunE: withErrorMessage(func(cmd *cobra.Command, args []string) error {
			return runPayees(cmd, format)
		}),
	}

	payeesCmd.Flags().StringVarP(&format, "format", "F", "text",
		"output format (text, csv)")

	return payeesCmd
}

func runPayees(cmd *cobra.Command, format string) error {
	if err := checkFormat(format, "text", "csv"); err != nil {
		return err
	}

	ctx := context.Background()
	op, repo, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	payees, err := repo.PriorYearPayees(ctx)
	if err != nil {
		return err
	}
	return writePayees(cmd.OutOrStdout(), sortedPayees(payees), format)
}

func sortedPayees(payees map[int]registree.Payee) []registree.Payee {
	keys := slices.Sorted(maps.Keys(payees))
	res := make([]registree.Payee, len(keys))
	for i, k := range keys {
		res[i] = payees[k]
	}
	return res
}

func writePayees(w io.Writer, payees []registree.Payee, format string) error {
	if format == "csv" {
		header := gnfmt.ToCSV([]string{"RegNum", "Name", "Total"}, ',')
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, v := range payees {
			if _, err := fmt.Fprintln(w, payeeRecord(v)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, v := range payees {
		_, err := fmt.Fprintf(w, "%4d  %-40s %12s\n", v.RegNum, v.Name, money(v.Total))
		if err != nil {
			return err
		}
	}
	return nil
}
