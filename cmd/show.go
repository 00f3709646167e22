package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioregistry"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registry"
	"github.com/spf13/cobra"
)

// registreeView joins a registree with its payments for output.
type registreeView struct {
	registree.Summary
	PaymentList []registree.Payment `json:"paymentList"`
}

// getShowCmd returns the show command.
func getShowCmd() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show REG_NUM",
		Short: "Show a registree and its pair partner",
		Long: `Show prints a registree, its pair partner if there is one,
their purchases, what they owe, and the payments they made.

Examples:
  convdb show 12
  convdb show 12 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: withErrorMessage(func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, format)
		}),
	}

	showCmd.Flags().StringVarP(&format, "format", "F", "text",
		"output format (text, json)")

	return showCmd
}

func runShow(cmd *cobra.Command, args []string, format string) error {
	if err := checkFormat(format, "text", "json"); err != nil {
		return err
	}
	regNum, err := parseRegNum(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, repo, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	views, err := pairViews(ctx, repo, regNum)
	if err != nil {
		return err
	}
	return writeViews(cmd.OutOrStdout(), views, format)
}

func pairViews(
	ctx context.Context,
	repo registry.Repository,
	regNum int,
) ([]registreeView, error) {
	sums, err := repo.Registrees(ctx, regNum)
	if err != nil {
		return nil, err
	}
	if len(sums) == 0 {
		return nil, ioregistry.NotFoundError(regNum)
	}

	res := make([]registreeView, 0, len(sums))
	for _, v := range sums {
		pays, err := repo.Payments(ctx, v.RegNum)
		if err != nil {
			return nil, err
		}
		res = append(res, registreeView{Summary: v, PaymentList: pays})
	}
	return res, nil
}

func writeViews(w io.Writer, views []registreeView, format string) error {
	if format == "json" {
		return writeJSON(w, views)
	}
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprint(w, summaryText(v.Summary, v.PaymentList)); err != nil {
			return err
		}
	}
	return nil
}
