package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iofs"
	"github.com/spf13/cobra"
)

// getUploadCmd returns the upload command.
func getUploadCmd() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload registrees from a YAML file",
		Long: `Upload stores registrees listed in a YAML file.

A registree with a registration number replaces the stored registree
with the same number together with its club, partner program and
purchases. Payments and pairs are kept. A registree without a
registration number gets the next free one.

Examples:
  convdb upload registrees.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: withErrorMessage(runUpload),
	}

	return uploadCmd
}

func runUpload(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	regs, err := iofs.LoadRegistrations(args[0])
	if err != nil {
		return err
	}
	if len(regs) == 0 {
		gn.Warn("No registrees found in <em>%s</em>", args[0])
		return nil
	}

	op, repo, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	start := time.Now()
	bar := pb.Full.Start(len(regs))
	bar.Set("prefix", "Uploading registrees: ")
	bar.Set(pb.CleanOnFinish, true)

	var assigned []int
	for _, v := range regs {
		regNum, err := repo.UploadRegistree(ctx, v)
		if err != nil {
			bar.Finish()
			return err
		}
		if v.RegNum == 0 {
			assigned = append(assigned, regNum)
		}
		bar.Increment()
	}
	bar.Finish()

	duration := time.Since(start)
	slog.Info("Registrees uploaded",
		"file", args[0],
		"count", len(regs),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Uploaded <em>%s</em> registrees in %s",
		humanize.Comma(int64(len(regs))),
		gnfmt.TimeString(duration.Seconds()))
	for _, v := range assigned {
		gn.Info("Assigned registration number <em>%d</em>", v)
	}
	return nil
}
