package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-planstatus"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

func newStampCommand(app *cli) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Insert status headers into plans that lack one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := app.module(planstatus.WithStampReporter(func(_ context.Context, report *interfaces.StampReport) {
				printStampReport(app.stdout, report)
			}))
			if err != nil {
				return err
			}
			cfg := module.Config()
			return module.StampHandler().Execute(cmd.Context(), planstatus.StampDirectoryCommand{
				Directory: cfg.Plans.Dir,
				Cutoff:    cfg.Plans.Cutoff,
				DryRun:    dryRun,
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be stamped without writing")
	return cmd
}

func printStampReport(w io.Writer, report *interfaces.StampReport) {
	if report == nil {
		return
	}
	for _, result := range report.Results {
		switch result.Action {
		case interfaces.StampActionStamped, interfaces.StampActionWouldStamp:
			fmt.Fprintf(w, "%s %s (%s, superseded by %s)\n",
				actionLabel(result.Action), result.Entry.Name, result.Status, result.SupersededBy)
		}
	}

	verb := "stamped"
	if report.DryRun {
		verb = "would stamp"
	}
	fmt.Fprintf(w, "%s %d, skipped %d in %s (cutoff %s)\n",
		verb, report.Stamped, report.Skipped, report.Directory, report.Cutoff)
}

func actionLabel(action interfaces.StampAction) string {
	switch action {
	case interfaces.StampActionWouldStamp:
		return "would stamp"
	case interfaces.StampActionSkippedHeader:
		return "has header"
	case interfaces.StampActionSkippedEmpty:
		return "empty"
	default:
		return string(action)
	}
}
