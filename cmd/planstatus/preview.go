package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-planstatus"
	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

func newPreviewCommand(app *cli) *cobra.Command {
	var (
		file       string
		renderHTML bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a plan as it would look once stamped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}

			module, err := app.module(planstatus.WithPreviewReporter(func(_ context.Context, preview *interfaces.PlanPreview) {
				if !preview.Changed {
					fmt.Fprintf(app.stderr, "%s already carries a status header\n", preview.Result.Entry.Name)
				}
				if renderHTML {
					fmt.Fprint(app.stdout, string(preview.HTML))
					return
				}
				fmt.Fprint(app.stdout, string(preview.Markdown))
			}))
			if err != nil {
				return err
			}
			cfg := module.Config()
			return module.PreviewHandler().Execute(cmd.Context(), planstatus.PreviewPlanCommand{
				Directory: cfg.Plans.Dir,
				Cutoff:    cfg.Plans.Cutoff,
				File:      file,
				HTML:      renderHTML,
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "plan filename to preview")
	cmd.Flags().BoolVar(&renderHTML, "html", false, "render the stamped plan to HTML")
	return cmd
}
