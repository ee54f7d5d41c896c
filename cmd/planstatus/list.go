package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

func newListCommand(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every eligible plan with its computed status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := app.module()
			if err != nil {
				return err
			}
			service, err := module.Plans()
			if err != nil {
				return err
			}
			results, err := service.Plan(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewTable(app.stdout)
			table.Header("Date", "Slug", "Status", "Superseded By", "Header", "Title")
			for _, result := range results {
				header := "no"
				if result.Action == interfaces.StampActionSkippedHeader {
					header = "yes"
				}
				if err := table.Append(
					result.Entry.Date,
					result.Entry.Slug,
					string(result.Status),
					result.SupersededBy,
					header,
					result.Title,
				); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
