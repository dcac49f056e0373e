package main

import (
	"fmt"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/globalconfig"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/server"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// newListCmd creates the list subcommand
func newListCmd(a *app) *cobra.Command {
	var qf queryFlags
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every AMI matching the criteria",
		Long: `List all locator rows matching the criteria, oldest first. The last row is
the one 'uami latest' would pick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := qf.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, output, a.cfg)
			if err != nil {
				return err
			}

			records, err := a.client().List(cmd.Context(), q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != globalconfig.OutputText {
				images := lo.Map(records, func(rec ami.Record, _ int) server.ImageResponse {
					id, _ := rec.ImageID()
					return server.ImageResponse{ImageID: id, Record: rec}
				})
				return writeStructured(out, format, server.ListResponse{Images: images})
			}

			if len(records) == 0 {
				fmt.Fprintln(out, tui.DimStyle.Render("No images match the query."))
				return nil
			}
			fmt.Fprintln(out, tui.RenderTable(records))
			fmt.Fprintln(out, tui.DimStyle.Render(fmt.Sprintf("%d images", len(records))))
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", globalconfig.OutputText, "Output format (text, yaml, json)")

	return cmd
}
