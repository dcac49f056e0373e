package main

import (
	"fmt"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/tui"
	"github.com/spf13/cobra"
)

// newBrowseCmd creates the browse subcommand
func newBrowseCmd(a *app) *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick an AMI interactively",
		Long: `Open an interactive table of the images matching the criteria, newest first.
Press enter to print the highlighted image ID, c to copy it to the clipboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := qf.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}

			records, err := a.client().List(cmd.Context(), q)
			if err != nil {
				return err
			}

			rec, ok, err := tui.Run(records)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			id, err := rec.ImageID()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	qf.register(cmd)

	return cmd
}
