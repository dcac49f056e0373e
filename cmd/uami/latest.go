package main

import (
	"fmt"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/globalconfig"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/server"
	"github.com/spf13/cobra"
)

// newLatestCmd creates the latest subcommand
func newLatestCmd(a *app) *cobra.Command {
	var qf queryFlags
	var output string
	var copyID bool

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the newest AMI matching the criteria",
		Long: `Fetch the Ubuntu cloud image locator, keep the rows matching the criteria
and print the image ID of the most recently published one.`,
		Example: `  # Newest bionic amd64 EBS-SSD image in us-east-1
  uami latest --region us-east-1 --release bionic --instance-type hvm:ebs-ssd --arch amd64

  # Full record as JSON, any architecture
  uami latest -r eu-west-1 -n noble --arch "" -o json`,
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

			rec, err := a.client().Latest(cmd.Context(), q)
			if err != nil {
				return err
			}
			id, err := rec.ImageID()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == globalconfig.OutputText {
				fmt.Fprintln(out, id)
			} else if err := writeStructured(out, format, server.ImageResponse{ImageID: id, Record: rec}); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			if !cmd.Flags().Changed("copy") {
				copyID = a.cfg.Preferences.CopyToClipboard
			}
			if copyID {
				if err := a.writeClipboard(id); err != nil {
					a.logger.Warn("Failed to copy image ID to clipboard", "image_id", id, "err", err)
				} else {
					a.logger.Debug("Copied image ID to clipboard", "image_id", id)
				}
			}
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", globalconfig.OutputText, "Output format (text, yaml, json)")
	cmd.Flags().BoolVar(&copyID, "copy", false, "Copy the image ID to the clipboard")

	return cmd
}
