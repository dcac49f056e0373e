package main

import (
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/server"
	"github.com/spf13/cobra"
)

// newServeCmd creates the serve subcommand
func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve AMI lookups over HTTP",
		Long: `Start an HTTP service answering lookups. Each request fetches the locator
afresh; nothing is cached.

Endpoints:
  GET /healthcheck
  GET /v1/latest?region=&release=&release_number=&instance_type=&arch=
  GET /v1/images?region=&release=&release_number=&instance_type=&arch=`,
		Example: `  # Start server on default address :8080
  uami serve

  # Then
  curl 'http://localhost:8080/v1/latest?region=us-east-1&release=noble&arch=amd64'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := server.New(a.client(), a.logger)
			return s.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")

	return cmd
}
