// Package main provides the uami CLI for locating Ubuntu EC2 images.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/fang"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/globalconfig"
	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	verbose bool

	cfg    *globalconfig.Config
	logger *slog.Logger

	// httpClient overrides the lookup client's transport; nil uses the default.
	httpClient *http.Client
	// writeClipboard is clipboard.WriteAll outside of tests.
	writeClipboard func(string) error
}

// newRootCmd creates the root command for uami
func newRootCmd() *cobra.Command {
	return newRootCmdWithApp(&app{writeClipboard: clipboard.WriteAll})
}

func newRootCmdWithApp(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uami",
		Short: "Ubuntu AMI locator",
		Long: `uami finds the most recent Ubuntu EC2 image (AMI) for a region using the
Ubuntu cloud image locator at cloud-images.ubuntu.com.

Lookups can be narrowed by release name, release number, instance type and
architecture. Defaults come from ~/.config/uami/config.yaml and UAMI_*
environment variables (a .env file in the working directory is loaded too).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newLatestCmd(a),
		newListCmd(a),
		newBrowseCmd(a),
		newServeCmd(a),
		newConfigCmd(),
	)

	return rootCmd
}

// setup loads .env, the config file and environment overrides, and builds the logger.
func (a *app) setup(logOut io.Writer) error {
	globalconfig.LoadDotEnv()

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	cfg, err := globalconfig.LoadOrCreate()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	a.cfg = cfg

	return nil
}

// client builds a lookup client for the current invocation.
func (a *app) client() *ami.Client {
	opts := []ami.Option{ami.WithLogger(a.logger)}
	if a.httpClient != nil {
		opts = append(opts, ami.WithHTTPClient(a.httpClient))
	}
	return ami.NewClient(opts...)
}
