package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/globalconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// outputFormat returns --output if set, otherwise the configured preference.
func outputFormat(cmd *cobra.Command, flagValue string, cfg *globalconfig.Config) (string, error) {
	format := cfg.Preferences.Output
	if cmd.Flags().Changed("output") {
		format = flagValue
	}
	if !slices.Contains(globalconfig.OutputFormats, format) {
		return "", fmt.Errorf("unsupported output format %q (want one of %s)",
			format, strings.Join(globalconfig.OutputFormats, ", "))
	}
	return format, nil
}

// writeStructured renders v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case globalconfig.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case globalconfig.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
