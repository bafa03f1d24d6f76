package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lockweak/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show lockweak build information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit, build date and Go version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	info := version.Current()
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		color, err := parseSwitch("color", colorFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "lockweak %s\n", version.Colored(color.enabled(os.Stdout)))
		if full {
			fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
			fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
			fmt.Fprintf(out, "go:     %s\n", info.GoVersion)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
