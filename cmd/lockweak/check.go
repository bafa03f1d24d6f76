package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lockweak/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Report diagnostics without printing or writing expansions",
	Long:  `Check parses and expands sources in memory and reports syntax errors and invalid @LockedWeakReference attachments. Exits with 1 on errors.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	addDiagOutputFlags(checkCmd, "pretty")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.cleanup()
	if cmd.Flags().Changed("jobs") {
		if s.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	res, err := driver.ExpandPath(cmd.Context(), args[0], s.opts)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	bag := res.Bag()
	if err := out.print(cmd.OutOrStdout(), os.Stdout, bag, res.FileSet, s); err != nil {
		return err
	}
	if bag.HasErrors() || (warningsAsErrors && bag.HasWarnings()) {
		return errDiagnostics
	}
	if !s.quiet && out.format != "json" && bag.Len() == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no problems in %d file(s)\n", len(res.Files))
	}
	return nil
}
