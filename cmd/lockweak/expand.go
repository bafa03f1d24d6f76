package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lockweak/internal/driver"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file|directory>",
	Short: "Expand @LockedWeakReference in a file or directory",
	Long: `Expand prints the rewritten sources to stdout. With --write the files are
updated in place; files with errors are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("write", false, "write results back to the source files")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto, overrides [expand].jobs)")
	expandCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	expandCmd.Flags().Bool("cache", false, "reuse expansion results from the disk cache")
	addDiagOutputFlags(expandCmd, "pretty")
}

func runExpand(cmd *cobra.Command, args []string) error {
	target := args[0]

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
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
	if useCache || s.cfg.Cache.Enabled {
		if err := s.enableCache(); err != nil {
			return err
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}

	started := time.Now()
	var res *driver.Result
	if info.IsDir() && shouldUseTUI(mode, s.quiet) {
		files, listErr := driver.ListSources(target, s.opts.Extensions, s.opts.Exclude)
		if listErr != nil {
			return fmt.Errorf("expand: %w", listErr)
		}
		res, err = runExpandDirWithUI(cmd.Context(), "lockweak expand "+target, target, files, s.opts)
	} else {
		res, err = driver.ExpandPath(cmd.Context(), target, s.opts)
	}
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}

	if err := out.print(os.Stderr, os.Stderr, res.Bag(), res.FileSet, s); err != nil {
		return err
	}

	if write {
		n, err := driver.WriteResults(res, nil)
		if err != nil {
			return fmt.Errorf("expand: %w", err)
		}
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d file(s)\n", n)
		}
	} else if err := printExpanded(cmd.OutOrStdout(), res, !info.IsDir()); err != nil {
		return err
	}

	if s.timings {
		printRunSummary(cmd.ErrOrStderr(), res, time.Since(started))
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}
