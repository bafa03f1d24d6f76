package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"lockweak/internal/driver"
	"lockweak/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply available fixes to a source file or directory",
	Long:  "Run expansion diagnostics and apply their fixes, e.g. removing @LockedWeakReference from non-class declarations.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed sources instead of writing them")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только в пределах файла
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.cleanup()

	res, err := driver.ExpandPath(cmd.Context(), targetPath, s.opts)
	if err != nil {
		return fmt.Errorf("fix: expand failed: %w", err)
	}

	applied, applyErr := fix.Apply(res.FileSet, res.Bag().Items(), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		InMemory: dryRun,
	})
	if err := printApplyResult(cmd.ErrOrStderr(), applied); err != nil {
		return err
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		if !s.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no fixes available")
		}
		return nil
	}
	if applyErr != nil {
		return fmt.Errorf("fix: %w", applyErr)
	}
	if dryRun {
		for _, id := range slices.Sorted(maps.Keys(applied.Contents)) {
			fmt.Fprintf(cmd.OutOrStdout(), "// ===== %s =====\n", res.FileSet.Get(id).Path)
			if _, err := cmd.OutOrStdout().Write(applied.Contents[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

// printApplyResult: сводка в stderr, по секции на applied, updated и skipped.
func printApplyResult(w io.Writer, res *fix.ApplyResult) error {
	if res == nil {
		return nil
	}
	var sb strings.Builder
	section := func(title string, n int, line func(i int) string) {
		if n == 0 {
			return
		}
		sb.WriteString(title + "\n")
		for i := range n {
			sb.WriteString("  " + line(i) + "\n")
		}
	}
	section(fmt.Sprintf("Applied %d fix(es):", len(res.Applied)), len(res.Applied), func(i int) string {
		a := res.Applied[i]
		return fmt.Sprintf("%s [%s] at %s (%d edits, %s)", a.Title, a.ID, orDefault(a.PrimaryPath, "(unknown location)"), a.EditCount, a.Applicability)
	})
	section("Updated files:", len(res.FileChanges), func(i int) string {
		return fmt.Sprintf("%s (%d edits)", res.FileChanges[i].Path, res.FileChanges[i].EditCount)
	})
	section("Skipped fixes:", len(res.Skipped), func(i int) string {
		sk := res.Skipped[i]
		return fmt.Sprintf("[%s] %s: %s", orDefault(sk.ID, "(unnamed)"), sk.Title, sk.Reason)
	})
	_, err := io.WriteString(w, sb.String())
	return err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
