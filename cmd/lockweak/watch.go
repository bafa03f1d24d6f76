package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lockweak/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <directory>",
	Short: "Re-run expansion whenever sources change",
	Long: `Watch expands the directory once, then again after every batch of changes.
Without --write it only reports diagnostics. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("write", false, "write results back to the source files")
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "wait this long after the last change before re-running")
	addDiagOutputFlags(watchCmd, "short")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	if st, err := os.Stat(dir); err != nil {
		return fmt.Errorf("watch: %w", err)
	} else if !st.IsDir() {
		return fmt.Errorf("watch: %s is not a directory", dir)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.cleanup()
	if s.cfg.Cache.Enabled {
		if err := s.enableCache(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stderr := cmd.ErrOrStderr()
	if !s.quiet {
		fmt.Fprintf(stderr, "watching %s (Ctrl+C to stop)\n", dir)
	}
	return driver.Watch(ctx, dir, s.opts, driver.WatchOptions{Debounce: debounce, Write: write}, func(r driver.WatchRun) {
		stamp := time.Now().Format("15:04:05")
		if len(r.Trigger) > 0 && !s.quiet {
			names := make([]string, len(r.Trigger))
			for i, p := range r.Trigger {
				names[i] = filepath.Base(p)
			}
			fmt.Fprintf(stderr, "[%s] change detected: %v\n", stamp, names)
		}
		if r.Result != nil {
			if err := out.print(stderr, os.Stderr, r.Result.Bag(), r.Result.FileSet, s); err != nil {
				fmt.Fprintf(stderr, "[%s] output error: %v\n", stamp, err)
			}
		}
		if r.Err != nil {
			fmt.Fprintf(stderr, "[%s] error: %v\n", stamp, r.Err)
			return
		}
		if s.quiet || r.Result == nil {
			return
		}
		changed := len(r.Result.Changed())
		if write {
			fmt.Fprintf(stderr, "[%s] %d file(s), %d changed, %d written\n", stamp, len(r.Result.Files), changed, r.Written)
		} else {
			fmt.Fprintf(stderr, "[%s] %d file(s), %d would change\n", stamp, len(r.Result.Files), changed)
		}
	})
}
