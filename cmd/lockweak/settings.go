package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lockweak/internal/config"
	"lockweak/internal/driver"
	"lockweak/internal/version"
)

// settings: всё, что нужно подкомандам после разбора флагов и конфига.
type settings struct {
	cfg            config.Config
	opts           driver.Options
	quiet          bool
	timings        bool
	maxDiagnostics int
	color          switchMode
	cleanup        func()
}

// loadSettings merges lockweak.toml (if any) with the global flags.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	color, err := parseSwitch("color", colorMode)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath, ".", version.Version)
	if err != nil {
		return nil, err
	}

	session, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	tracer, stopTracing, err := setupTracing(cmd)
	if err != nil {
		_ = session.Stop()
		return nil, err
	}
	cleanup := func() {
		stopTracing()
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}

	opts := cfg.DriverOptions()
	opts.MaxDiagnostics = maxDiagnostics
	opts.Timings = timings
	opts.Tracer = tracer

	return &settings{
		cfg:            cfg,
		opts:           opts,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		color:          color,
		cleanup:        cleanup,
	}, nil
}

// enableCache opens the disk cache from [cache] or the per-user cache dir.
func (s *settings) enableCache() error {
	var (
		c   *driver.DiskCache
		err error
	)
	if dir := s.cfg.CacheDir(); dir != "" {
		c, err = driver.NewDiskCache(dir)
	} else {
		c, err = driver.OpenDiskCache("lockweak")
	}
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	s.opts.Cache = c
	return nil
}

func (s *settings) useColor(f *os.File) bool { return s.color.enabled(f) }
