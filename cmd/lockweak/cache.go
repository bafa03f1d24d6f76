package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the expansion cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the cache lives and how much it holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCache(cmd)
		if err != nil {
			return err
		}
		defer s.cleanup()
		info, err := s.opts.Cache.Info()
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dir: %s\nentries: %d\nsize: %d bytes\n", s.opts.Cache.Dir(), info.Entries, info.Bytes)
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached expansion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCache(cmd)
		if err != nil {
			return err
		}
		defer s.cleanup()
		if err := s.opts.Cache.DropAll(); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		if !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", s.opts.Cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd, cacheCleanCmd)
}

func openCache(cmd *cobra.Command) (*settings, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	if err := s.enableCache(); err != nil {
		s.cleanup()
		return nil, err
	}
	return s, nil
}
