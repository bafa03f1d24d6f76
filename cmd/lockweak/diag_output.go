package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lockweak/internal/diag"
	"lockweak/internal/diagfmt"
	"lockweak/internal/source"
)

// diagOutput: флаги вывода диагностик, общие для check/expand/fix.
type diagOutput struct {
	format    string
	withNotes bool
	suggest   bool
	preview   bool
	pathMode  diagfmt.PathMode
}

func addDiagOutputFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().String("format", defaultFormat, "diagnostics format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "preview fix edits (implies --suggest)")
	cmd.Flags().String("path-mode", "auto", "file path display (auto|absolute|relative|basename)")
}

func readDiagOutput(cmd *cobra.Command) (diagOutput, error) {
	var out diagOutput
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "short", "json":
	default:
		return out, fmt.Errorf("unknown format %q (expected pretty|short|json)", out.format)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return out, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if out.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return out, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if out.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return out, fmt.Errorf("failed to get preview flag: %w", err)
	}
	out.suggest = out.suggest || out.preview
	mode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return out, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if out.pathMode, ok = diagfmt.ParsePathMode(mode); !ok {
		return out, fmt.Errorf("invalid --path-mode %q", mode)
	}
	return out, nil
}

// print пишет диагностики; пустой bag в pretty/short ничего не выводит.
func (o diagOutput) print(w io.Writer, f *os.File, bag *diag.Bag, fs *source.FileSet, s *settings) error {
	switch o.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			Max:              s.maxDiagnostics,
			IncludeNotes:     o.withNotes,
			IncludeFixes:     o.suggest,
			IncludePreviews:  o.preview,
		})
	case "short":
		if bag == nil || bag.Len() == 0 {
			return nil
		}
		return diagfmt.Short(w, bag, fs, o.withNotes)
	default:
		if bag == nil || bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       s.useColor(f),
			Context:     1,
			PathMode:    o.pathMode,
			ShowNotes:   o.withNotes,
			ShowFixes:   o.suggest,
			ShowPreview: o.preview,
		})
		return nil
	}
}
