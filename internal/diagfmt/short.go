package diagfmt

import (
	"fmt"
	"io"

	"lockweak/internal/diag"
	"lockweak/internal/source"
)

// Short пишет по одной строке на диагностику: `SEV CODE path:line:col message`.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	out := diag.FormatShortDiagnostics(bag.Pointers(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
