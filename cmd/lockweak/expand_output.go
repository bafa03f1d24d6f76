package main

import (
	"fmt"
	"io"

	"lockweak/internal/driver"
)

// printExpanded: одиночный файл печатается всегда, из каталога только изменённые
// с заголовком-комментарием перед каждым.
func printExpanded(w io.Writer, res *driver.Result, single bool) error {
	if single {
		for _, fr := range res.Files {
			if _, err := w.Write(fr.Output); err != nil {
				return err
			}
		}
		return nil
	}
	for i, fr := range res.Changed() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "// ===== %s =====\n", fr.Path); err != nil {
			return err
		}
		if _, err := w.Write(fr.Output); err != nil {
			return err
		}
	}
	return nil
}
