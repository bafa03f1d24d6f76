package diagfmt

import (
	"fmt"
	"strings"

	"lockweak/internal/diag"
	"lockweak/internal/source"
)

// editPreview: затронутые строки до и после применения одной правки.
type editPreview struct {
	before []string
	after  []string
}

func previewEdit(fs *source.FileSet, edit diag.TextEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, fmt.Errorf("nil FileSet")
	}
	f, ok := knownFile(fs, edit.Span.File)
	if !ok {
		return editPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	if edit.Span.End < edit.Span.Start || int(edit.Span.End) > len(f.Content) {
		return editPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	first, last := fs.Resolve(edit.Span)
	from, _, _ := f.LineBounds(first.Line)
	_, to, ok := f.LineBounds(max(last.Line, first.Line))
	if !ok {
		to = uint32(len(f.Content))
	}
	// вместе с переводом строки, если он есть
	if int(to) < len(f.Content) {
		to++
	}

	block := string(f.Content[from:to])
	head, tail := edit.Span.Start-from, edit.Span.End-from
	changed := block[:head] + edit.NewText + block[tail:]

	return editPreview{before: previewLines(block), after: previewLines(changed)}, nil
}

// previewLines: хвостовой \n не даёт лишней пустой строки.
func previewLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
