package format

import (
	"strings"

	"lockweak/internal/source"
)

// Writer копит вывод: куски исходника как есть и сгенерированные строки
// с отступом base + level*unit.
type Writer struct {
	sf    *source.File
	unit  string
	base  string
	level int
	// fresh: следующая запись начинается с новой строки и получает отступ
	fresh bool
	buf   []byte
}

// NewWriter creates a writer over sf; sf may be nil for pure generation.
func NewWriter(sf *source.File, opt Options) *Writer {
	w := &Writer{sf: sf, unit: opt.Unit()}
	if sf != nil {
		w.buf = make([]byte, 0, len(sf.Content)+len(sf.Content)/4)
	}
	return w
}

func (w *Writer) Bytes() []byte { return w.buf }

// SetBase sets the prefix written before every indented line.
func (w *Writer) SetBase(prefix string) { w.base = prefix }

// StartLine makes the next WriteString indent even if the buffer
// does not end with '\n'.
func (w *Writer) StartLine() { w.fresh = true }

func (w *Writer) IndentPush() { w.level++ }

func (w *Writer) IndentPop() { w.level = max(w.level-1, 0) }

func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.fresh = true
}

// WriteString writes s, indenting it if the writer is at a line start.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.fresh {
		w.buf = append(w.buf, w.base...)
		w.buf = append(w.buf, strings.Repeat(w.unit, w.level)...)
	}
	w.WriteRaw(s)
}

// WriteRaw appends s without indentation.
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	w.fresh = s[len(s)-1] == '\n'
}

// CopyRange copies source bytes [start, end), clamped to the file.
func (w *Writer) CopyRange(start, end int) {
	if w.sf == nil {
		return
	}
	n := len(w.sf.Content)
	start, end = min(max(start, 0), n), min(max(end, 0), n)
	if start < end {
		w.buf = append(w.buf, w.sf.Content[start:end]...)
		w.fresh = w.sf.Content[end-1] == '\n'
	}
}
