package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lockweak/internal/diag"
	"lockweak/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, p, d, fs, opts)
	}
}

func prettyOne(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	loc := "<unknown>"
	f, ok := knownFile(fs, d.Primary.File)
	if ok {
		start, _ := fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d", displayPath(fs, f, opts.PathMode), start.Line, start.Col)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		loc,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if ok {
		writeSnippet(w, p, fs, f, d.Primary, opts)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nloc := "<unknown>"
			if nf, ok := knownFile(fs, n.Span.File); ok {
				start, _ := fs.Resolve(n.Span)
				nloc = fmt.Sprintf("%s:%d:%d", displayPath(fs, nf, opts.PathMode), start.Line, start.Col)
			}
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), nloc, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fx := range sortedFixes(d.Fixes) {
			writeFix(w, p, fs, i+1, fx, opts)
		}
	}
}

// writeSnippet печатает строки вокруг span и подчёркивание под первой строкой.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, f *source.File, sp source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(sp)
	first := start.Line
	last := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
	}
	total := uint32(len(f.LineIdx) + 1)
	if last > total {
		last = total
	}
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), text)
		if line != start.Line {
			continue
		}
		src := f.GetLine(line)
		col := int(start.Col) - 1
		if col > len(src) {
			col = len(src)
		}
		endCol := len(src)
		if end.Line == start.Line {
			endCol = min(int(end.Col)-1, len(src))
		}
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			caretPad(src[:col]),
			p.caret.Sprint(underline(src[col:max(col, endCol)])),
		)
	}
}

// caretPad повторяет табы префикса и заменяет остальное пробелами по ширине.
func caretPad(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(text string) string {
	n := runewidth.StringWidth(text)
	if n <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", n-1)
}

func writeFix(w io.Writer, p palette, fs *source.FileSet, n int, fx diag.Fix, opts PrettyOpts) {
	meta := []string{fx.Kind.String(), fx.Applicability.String()}
	if fx.IsPreferred {
		meta = append(meta, "preferred")
	}
	line := fmt.Sprintf("  %s %s [%s]", p.fix.Sprintf("fix #%d:", n), fx.Title, strings.Join(meta, ", "))
	if fx.ID != "" {
		line += " id=" + fx.ID
	}
	fmt.Fprintln(w, line)

	for _, e := range fx.Edits {
		eloc := "<unknown>"
		ef, ok := knownFile(fs, e.Span.File)
		if ok {
			start, end := fs.Resolve(e.Span)
			eloc = fmt.Sprintf("%s:%d:%d-%d:%d", displayPath(fs, ef, opts.PathMode), start.Line, start.Col, end.Line, end.Col)
		}
		fmt.Fprintf(w, "    edit %s apply=%q\n", eloc, e.NewText)
		if !opts.ShowPreview || !ok {
			continue
		}
		preview, err := previewEdit(fs, e)
		if err != nil {
			continue
		}
		fmt.Fprintln(w, "    preview:")
		for _, l := range preview.before {
			fmt.Fprintf(w, "      - %s\n", l)
		}
		for _, l := range preview.after {
			fmt.Fprintf(w, "      + %s\n", l)
		}
	}
}
