package diag

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"lockweak/internal/source"
)

// generatedDir: всё под ним не попадает в golden-вывод.
const generatedDir = ".lockweak/"

type line struct {
	sev  string
	code string
	path string
	row  uint32
	col  uint32
	msg  string
}

func (l line) String() string {
	return l.sev + " " + l.code + " " + l.path + ":" +
		strconv.FormatUint(uint64(l.row), 10) + ":" + strconv.FormatUint(uint64(l.col), 10) + " " + l.msg
}

func compareLines(a, b line) int {
	return cmp.Or(
		strings.Compare(a.path, b.path),
		cmp.Compare(a.row, b.row),
		cmp.Compare(a.col, b.col),
		strings.Compare(a.sev, b.sev),
		strings.Compare(a.code, b.code),
		strings.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders one diagnostic per line in a stable order
// and drops files under .lockweak/. Notes become "note" lines when asked.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return render(diags, fs, includeNotes, true)
}

// FormatShortDiagnostics is the same layout with every path kept.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return render(diags, fs, includeNotes, false)
}

func render(diags []*Diagnostic, fs *source.FileSet, includeNotes, skipGenerated bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var lines []line
	add := func(sev string, code Code, sp source.Span, msg string) {
		l, ok := locate(fs, sp)
		if !ok || (skipGenerated && isGeneratedPath(l.path)) {
			return
		}
		l.sev, l.code, l.msg = sev, code.ID(), oneLine(msg)
		lines = append(lines, l)
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareLines)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func locate(fs *source.FileSet, sp source.Span) (line, bool) {
	if int(sp.File) >= fs.Len() {
		return line{}, false
	}
	start, _ := fs.Resolve(sp)
	p := filepath.ToSlash(fs.Get(sp.File).FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return line{path: p, row: start.Line, col: start.Col}, true
}

func isGeneratedPath(p string) bool {
	p = strings.TrimLeft(filepath.ToSlash(p), "/")
	return strings.HasPrefix(p, generatedDir) || strings.Contains(p, "/"+generatedDir)
}

// oneLine склеивает многострочное сообщение через пробел.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool { return r == '\n' || r == '\r' }), " "))
}
