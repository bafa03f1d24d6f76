package diagfmt

// PathMode: как печатать путь файла в диагностиках.
type PathMode uint8

const (
	// PathModeAuto is relative under the FileSet base and absolute elsewhere.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = map[string]PathMode{
	"":         PathModeAuto,
	"auto":     PathModeAuto,
	"absolute": PathModeAbsolute,
	"relative": PathModeRelative,
	"basename": PathModeBasename,
}

// ParsePathMode maps a --path-mode value; ok is false for unknown values.
func ParsePathMode(s string) (PathMode, bool) {
	m, ok := pathModeNames[s]
	return m, ok
}

type PrettyOpts struct {
	Color bool
	// Context: строк исходника вокруг primary span.
	Context  int8
	PathMode PathMode
	// Width ограничивает ширину строки, 0 без ограничения.
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max обрезает вывод, bag не трогается.
	Max             int
	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}
