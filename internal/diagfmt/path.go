package diagfmt

import (
	"path/filepath"
	"strings"

	"lockweak/internal/source"
)

// autoPathLimit: длиннее этого абсолютный путь вне базы сокращается до имени файла
const autoPathLimit = 48

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	if !filepath.IsAbs(f.Path) {
		return f.Path
	}
	if rel := f.FormatPath("relative", fs.BaseDir()); !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel) {
		return rel
	}
	if len(f.Path) > autoPathLimit {
		return f.FormatPath("basename", "")
	}
	return f.Path
}

// knownFile guards fs.Get, which panics on foreign ids.
func knownFile(fs *source.FileSet, id source.FileID) (*source.File, bool) {
	if fs == nil || int(id) >= fs.Len() {
		return nil, false
	}
	return fs.Get(id), true
}
