package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// stripBOM and dropCR undo what File.Restore puts back on write.
func stripBOM(content []byte) ([]byte, bool) {
	if rest, ok := bytes.CutPrefix(content, bom); ok {
		return rest, true
	}
	return content, false
}

// dropCR turns \r\n into \n; a lone \r stays.
func dropCR(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

// newlineOffsets: смещения всех '\n' по возрастанию.
func newlineOffsets(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for base := 0; ; {
		i := bytes.IndexByte(content[base:], '\n')
		if i < 0 {
			return out
		}
		out = append(out, uint32(base+i))
		base += i + 1
	}
}

// position: номер строки равен числу '\n' строго до off.
func position(newlines []uint32, off uint32) LineCol {
	line, _ := slices.BinarySearch(newlines, off)
	var lineStart uint32
	if line > 0 {
		lineStart = newlines[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - lineStart + 1}
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
