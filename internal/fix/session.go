package fix

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"lockweak/internal/diag"
	"lockweak/internal/source"
)

// buffer: рабочая копия файла и правки, уже лёгшие на неё.
// Смещения правок даны в координатах исходного файла.
type buffer struct {
	data  []byte
	edits []diag.TextEdit // по возрастанию Start, при равенстве по End
	count int
}

// shift: насколько pos исходного файла сдвинулся от правок, лежащих до него.
func (b *buffer) shift(pos uint32) int {
	delta := 0
	for _, e := range b.edits {
		if e.Span.Start > pos {
			break
		}
		if e.Span.End <= pos {
			delta += len(e.NewText) - int(e.Span.Len())
		}
	}
	return delta
}

func (b *buffer) conflicts(edits []diag.TextEdit) bool {
	for _, prev := range b.edits {
		for _, e := range edits {
			if spansConflict(prev, e) {
				return true
			}
		}
	}
	return false
}

// with returns a copy of b with edits applied, or the reason they do not fit.
func (b *buffer) with(edits []diag.TextEdit) (*buffer, string) {
	// с конца к началу: ранние смещения не сдвигаются
	edits = slices.Clone(edits)
	slices.SortStableFunc(edits, func(x, y diag.TextEdit) int {
		return cmp.Or(cmp.Compare(y.Span.Start, x.Span.Start), cmp.Compare(y.Span.End, x.Span.End))
	})

	data := slices.Clone(b.data)
	for _, e := range edits {
		start := int(e.Span.Start) + b.shift(e.Span.Start)
		end := int(e.Span.End) + b.shift(e.Span.End)
		if start < 0 || end < start || end > len(data) {
			return nil, "edit span out of range"
		}
		if e.OldText != "" && string(data[start:end]) != e.OldText {
			return nil, "existing text does not match expected content"
		}
		data = slices.Concat(data[:start], []byte(e.NewText), data[end:])
	}

	next := &buffer{data: data, edits: slices.Clone(b.edits), count: b.count + len(edits)}
	for _, e := range edits {
		i, _ := slices.BinarySearchFunc(next.edits, e, func(x, y diag.TextEdit) int {
			return cmp.Or(cmp.Compare(x.Span.Start, y.Span.Start), cmp.Compare(x.Span.End, y.Span.End))
		})
		next.edits = slices.Insert(next.edits, i, e)
	}
	return next, ""
}

// spansConflict: пересечение полуинтервалов [Start, End).
// Две вставки не конфликтуют; вставка конфликтует с непустым span,
// только если Start <= pos < End.
func spansConflict(a, b diag.TextEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs <= as && as < be
	case bs == be:
		return as <= bs && bs < ae
	}
	return as < be && bs < ae
}

type session struct {
	fs       *source.FileSet
	inMemory bool
	files    map[source.FileID]*buffer
}

func newSession(fs *source.FileSet, inMemory bool) *session {
	return &session{fs: fs, inMemory: inMemory, files: map[source.FileID]*buffer{}}
}

func (s *session) buffer(id source.FileID) *buffer {
	if b, ok := s.files[id]; ok {
		return b
	}
	return &buffer{data: s.fs.Get(id).Content}
}

// try применяет правки одного fix. Пока все файлы не сошлись, session не меняется.
func (s *session) try(edits []diag.TextEdit) (int, string) {
	byFile := map[source.FileID][]diag.TextEdit{}
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	staged := make(map[source.FileID]*buffer, len(byFile))
	for _, id := range slices.Sorted(maps.Keys(byFile)) {
		if int(id) >= s.fs.Len() {
			return 0, "unknown target file"
		}
		f := s.fs.Get(id)
		if !s.inMemory && f.IsVirtual() {
			return 0, "target file is virtual"
		}
		cur := s.buffer(id)
		if cur.conflicts(byFile[id]) {
			return 0, fmt.Sprintf("conflicts with previously applied edits in %s", f.FormatPath("auto", s.fs.BaseDir()))
		}
		next, reason := cur.with(byFile[id])
		if reason != "" {
			return 0, reason
		}
		staged[id] = next
	}
	maps.Copy(s.files, staged)
	return len(edits), ""
}

func (s *session) write() error {
	for _, id := range slices.Sorted(maps.Keys(s.files)) {
		if err := writeFile(s.fs.Get(id), s.files[id].data); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) changes() []FileChange {
	out := make([]FileChange, 0, len(s.files))
	for id, b := range s.files {
		out = append(out, FileChange{Path: s.fs.Get(id).FormatPath("relative", s.fs.BaseDir()), EditCount: b.count})
	}
	slices.SortFunc(out, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return out
}
