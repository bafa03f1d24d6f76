package format

import (
	"errors"
	"fmt"
	"sort"

	"lockweak/internal/source"
)

// ErrOverlap is returned when two non-insert edits touch the same bytes.
var ErrOverlap = errors.New("format: overlapping edits")

type edit struct {
	start, end uint32
	text       string
	late       bool
	order      int
}

// rank orders edits sharing a start offset: plain inserts, then
// InsertAfter text, then the edit that consumes bytes.
func (e edit) rank() int {
	switch {
	case e.start != e.end:
		return 2
	case e.late:
		return 1
	}
	return 0
}

// Rewriter собирает правки исходного файла и применяет их за один проход.
// Вставки в одну позицию идут в порядке добавления, InsertAfter после остальных.
type Rewriter struct {
	sf    *source.File
	opt   Options
	edits []edit
}

func NewRewriter(sf *source.File, opt Options) *Rewriter {
	return &Rewriter{sf: sf, opt: opt}
}

// Insert adds text at byte offset at.
func (r *Rewriter) Insert(at uint32, text string) {
	r.add(at, at, text)
}

// InsertAfter adds text at offset at after every other insert or empty
// replacement there, whenever they were added.
func (r *Rewriter) InsertAfter(at uint32, text string) {
	r.add(at, at, text)
	r.edits[len(r.edits)-1].late = true
}

// Replace swaps the bytes of sp for text.
func (r *Rewriter) Replace(sp source.Span, text string) {
	r.add(sp.Start, sp.End, text)
}

// Delete removes the bytes of sp.
func (r *Rewriter) Delete(sp source.Span) {
	if sp.Empty() {
		return
	}
	r.add(sp.Start, sp.End, "")
}

func (r *Rewriter) add(start, end uint32, text string) {
	r.edits = append(r.edits, edit{start: start, end: end, text: text, order: len(r.edits)})
}

// Len reports how many edits are pending.
func (r *Rewriter) Len() int {
	return len(r.edits)
}

// Bytes returns the source with every edit applied.
func (r *Rewriter) Bytes() ([]byte, error) {
	if r.sf == nil {
		return nil, errors.New("format: nil source file")
	}
	edits := append([]edit(nil), r.edits...)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		if ri, rj := edits[i].rank(), edits[j].rank(); ri != rj {
			return ri < rj
		}
		return edits[i].order < edits[j].order
	})

	w := NewWriter(r.sf, r.opt)
	pos := 0
	for _, e := range edits {
		start, end := int(e.start), int(e.end)
		if start < pos {
			return nil, fmt.Errorf("%w at %d..%d", ErrOverlap, start, end)
		}
		w.CopyRange(pos, start)
		w.WriteRaw(e.text)
		pos = end
	}
	w.CopyRange(pos, len(r.sf.Content))
	return w.Bytes(), nil
}
