package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"lockweak/internal/source"
)

// Cursor: позиция чтения в файле. Все Peek* за концом дают 0.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

func (c *Cursor) rest() []byte { return c.File.Content[c.Off:c.Limit] }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Prev: байт перед курсором, 0 в начале файла.
func (c *Cursor) Prev() byte {
	if c.Off == 0 {
		return 0
	}
	return c.File.Content[c.Off-1]
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// PeekRune decodes the rune at the cursor; size is 0 at EOF.
func (c *Cursor) PeekRune() (rune, int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.rest())
}

func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	c.Off += uint32(size) // #nosec G115 -- utf8 rune size is at most 4
}

// Mark запоминает позицию для SpanFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

// EatString consumes s only when the input continues with all of it.
func (c *Cursor) EatString(s string) bool {
	if c.EOF() || !bytes.HasPrefix(c.rest(), []byte(s)) {
		return false
	}
	c.Off += uint32(len(s)) // #nosec G115 -- operator literals are a few bytes long
	return true
}

func (c *Cursor) SkipToEOF() { c.Off = c.Limit }

// EatWhile consumes bytes while keep holds and reports how many it took.
func (c *Cursor) EatWhile(keep func(byte) bool) int {
	n := 0
	for !c.EOF() && keep(c.Peek()) {
		c.Off++
		n++
	}
	return n
}
