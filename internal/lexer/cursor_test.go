package lexer

import (
	"testing"

	"lockweak/internal/source"
)

func newTestCursor(input string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("cursor.swift", []byte(input))
	return NewCursor(fs.Get(id))
}

func TestCursorBasics(t *testing.T) {
	c := newTestCursor("ab")
	if c.Prev() != 0 || c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(2) != 0 {
		t.Fatalf("peek at start is wrong")
	}
	m := c.Mark()
	if c.Bump() != 'a' || c.Prev() != 'a' {
		t.Fatalf("bump/prev")
	}
	if c.Eat('x') || !c.Eat('b') {
		t.Fatalf("eat")
	}
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("eof behaviour")
	}
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("reset")
	}
}

func TestCursorEatString(t *testing.T) {
	c := newTestCursor(`"""x`)
	if c.EatString(`""""`) {
		t.Fatalf("must not read past the end")
	}
	if !c.EatString(`"""`) || c.Peek() != 'x' {
		t.Fatalf("EatString failed")
	}
	if c.EatString("y") {
		t.Fatalf("mismatch must not consume")
	}
	c.SkipToEOF()
	if !c.EOF() {
		t.Fatalf("SkipToEOF")
	}
}
