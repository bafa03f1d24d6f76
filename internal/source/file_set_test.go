package source

import "testing"

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.swift", []byte("hello"), 0)
	id2 := fs.Add("a.swift", []byte("hello again"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("a.swift")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello" {
		t.Fatalf("old version content changed: %q", got)
	}
}

func TestAddBytesNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddBytes("crlf.swift", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.swift", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.swift", []byte("first\nsecond\nthird")))
	for i, want := range []string{"first", "second", "third", ""} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Errorf("line %d: got %q, want %q", i+1, got, want)
		}
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0: got %q", got)
	}
}

func TestIndentAndText(t *testing.T) {
	fs := NewFileSet()
	src := "class A {\n    weak var d: D?\n\tlet x = 1\n}"
	f := fs.Get(fs.AddVirtual("indent.swift", []byte(src)))

	off := uint32(len("class A {\n    weak"))
	if got := f.Indent(off); got != "    " {
		t.Fatalf("Indent = %q", got)
	}
	if got := f.Indent(uint32(len("class A {\n    weak var d: D?\n\t"))); got != "\t" {
		t.Fatalf("Indent tab = %q", got)
	}
	if got := f.Indent(0); got != "" {
		t.Fatalf("Indent top = %q", got)
	}
	if got := f.Text(Span{Start: 0, End: 5}); got != "class" {
		t.Fatalf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 100, End: 400}); got != "" {
		t.Fatalf("clamped Text = %q", got)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	fs := NewFileSet()
	raw := "\xEF\xBB\xBFclass A {\r\n}\r\n"
	f := fs.Get(fs.AddBytes("a.swift", []byte(raw)))
	if string(f.Content) != "class A {\n}\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if got := string(f.Restore([]byte("class B {\n}\n"))); got != "\xEF\xBB\xBFclass B {\r\n}\r\n" {
		t.Fatalf("restore %q", got)
	}
	if f.IsVirtual() {
		t.Fatalf("AddBytes files are not virtual")
	}
	if !fs.Get(fs.AddVirtual("v.swift", nil)).IsVirtual() {
		t.Fatalf("AddVirtual files are virtual")
	}
}

func TestLineBoundsAndLineEndings(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddBytes("crlf.swift", []byte("\xEF\xBB\xBFa\r\nbc\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "a\nbc\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if start, end, ok := f.LineBounds(2); !ok || start != 2 || end != 4 {
		t.Fatalf("LineBounds(2) = %d %d %v", start, end, ok)
	}
	if _, _, ok := f.LineBounds(4); ok {
		t.Fatalf("line past the end must not resolve")
	}
	if got := string(f.Restore(f.Content)); got != "\xEF\xBB\xBFa\r\nbc\r\n" {
		t.Fatalf("Restore = %q", got)
	}
}
