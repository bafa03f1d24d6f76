package token

import (
	"strings"
	"testing"

	"lockweak/internal/source"
)

func TestKindStringCoversAll(t *testing.T) {
	for k := Invalid; k <= Operator; k++ {
		if s := k.String(); s == "" || s == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
	}
	if Kind(250).String() != "Kind(?)" {
		t.Fatalf("out of range kind must be Kind(?)")
	}
}

func TestLookupKeyword(t *testing.T) {
	for word, want := range keywords {
		got, ok := LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v", word, got, ok)
		}
		if !got.IsKeyword() {
			t.Fatalf("%v must be a keyword", got)
		}
		if got.String() != word {
			t.Fatalf("name of %q is %q", word, got.String())
		}
	}
	// контекстные слова остаются идентификаторами
	for _, word := range []string{"actor", "weak", "get", "set", "Class", "final"} {
		if _, ok := LookupKeyword(word); ok {
			t.Fatalf("%q must not be a hard keyword", word)
		}
	}
}

func TestModifierSet(t *testing.T) {
	var m Modifier
	for _, w := range []string{"private", "weak", "static"} {
		bit, ok := LookupModifier(w)
		if !ok {
			t.Fatalf("unknown modifier %q", w)
		}
		m |= bit
	}
	if !m.Has(ModWeak) || !m.Has(ModStatic) || m.Has(ModClass) {
		t.Fatalf("unexpected set %v", m.Names())
	}
	if m.Has(ModNone) {
		t.Fatalf("ModNone is never contained")
	}
	if got := strings.Join(m.Names(), " "); got != "private static weak" {
		t.Fatalf("Names() = %q", got)
	}
	if len(modifierOrder) != len(modifiers) {
		t.Fatalf("modifierOrder out of sync: %d vs %d", len(modifierOrder), len(modifiers))
	}
}

func TestAccessorKinds(t *testing.T) {
	cases := map[string]bool{"get": false, "set": false, "willSet": true, "didSet": true, "_modify": false}
	for w, observer := range cases {
		k, ok := LookupAccessor(w)
		if !ok {
			t.Fatalf("LookupAccessor(%q) failed", w)
		}
		if k.IsObserver() != observer {
			t.Fatalf("%q observer=%v", w, k.IsObserver())
		}
	}
	if _, ok := LookupAccessor("value"); ok {
		t.Fatalf("value is not an accessor")
	}
}

func TestStartsLine(t *testing.T) {
	first := Token{Kind: Ident, Span: source.Span{Start: 0, End: 3}}
	if !first.StartsLine() {
		t.Fatalf("file start must start a line")
	}
	same := Token{Kind: Ident, Span: source.Span{Start: 5, End: 6}, Leading: []Trivia{{Kind: TriviaSpace}}}
	if same.StartsLine() {
		t.Fatalf("space-only trivia does not start a line")
	}
	next := Token{Kind: Ident, Span: source.Span{Start: 9, End: 10}, Leading: []Trivia{{Kind: TriviaNewline}, {Kind: TriviaSpace}}}
	if !next.StartsLine() {
		t.Fatalf("newline trivia starts a line")
	}
	if (Trivia{Kind: TriviaSpace}).IsComment() || !(Trivia{Kind: TriviaDocLine}).IsComment() {
		t.Fatalf("IsComment misclassified")
	}
}
