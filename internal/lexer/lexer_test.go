package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"lockweak/internal/diag"
	"lockweak/internal/lexer"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов без EOF
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ndiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), bag.Items())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Fatalf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return tokens
}

func TestWeakMemberDeclaration(t *testing.T) {
	toks := expectTokens(t, "weak var delegate: FooDelegate?",
		token.Ident, token.KwVar, token.Ident, token.Colon, token.Ident, token.Question)
	if toks[0].Text != "weak" || toks[4].Text != "FooDelegate" {
		t.Fatalf("unexpected texts: %v", tokensToString(toks))
	}
}

func TestAttributesAndClass(t *testing.T) {
	expectTokens(t, "@LockedWeakReference\nfinal class AnyFoo: FooDelegate, Sendable {}",
		token.At, token.Ident,
		token.Ident, token.KwClass, token.Ident, token.Colon, token.Ident, token.Comma, token.Ident,
		token.LBrace, token.RBrace)
}

func TestKeywordsAndContextualWords(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"class", token.KwClass},
		{"struct", token.KwStruct},
		{"enum", token.KwEnum},
		{"protocol", token.KwProtocol},
		{"extension", token.KwExtension},
		{"static", token.KwStatic},
		{"let", token.KwLet},
		{"actor", token.Ident},
		{"weak", token.Ident},
		{"Class", token.Ident},
		{"`class`", token.Ident},
		{"$0", token.Ident},
		{"$value", token.Ident},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokens(t, tc.input, tc.kind)
		})
	}
}

func TestEscapedIdentText(t *testing.T) {
	toks := expectTokens(t, "`default`", token.Ident)
	if toks[0].Text != "default" {
		t.Fatalf("escaped ident text = %q", toks[0].Text)
	}
	if toks[0].Span.Len() != 9 {
		t.Fatalf("span must cover backticks, got %v", toks[0].Span)
	}
}

func TestUnicodeIdentifierIsNFC(t *testing.T) {
	// e + U+0301 нормализуется в U+00E9
	toks := expectTokens(t, "cafe\u0301", token.Ident)
	if toks[0].Text != "caf\u00e9" {
		t.Fatalf("expected NFC text, got %q", toks[0].Text)
	}
	if toks[0].Span.Len() != 6 {
		t.Fatalf("span keeps source bytes, got %v", toks[0].Span)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		input string
		kinds []token.Kind
	}{
		{"1", []token.Kind{token.IntLit}},
		{"1_000", []token.Kind{token.IntLit}},
		{"0xFF", []token.Kind{token.IntLit}},
		{"0b1010", []token.Kind{token.IntLit}},
		{"0o17", []token.Kind{token.IntLit}},
		{"1.5", []token.Kind{token.FloatLit}},
		{"1e-3", []token.Kind{token.FloatLit}},
		{"0x1p4", []token.Kind{token.FloatLit}},
		{"1...5", []token.Kind{token.IntLit, token.Operator, token.IntLit}},
		{"0..<n", []token.Kind{token.IntLit, token.Operator, token.Ident}},
		{"1.description", []token.Kind{token.IntLit, token.Dot, token.Ident}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			expectTokens(t, tc.input, tc.kinds...)
		})
	}
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"0x", "1e"} {
		lx, bag := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Fatalf("%q: expected Invalid, got %v", input, tok.Kind)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
			t.Fatalf("%q: expected LexBadNumber, got %v", input, bag.Items())
		}
	}
}

func TestStrings(t *testing.T) {
	cases := []string{
		`""`,
		`"plain"`,
		`"esc \" quote"`,
		`"interp \(value) and \(f("x", (1)))"`,
		"\"\"\"\nmulti \"line\"\n\"\"\"",
		`#"raw \(not) "quoted""#`,
		`##"has "# inside"##`,
		`#"raw \#(interp)"#`,
	}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			toks := expectTokens(t, input, token.StringLit)
			if toks[0].Text != input {
				t.Fatalf("string text %q != input %q", toks[0].Text, input)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("\"abc\nlet x = 1")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", bag.Items())
	}
	// лексер продолжает работу
	if next := lx.Next(); next.Kind != token.KwLet {
		t.Fatalf("expected let after recovery, got %v", next.Kind)
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		input string
		kinds []token.Kind
		texts []string
	}{
		{"a = b", []token.Kind{token.Ident, token.Assign, token.Ident}, nil},
		{"a == b", []token.Kind{token.Ident, token.Operator, token.Ident}, []string{"a", "==", "b"}},
		{"() -> R", []token.Kind{token.LParen, token.RParen, token.Arrow, token.Ident}, nil},
		{"$0 as? Foo", []token.Kind{token.Ident, token.KwAs, token.Question, token.Ident}, nil},
		{"x!", []token.Kind{token.Ident, token.Bang}, nil},
		{"x != y", []token.Kind{token.Ident, token.Operator, token.Ident}, nil},
		{"!flag", []token.Kind{token.Bang, token.Ident}, nil},
		{"a ?? b", []token.Kind{token.Ident, token.Operator, token.Ident}, nil},
		{"Array<Int>?", []token.Kind{token.Ident, token.Operator, token.Ident, token.Operator}, []string{"Array", "<", "Int", ">?"}},
		{"a?.b", []token.Kind{token.Ident, token.Question, token.Dot, token.Ident}, nil},
		{"&value", []token.Kind{token.Operator, token.Ident}, nil},
		{"#if", []token.Kind{token.Hash, token.Ident}, nil},
		{"\\.path", []token.Kind{token.Backslash, token.Dot, token.Ident}, nil},
		{"a+//c\nb", []token.Kind{token.Ident, token.Operator, token.Ident}, []string{"a", "+", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			toks := expectTokens(t, tc.input, tc.kinds...)
			for i, text := range tc.texts {
				if toks[i].Text != text {
					t.Fatalf("token %d text %q, want %q", i, toks[i].Text, text)
				}
			}
		})
	}
}

func TestTriviaAttachment(t *testing.T) {
	input := "/// doc\n// note\n  /* block /* nested */ */\tvar x\n"
	lx, bag := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != token.KwVar {
		t.Fatalf("expected var, got %v", tok.Kind)
	}
	var kinds []token.TriviaKind
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline,
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaSpace, token.TriviaBlockComment, token.TriviaSpace,
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("trivia kinds %v, want %v", kinds, want)
	}
	if !tok.StartsLine() {
		t.Fatalf("var must start a line")
	}
	x := lx.Next()
	if x.StartsLine() {
		t.Fatalf("x is on the same line")
	}
	eof := lx.Next()
	if eof.Kind != token.EOF || len(eof.Leading) != 1 || eof.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("EOF must carry trailing trivia, got %+v", eof)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if again := lx.Next(); again.Kind != token.EOF {
		t.Fatalf("EOF is sticky, got %v", again.Kind)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("/* open /* nested */ still open")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", bag.Items())
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a § b")
	toks := lx.All()
	if len(toks) != 4 || toks[1].Kind != token.Invalid {
		t.Fatalf("unexpected tokens %v", tokensToString(toks))
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", bag.Items())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("let x")
	if p := lx.Peek(); p.Kind != token.KwLet {
		t.Fatalf("peek: %v", p.Kind)
	}
	if p := lx.Peek(); p.Kind != token.KwLet {
		t.Fatalf("second peek: %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.KwLet {
		t.Fatalf("next after peek: %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.Ident {
		t.Fatalf("next: %v", n.Kind)
	}
}
