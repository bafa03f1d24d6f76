package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including contextual keywords and `$0`.
	Ident

	KwClass     // class
	KwStruct    // struct
	KwEnum      // enum
	KwProtocol  // protocol
	KwExtension // extension
	KwVar       // var
	KwLet       // let
	KwFunc      // func
	KwInit      // init
	KwDeinit    // deinit
	KwSubscript // subscript
	KwTypealias // typealias
	KwImport    // import
	KwCase      // case
	KwStatic    // static
	KwAs        // as
	KwWhere     // where
	KwOperator  // operator
	KwAssocType // associatedtype
	KwInout     // inout

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal, single- or multi-line, raw or not.
	StringLit

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Colon     // :
	Semicolon // ;
	At        // @
	Hash      // #
	Dot       // .
	Question  // ?
	Bang      // !
	Assign    // =
	Arrow     // ->
	Backslash // \
	// Operator is any other run of operator characters (+, ==, ..<, &&, ...).
	Operator
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwClass:     "class",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwProtocol:  "protocol",
	KwExtension: "extension",
	KwVar:       "var",
	KwLet:       "let",
	KwFunc:      "func",
	KwInit:      "init",
	KwDeinit:    "deinit",
	KwSubscript: "subscript",
	KwTypealias: "typealias",
	KwImport:    "import",
	KwCase:      "case",
	KwStatic:    "static",
	KwAs:        "as",
	KwWhere:     "where",
	KwOperator:  "operator",
	KwAssocType: "associatedtype",
	KwInout:     "inout",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Comma:       ",",
	Colon:       ":",
	Semicolon:   ";",
	At:          "@",
	Hash:        "#",
	Dot:         ".",
	Question:    "?",
	Bang:        "!",
	Assign:      "=",
	Arrow:       "->",
	Backslash:   "\\",
	Operator:    "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a hard keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwClass && k <= KwInout
}

// IsOpen reports whether k opens a bracketed group.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a bracketed group.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}
