package ast

// Code is a generated source fragment: one line, or a block opened by Line,
// holding Body one level deeper and closed by Close.
type Code struct {
	Line  string
	Body  []Code
	Close string
}

// Line builds a single-line fragment.
func Line(text string) Code {
	return Code{Line: text}
}

// Block builds `head` + body + "}".
func Block(head string, body ...Code) Code {
	return Code{Line: head, Body: body, Close: "}"}
}

// IsBlock reports whether the fragment has a closing line.
func (c Code) IsBlock() bool {
	return c.Close != ""
}

// Extension is a generated `extension` declaration placed at file scope.
type Extension struct {
	// Access is the leading access modifier ("private"), may be empty.
	Access   string
	TypeName string
	Members  []Code
}

// Code renders the extension as a single block fragment.
func (e Extension) Code() Code {
	head := "extension " + e.TypeName + " {"
	if e.Access != "" {
		head = e.Access + " " + head
	}
	return Block(head, e.Members...)
}
