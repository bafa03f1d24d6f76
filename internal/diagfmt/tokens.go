package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lockweak/internal/source"
	"lockweak/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenOutputs обрывает поток на первом EOF.
func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		item := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
		for _, tr := range tok.Leading {
			item.Leading = append(item.Leading, tr.Kind.String())
		}
		out = append(out, item)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty prints one token per line with its line:col range.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokenOutputs(tokens) {
		from, to := fs.Resolve(tok.Span)
		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
		if len(tok.Leading) > 0 {
			sb.WriteString(" (leading: " + strings.Join(tok.Leading, ", ") + ")")
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutputs(tokens))
}
