// Package token defines lexical token kinds and trivia for declaration sources.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Only hard keywords get their own Kind; contextual words (weak, unowned,
//     actor, final, get, set, willSet, didSet, ...) are identifiers and are
//     classified by the parser via LookupModifier / LookupAccessor.
//   - Attributes are lexed as '@' (Kind: At) followed by Ident.
//   - Whitespace and comments are attached to the next token as Leading trivia.
package token
