// Package diag defines the diagnostic model shared by the lexer, the parser
// and the expansion passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short human oriented text.
//   - Primary: the source.Span pointing at the issue.
//   - Notes: optional secondary spans with extra context.
//   - Fixes: optional structured edits that internal/fix can apply.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter and never to storage directly. BagReporter
// collects into a Bag, DedupReporter drops duplicates before forwarding.
// ReportBuilder chains notes and fixes before a single Emit.
//
// Formatting lives in internal/diagfmt; this package only provides the golden
// and short one-line renderings used by tests and the CLI.
package diag
