// Package diag defines the diagnostic model shared by the lexer, parser,
// declaration extractor and driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string ID such as
//     "SYN2001" (codes.go). The numeric range also fixes the stage Kind:
//     1xxx lexical, 2xxx syntactic, 3xxx extraction, 4xxx I/O, 5xxx
//     directive lines (reported as lexical, they live on the hidden channel).
//   - Message – short, actionable text.
//   - Primary – the source.Span the finding is about. Line, column and byte
//     offset come from Diagnostic.Position with the owning FileSet.
//   - Notes – optional secondary spans, e.g. "first declared here".
//
// # Emitting
//
// Producers depend only on Reporter. BagReporter stores into a capped Bag,
// DedupReporter drops exact repeats, and ReportBuilder adds notes before
// Emit. Rendering lives in internal/diagfmt; this package does no I/O.
//
// The model is deterministic: Bag.Sort orders by file, offset, severity
// and code so golden output (FormatGoldenDiagnostics) is stable.
package diag
