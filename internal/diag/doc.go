// Package diag defines the core diagnostic model shared by all pipeline
// phases: lexer, preprocessor, parser, type system, symbol/scope graph, and
// expression binder.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by each phase.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or rendering.
//
// # Scope
//
// Package diag renders diagnostics only as the plain one-line text forms in
// golden.go (FormatGoldenDiagnostics, FormatShortDiagnostics) and does no IO
// or terminal rendering; pretty-printing with source snippets lives in
// package diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error), severity.go.
//   - Code – compact numeric identifier (codes.go) with a stable string form.
//   - Message – human oriented text; kept short and actionable.
//   - Primary span – the canonical source.Span pointing at the issue.
//   - Notes – optional secondary spans/messages for additional context, used
//     in particular to reattach a constant evaluator's own diagnostics under
//     the outer ExpressionNotConstant code.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. A phase
// constructs a ReportBuilder via NewReportBuilder (or the helper functions
// ReportError/ReportWarning/ReportInfo), chains WithNote as needed, then
// calls Emit exactly once. diag.BagReporter aggregates diagnostics into a
// Bag, which supports sorting and deduplication for deterministic output.
package diag
