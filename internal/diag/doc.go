// Package diag defines the diagnostic model shared by the C front-end phases.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (see codes.go), a short Message, the Primary span, and
// optional Notes and Fixes. Notes add context ("previous definition is
// here") and never repeat the message.
//
// Phases emit through a Reporter so producers are not coupled to storage.
// The parser and sema build diagnostics with ReportError / ReportWarning and
// chain WithNote before Emit; BagReporter collects into a Bag which supports
// sorting, deduplication and limits.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; the driver decides when a Bag turns into a parse failure.
package diag
