// Package diag defines the diagnostic model shared by all compiler phases.
//
// Phases never print. They emit through a Reporter, which decouples emission
// from storage: BagReporter collects into a Bag for the driver and CLI, while
// tests usually plug in their own collecting reporter.
//
// Compilation is fail-fast. The first SevError diagnostic aborts the phase
// that produced it; the phase returns the same diagnostic wrapped in *Error so
// callers can use ordinary error handling (errors.As) and still reach the code
// and span. SevInfo diagnostics are informational logs (storage assignment,
// lenient literals) and never stop compilation.
//
// Code ranges:
//
//   - 1000s: lexical (LEX)
//   - 2000s: syntax (SYN)
//   - 3000s: semantic / scope (SEM)
//   - 4000s: code generation (GEN)
//   - 5000s: I/O and project (IO)
package diag
