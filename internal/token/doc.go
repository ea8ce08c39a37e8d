// Package token defines lexical token kinds for the momo compiler.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Native type names (int, i32, f64, void, ...) are dedicated kinds, not identifiers.
//   - The scanner never produces EOF; parsers synthesize it on exhaustion.
package token
