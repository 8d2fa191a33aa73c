// Package token defines lexical token kinds and trivia for rill sources.
// Invariants:
//   - Token.Text is the exact source text under Token.Span.
//   - Spans produced by macro expansion keep pointing at the text they were
//     copied from; only Span.Ctxt changes.
//   - Compound operators never swallow a following unary operator: `=-` is
//     Assign followed by Minus, which is what the formatting lints look at.
//   - Built-in type names (u8, i32, String, ...) are identifiers.
package token
