// Package token defines lexical token kinds and trivia for the C front-end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Preprocessor directive lines are represented as leading Trivia
//     (TriviaDirective) and never appear in the main token stream.
//   - GNU alternate spellings (__inline__, __restrict, __const, ...) map to the
//     same Kind as the standard keyword.
//   - Typedef names are identifiers; the parser asks the semantic layer.
package token
