// Package token defines lexical token kinds and trivia for GLSL ES sources.
// Invariants:
//   - Token.Span matches Text exactly, except for the terminal Invalid token
//     produced after an unterminated block comment, which is empty.
//   - Keywords are whole words; an identifier spelling a keyword is that keyword.
//     "main" is a keyword, "true"/"false" lex as BoolLit.
//   - Whitespace, comments and # directive lines never appear as tokens;
//     they are Trivia attached to the following token (the hidden channel).
package token
