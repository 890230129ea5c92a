// Package parser is a recursive-descent parser for GLSL ES.
//
// The token stream of a file is buffered up front so that ambiguous
// productions can be resolved by trial parses: a trial saves the token
// index, the sizes of the AST arenas and the number of parked diagnostics,
// and a failed trial restores all three. The ordered alternatives are:
//
//   - call before bare identifier in primary expressions;
//   - `unary assignment-op` before conditional expression;
//   - function header (`type IDENT (`) before init-declarator list;
//   - declaration, then expression statement, then keyword-led statements;
//   - `if/else` before `if`, so `else` binds to the innermost `if`.
//
// When every alternative of a top-level declaration or of a statement fails,
// the parser reports one ParseError at the furthest token reached, lists the
// token kinds accepted there, skips forward to a synchronisation point and
// continues.
package parser
