// Package directive reads the `#` lines the lexer keeps on its hidden
// channel. Nothing is expanded or evaluated: #version, #extension,
// #pragma, #line and #define get a structured form, everything else is
// kept as a name plus raw arguments.
package directive
