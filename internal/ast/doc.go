// Package ast holds the syntax tree of a GLSL ES translation unit.
//
// Nodes live in typed arenas owned by a Builder and are addressed by 1-based
// IDs; the zero ID means "absent". Each node kind keeps its payload in a
// separate arena and exposes a `(data, ok)` accessor that checks the kind.
//
// The tree is strict: every node has exactly one parent. Builder.Mark and
// Builder.Rollback let the parser discard everything a failed trial parse
// allocated.
package ast
