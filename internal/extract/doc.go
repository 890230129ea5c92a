// Package extract walks the top level of a parsed translation unit and
// collects its global declarations into a Table: uniforms, attributes,
// varyings, constants, struct types and function prototypes, each with its
// type, qualifiers, array size and source span.
//
// Function bodies are never entered. Struct types are expanded from their
// specifier the first time the name appears and shared by every later use.
// Extraction does not touch the syntax tree, so it can be run any number of
// times on the same Builder.
package extract
