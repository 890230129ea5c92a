// Package trace is the logging layer of the toolchain: structured span
// events for commands, pipeline phases and files.
//
// Enable it from the command line:
//
//	glsles diag --trace=- --trace-level=detail shaders/
//
// Tracers:
//
//   - Nop: zero overhead when disabled
//   - StreamTracer: immediate text or NDJSON output
//   - RingTracer: last N events in memory, dumped when a run fails
//   - MultiTracer: stream and ring together
//
// Scopes, coarse to fine: ScopeDriver (command), ScopePhase (lex, parse,
// directives, extract), ScopeFile (one shader of a directory run),
// ScopeNode (declarations). LevelPhase emits driver and phase events,
// LevelDetail adds files, LevelDebug emits everything.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
package trace
