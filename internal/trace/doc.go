// Package trace records what a rillint run spends its time on.
//
// # Usage
//
//	rillint check --trace=- --trace-level=phase ./src
//	rillint check --trace=run.chrome.json --trace-level=detail ./src
//
// Tracers:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring only, dumped when the run fails
//   - LevelPhase: the run and its phases (load, lex+parse, expand, lint, fix)
//   - LevelDetail: plus one span per file
//   - LevelDebug: plus one span per lint check
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "lint", parentID)
//	defer span.End("")
package trace
