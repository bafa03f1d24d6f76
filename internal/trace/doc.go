// Package trace records what the expander is doing: driver runs, passes,
// per-file work and single declarations.
//
//	lockweak expand --trace=- --trace-level=phase Sources/
//	lockweak check --trace=run.ndjson --trace-mode=ring Sources/
//
// StreamTracer writes every event as it happens. RingTracer keeps the last
// N events and writes them on Close, so a long watch session leaves only
// its tail. MultiTracer fans out to both.
//
// LevelPhase emits ScopeDriver and ScopePass, LevelDetail adds ScopeFile,
// LevelDebug adds ScopeDecl (one span per annotated class).
//
// Spans travel through context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, nil, trace.ScopeDriver, "expand-dir")
//	defer span.End("")
//	child := span.Child(trace.ScopePass, "parse")
package trace
