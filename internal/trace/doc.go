// Package trace records spans of the parsing pipeline.
//
// Enable it from the command line:
//
//	cnode check --trace=- --trace-level=phase a.c b.c
//
// A disabled tracer is Nop and costs one interface call per span. At
// LevelError events go to a RingTracer that the CLI dumps only when a unit
// fails; higher levels stream text or NDJSON to a file or stderr.
//
// Scopes nest as driver → unit → pass → node. Tracers travel in
// context.Context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp, ctx := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer sp.End("")
package trace
