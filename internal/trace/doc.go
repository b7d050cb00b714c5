// Package trace records what the orchestrator and the driver are doing:
// command boundaries, toolchain resolution attempts, subprocess runs, lint
// passes and nodes the conversion engine skipped.
//
// # Usage
//
//	cargo-marker check --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level admits every scope at or above its granularity:
//
//   - LevelPhase: ScopeDriver, ScopePhase
//   - LevelDetail: additionally ScopeCandidate (one resolution attempt, one subprocess)
//   - LevelDebug: additionally ScopeNode (conversion skips)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "resolve", 0)
//	defer span.End("")
package trace
