// Package sim provides the per-tick routing engine for the pearl network.
//
// # Reading Guide
//
// Start with these three files to understand the decision kernel:
//   - state.go: the tick snapshot (workers, desks, pearls, layers, edges)
//   - routing.go: Router.DecideActions, the return / offload / nom rules
//   - path_memory.go: the cross-tick stack that routes finished pearls home
//
// # Architecture
//
// The sim package holds pure decision logic with no I/O; the surrounding
// pieces live in sub-packages:
//   - sim/wire/: JSON line decoding (schema-validated) and action encoding
//   - sim/pipeline/: the stdin → decide → stdout tick loop
//   - sim/trace/: decision trace recording and summaries
//
// # Invariants
//
//   - NeighborGraph is symmetric and only references workers in the state.
//   - A worker receives at most one Action per tick.
//   - A finished pearl is never nommed.
//   - Returning a pearl with no recorded path is an error, never a guess.
package sim
