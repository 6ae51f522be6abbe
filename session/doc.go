// Package session implements the scheduling state machine of spec
// §4.8 and is where every process-wide mutable value spec §9 flags
// for removal — variable/constraint counters, solver weights, the
// chosen algorithm, the incremental batch size, time limit, MIP gap,
// accumulated execution time, and the SHP registry — is consolidated
// into a single owned value threaded through the call graph instead.
package session
