// Package backend defines the narrow capability the constraint model
// needs from a MILP solver, so the rest of the engine never couples
// itself to a concrete solver SDK or leaks variable indices into the
// data model (see spec.md §9, "Solver coupling").
//
// Two implementations live in this package:
//
//   - MockBackend, a mockgen-style recording mock (built on
//     github.com/golang/mock) for asserting exactly which
//     variables/constraints/objective terms a caller emits, without
//     needing a real solver; in this module only this package's own
//     tests use it.
//   - BacktrackingBackend, a small deterministic depth-first search
//     over integer variable domains, usable as a real (if
//     non-scalable) Backend for the small scenarios in spec.md §8 and
//     for round-trip/integration tests that want to run the full
//     engine without an external dependency.
//
// Production deployments are expected to supply their own Backend
// wrapping a real MILP library; this package does not pin itself to
// one.
package backend
