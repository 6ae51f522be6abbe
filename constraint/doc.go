// Package constraint translates the data model (model package) into
// variables and constraints on an opaque backend.Backend, per spec
// §4.3: offset variable domains, path-dependency constraints,
// end-to-end delay constraints, pairwise contention-free disjunctions,
// and the FrameDist/LinkDist slack variables the objective maximizes.
//
// Nothing in this package depends on a concrete solver SDK; it is
// exercised in tests against backend.BacktrackingBackend.
package constraint
