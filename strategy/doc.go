// Package strategy drives the constraint package's variable/constraint
// emission against a backend.Backend to produce a full schedule, per
// spec §4.4: a One-shot driver that builds the whole model and solves
// it once, and an Incremental driver that grows the model K frames at
// a time, pinning each solved batch before advancing.
package strategy
