// Package patch implements the greedy, no-backtracking interval
// allocator of spec §4.5: given a targeted link's already-occupied
// intervals (fixed frames plus the SHP reservation) and a set of new
// frames each carrying a per-instance [min, max] window and duration,
// it assigns each new instance the earliest non-conflicting start
// within its window, in frame-then-instance input order. Failure to
// place any single instance is terminal for the whole patch.
package patch
