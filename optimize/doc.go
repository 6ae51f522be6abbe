// Package optimize implements the Optimize Engine of spec §4.6: after
// patch has greedily placed new frames on a targeted link, optimize
// re-opens that link as a small MILP — fixed frames and the SHP
// reservation pinned to their known values, new frames bounded by
// their patch-time [min, max] windows — to recover objective slack the
// greedy placement left on the table, reusing the contention-free
// formulation from the constraint package and the K-at-a-time
// solve-and-pin shape of the incremental strategy.
package optimize
