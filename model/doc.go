// Package model defines the static network and traffic data types the
// scheduling engine operates on: Link, Node, Topology, Frame, Traffic,
// the Self-Healing Protocol (SHP) reservation, and the Offset cells the
// rest of the engine assigns values to.
//
// Links, Nodes, and Topology are built once during ingestion and never
// mutated afterwards. Frame skeletons are likewise fixed at
// construction time, with one sanctioned exception: the timemodel
// package renormalizes a frame's Period/Deadline/Start/EndToEnd fields
// in place, once, from nanoseconds to timeslot units, before the
// offset graph is built. Offset structures are created by the
// offsetgraph package once that renormalization has fixed the
// hyperperiod and timeslot; offset cell values are the only mutable
// state during scheduling proper, and each cell is assigned at most
// once per run.
package model
