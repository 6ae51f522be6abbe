// Package offsetgraph builds each frame's per-link Offset arena (spec
// §4.2): for a normal frame, one Offset per distinct link across all
// of its receivers' paths, shared whenever two paths cross the same
// link; for the Self-Healing Protocol, a synthetic reservation frame
// with one pre-filled Offset per link in the topology.
package offsetgraph
