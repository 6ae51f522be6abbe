// Package verify implements the deterministic post-solve verifier of
// spec §4.7: bounds, non-overlap (including the SHP reservation),
// path-dependency, and end-to-end checks over a solved model.Traffic
// set. A passing run additionally computes slack-distribution
// telemetry over the achieved FrameDist/LinkDist values, reported
// alongside the pass/fail verdict but never changing it.
package verify
