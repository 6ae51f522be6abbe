package offsetgraph

import "errors"

// ErrNoLinks indicates the topology has no links registered, so a
// reservation frame (one Offset per link id) cannot be built.
var ErrNoLinks = errors.New("offsetgraph: topology has no links")

// ErrMissingDuration indicates the timemodel.Result passed to
// BuildFrame has no renormalized duration for a (frame, link) pair
// that a receiver's path actually traverses.
var ErrMissingDuration = errors.New("offsetgraph: missing renormalized duration")
