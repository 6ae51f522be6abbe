package patch

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/model"
)

// FixedInstance is one already-known transmission of a fixed frame on
// the targeted link.
type FixedInstance struct {
	Start    int64
	Duration int64
}

// FixedFrame is a frame whose transmission times on the targeted link
// are already known — pre-loaded into the occupied-interval set but
// never itself re-placed.
type FixedFrame struct {
	FrameID   int
	Instances []FixedInstance
}

// InstanceBounds is one new frame instance's allowed placement window
// and transmission duration on the targeted link.
type InstanceBounds struct {
	Min, Max int64
	Duration int64
}

// NewFrameInput is a new frame's per-instance bounds, in instance
// order — spec §4.5's "intra-frame: instance order".
type NewFrameInput struct {
	FrameID   int
	Instances []InstanceBounds
}

// Result is one new frame's accepted start times, in instance order,
// parallel to its NewFrameInput.Instances.
type Result struct {
	FrameID int
	Starts  []int64
}

// Run pre-populates an Allocator from fixed and shp, then places every
// newFrames entry in input order — spec §4.5's "inter-frame: the
// input order, no global priority, no backtracking". The first
// instance that cannot be placed fails the whole run.
func Run(fixed []FixedFrame, shp model.SHP, hyperperiod int64, newFrames []NewFrameInput) ([]Result, error) {
	a := NewAllocator()
	for _, f := range fixed {
		for _, inst := range f.Instances {
			a.Reserve(inst.Start, inst.Duration)
		}
	}
	a.ReserveSHP(shp, hyperperiod)

	results := make([]Result, 0, len(newFrames))
	for _, nf := range newFrames {
		starts := make([]int64, len(nf.Instances))
		for i, b := range nf.Instances {
			s, err := a.Place(b.Min, b.Max, b.Duration)
			if err != nil {
				return nil, fmt.Errorf("patch: frame %d instance %d: %w", nf.FrameID, i, err)
			}
			starts[i] = s
		}
		results = append(results, Result{FrameID: nf.FrameID, Starts: starts})
	}

	return results, nil
}
