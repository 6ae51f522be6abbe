package patch

import (
	"fmt"

	"github.com/google/btree"

	"github.com/shpnet/tts-scheduler/model"
)

// degree is the btree's branching factor; spec §9's own design note
// asks for "a sorted balanced structure" in place of the original
// linked list, not a specific tuning, so this just picks a
// conventional default.
const degree = 32

// occupied is one [start, end) reserved interval on the targeted link.
type occupied struct{ start, end int64 }

func (o occupied) Less(than btree.Item) bool {
	return o.start < than.(occupied).start
}

// Allocator is the sorted occupied-interval set for one targeted link,
// pre-populated from fixed frames and the SHP reservation, then grown
// greedily as each new frame instance is placed.
type Allocator struct {
	tree *btree.BTree
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{tree: btree.New(degree)}
}

// Reserve marks [start, start+duration) occupied unconditionally —
// used to pre-populate fixed frames' known transmissions and the SHP
// reservation's periodic windows before any new frame is placed.
func (a *Allocator) Reserve(start, duration int64) {
	iv := occupied{start: start, end: start + duration}
	// Items are keyed by start alone, so keep the longer of two
	// same-start reservations instead of letting one replace the other.
	if prev := a.tree.Get(iv); prev != nil && prev.(occupied).end >= iv.end {
		return
	}
	a.tree.ReplaceOrInsert(iv)
}

// ReserveSHP pre-populates every SHP reservation window in
// [0, hyperperiod), per spec §4.5's "for each SHP instance k" rule.
// A no-op if shp is inactive.
func (a *Allocator) ReserveSHP(shp model.SHP, hyperperiod int64) {
	if !shp.Active() {
		return
	}
	for k := 0; k < shp.NumInstances(hyperperiod); k++ {
		a.Reserve(int64(k)*shp.Period, shp.Duration)
	}
}

// Place finds the earliest start >= min such that [start, start+dur)
// does not overlap any reserved interval, accepts it (reserving it for
// subsequent placements), and returns it. Returns ErrPatchInfeasible
// if no such start exists at or below max.
func (a *Allocator) Place(min, max, dur int64) (int64, error) {
	candidate := min
	for {
		advanceTo, overlapped := a.firstOverlapEnd(candidate, dur)
		if !overlapped {
			break
		}
		candidate = advanceTo
		if candidate > max {
			return 0, fmt.Errorf("patch: start %d exceeds max %d: %w", candidate, max, ErrPatchInfeasible)
		}
	}
	if candidate > max {
		return 0, fmt.Errorf("patch: start %d exceeds max %d: %w", candidate, max, ErrPatchInfeasible)
	}
	a.tree.ReplaceOrInsert(occupied{start: candidate, end: candidate + dur})

	return candidate, nil
}

// firstOverlapEnd scans reserved intervals in ascending start order
// and returns the furthest end among those overlapping
// [candidate, candidate+dur). Intervals are visited in start order, so
// the scan stops the instant an interval's start reaches
// candidate+dur — nothing further sorted after it can overlap.
func (a *Allocator) firstOverlapEnd(candidate, dur int64) (int64, bool) {
	var advanceTo int64
	found := false
	a.tree.Ascend(func(item btree.Item) bool {
		iv := item.(occupied)
		if iv.start >= candidate+dur {
			return false
		}
		if iv.end > candidate {
			if iv.end > advanceTo {
				advanceTo = iv.end
			}
			found = true
		}

		return true
	})

	return advanceTo, found
}
