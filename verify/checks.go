package verify

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/model"
)

// checkBounds verifies every solved cell of f lies within the
// [MinOffset, MaxOffset] window the constraint model emitted for it.
func checkBounds(f *model.Frame) error {
	for _, o := range f.Offsets.Iterate() {
		for i := 0; i < o.NumInstances; i++ {
			for r := 0; r < o.NumReplicas; r++ {
				v := o.Value[i][r]
				lb, ub := o.MinOffset[i][r], o.MaxOffset[i][r]
				if v < lb || v > ub {
					return fmt.Errorf("frame %d link %d instance %d replica %d: value %d outside [%d, %d]: %w",
						f.ID, o.LinkID, i, r, v, lb, ub, ErrScheduleInvalid)
				}
			}
		}
	}

	return nil
}

// interval is one occupied half-open window [Start, Start+Dur) on a
// link, tagged with the owning frame for error reporting.
type interval struct {
	FrameID int
	LinkID  int
	Start   int64
	Dur     int64
}

func (iv interval) end() int64 { return iv.Start + iv.Dur }

func (a interval) overlaps(b interval) bool {
	return a.Start < b.end() && b.Start < a.end()
}

// collectIntervals flattens every (instance, replica) cell of f's
// offsets into half-open intervals, one list per link.
func collectIntervals(f *model.Frame) []interval {
	var out []interval
	for _, o := range f.Offsets.Iterate() {
		for i := 0; i < o.NumInstances; i++ {
			for r := 0; r < o.NumReplicas; r++ {
				out = append(out, interval{FrameID: f.ID, LinkID: o.LinkID, Start: o.Value[i][r], Dur: o.Time})
			}
		}
	}

	return out
}

// checkNonOverlap verifies that no two intervals sharing a link
// overlap, across the whole traffic set plus the optional SHP
// reservation frame.
func checkNonOverlap(traffic *model.Traffic, shpFrame *model.Frame) error {
	var all []interval
	for _, f := range traffic.Frames() {
		all = append(all, collectIntervals(f)...)
	}
	if shpFrame != nil {
		all = append(all, collectIntervals(shpFrame)...)
	}

	byLink := make(map[int][]interval)
	for _, iv := range all {
		byLink[iv.LinkID] = append(byLink[iv.LinkID], iv)
	}

	for linkID, ivs := range byLink {
		for i := 0; i < len(ivs); i++ {
			for j := i + 1; j < len(ivs); j++ {
				if ivs[i].FrameID == ivs[j].FrameID {
					continue // same frame's own cells never contend with each other
				}
				if ivs[i].overlaps(ivs[j]) {
					return fmt.Errorf("link %d: frame %d [%d, %d) overlaps frame %d [%d, %d): %w",
						linkID, ivs[i].FrameID, ivs[i].Start, ivs[i].end(),
						ivs[j].FrameID, ivs[j].Start, ivs[j].end(), ErrScheduleInvalid)
				}
			}
		}
	}

	return nil
}

// checkPathDependency verifies, for every receiver of f and every
// adjacent hop pair, that next - current >= dur(current) +
// switchMinTime for every instance — the base invariant the
// constraint model's FrameDist-bearing inequality always implies,
// since FrameDist >= 0.
func checkPathDependency(f *model.Frame, switchMinTime int64) error {
	for _, recv := range f.Receivers {
		refs := recv.OffsetRefs()
		for hop := 0; hop < len(refs)-1; hop++ {
			cur := f.Offsets.At(refs[hop])
			next := f.Offsets.At(refs[hop+1])
			for i := 0; i < cur.NumInstances; i++ {
				gap := next.Value[i][0] - cur.Value[i][0]
				required := cur.Time + switchMinTime
				if gap < required {
					return fmt.Errorf("frame %d receiver %d hop %d instance %d: gap %d < required %d: %w",
						f.ID, recv.ReceiverID, hop, i, gap, required, ErrScheduleInvalid)
				}
			}
		}
	}

	return nil
}

// checkEndToEnd verifies, for every receiver of f, the end-to-end
// budget last - first <= end_to_end - dur(first) when f.EndToEnd > 0.
func checkEndToEnd(f *model.Frame) error {
	if f.EndToEnd == 0 {
		return nil
	}

	for _, recv := range f.Receivers {
		refs := recv.OffsetRefs()
		first := f.Offsets.At(refs[0])
		last := f.Offsets.At(refs[len(refs)-1])
		for i := 0; i < first.NumInstances; i++ {
			span := last.Value[i][0] - first.Value[i][0]
			budget := f.EndToEnd - first.Time
			if span > budget {
				return fmt.Errorf("frame %d receiver %d instance %d: end-to-end span %d exceeds budget %d: %w",
					f.ID, recv.ReceiverID, i, span, budget, ErrScheduleInvalid)
			}
		}
	}

	return nil
}
