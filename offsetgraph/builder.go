package offsetgraph

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/timemodel"
)

// BuildFrame materializes f's per-link Offset arena from its
// receivers' paths. For every hop in every path, it fetches-or-creates
// the Offset for that link in f.Offsets (so two paths sharing a link
// resolve to the same Offset object) and records the per-path
// reference list used later for path-dependency constraints.
//
// durations must carry a renormalized (frame, link) duration for
// every link any receiver's path traverses; hyperperiod is the global
// hyperperiod in timeslot units.
func BuildFrame(f *model.Frame, durations *timemodel.Result, hyperperiod int64) error {
	if f.Offsets == nil {
		f.Offsets = model.NewOffsetSet()
	}
	numInstances := f.NumInstances(hyperperiod)

	for i := range f.Receivers {
		refs := make([]int, len(f.Receivers[i].Path))
		for hop, linkID := range f.Receivers[i].Path {
			dur, ok := durations.DurationOf(f.ID, linkID)
			if !ok {
				return fmt.Errorf("offsetgraph: frame %d link %d: %w", f.ID, linkID, ErrMissingDuration)
			}
			idx, created := f.Offsets.GetOrCreate(linkID, numInstances, 1)
			if created {
				f.Offsets.At(idx).Time = dur
			}
			refs[hop] = idx
		}
		f.Receivers[i].SetOffsetRefs(refs)
	}

	return nil
}

// BuildReservation constructs the synthetic SHP reservation frame: one
// Offset per link id in [0, maxLinkID], with every instance's value
// pre-filled to k*shp.Period and duration fixed to shp.Duration.
// Per spec §9 open question (a), the arena is sized to exactly
// maxLinkID+1 slots — one per link id, dense and zero-based.
func BuildReservation(topo *model.Topology, shp model.SHP, hyperperiod int64) (*model.Frame, error) {
	maxLinkID, any := topo.MaxLinkID()
	if !any {
		return nil, ErrNoLinks
	}

	frame := &model.Frame{
		ID:            model.ReservationFrameID,
		IsReservation: true,
		Period:        shp.Period,
		Deadline:      shp.Period,
		Offsets:       model.NewOffsetSet(),
	}
	numInstances := shp.NumInstances(hyperperiod)

	for linkID := 0; linkID <= maxLinkID; linkID++ {
		idx, _ := frame.Offsets.GetOrCreate(linkID, numInstances, 1)
		o := frame.Offsets.At(idx)
		o.Time = shp.Duration
		for k := 0; k < numInstances; k++ {
			o.Value[k][0] = int64(k) * shp.Period
		}
	}

	return frame, nil
}
