package optimize

import (
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/patch"
)

// buildFixedFrame builds a single-link model.Frame carrying fr's
// already-known transmission times, ready for pinning.
func buildFixedFrame(fr patch.FixedFrame, linkID int) *model.Frame {
	// IsReservation carries no SHP-specific meaning here; it only tells
	// EmitContentionFreeConstraints that this synthetic frame has no
	// Start/Period/Deadline to prune windows against, since its cells
	// are already-known constants rather than a periodic domain.
	f := &model.Frame{ID: fr.FrameID, IsReservation: true, Offsets: model.NewOffsetSet()}
	idx, _ := f.Offsets.GetOrCreate(linkID, len(fr.Instances), 1)
	o := f.Offsets.At(idx)
	if len(fr.Instances) > 0 {
		o.Time = fr.Instances[0].Duration
	}
	for i, inst := range fr.Instances {
		o.Value[i][0] = inst.Start
	}

	return f
}

// buildNewFrame builds a single-link model.Frame for nf with
// MinOffset/MaxOffset populated from its patch-time bounds, Value left
// unset until the solve completes.
func buildNewFrame(nf patch.NewFrameInput, linkID int) *model.Frame {
	// See buildFixedFrame: disables windowsOverlap pruning, since this
	// frame's instances are bounded by patch-time [min, max] windows
	// rather than a Start/Period/Deadline domain.
	f := &model.Frame{ID: nf.FrameID, IsReservation: true, Offsets: model.NewOffsetSet()}
	idx, _ := f.Offsets.GetOrCreate(linkID, len(nf.Instances), 1)
	o := f.Offsets.At(idx)
	if len(nf.Instances) > 0 {
		o.Time = nf.Instances[0].Duration
	}
	for i, b := range nf.Instances {
		o.MinOffset[i][0] = b.Min
		o.MaxOffset[i][0] = b.Max
	}

	return f
}

// buildSHPFrame builds the single-link pinned reservation frame for
// linkID, or nil if shp is inactive.
func buildSHPFrame(shp model.SHP, linkID int, hyperperiod int64) *model.Frame {
	if !shp.Active() {
		return nil
	}
	f := &model.Frame{
		ID:            model.ReservationFrameID,
		IsReservation: true,
		Period:        shp.Period,
		Deadline:      shp.Period,
		Offsets:       model.NewOffsetSet(),
	}
	n := shp.NumInstances(hyperperiod)
	idx, _ := f.Offsets.GetOrCreate(linkID, n, 1)
	o := f.Offsets.At(idx)
	o.Time = shp.Duration
	for k := 0; k < n; k++ {
		o.Value[k][0] = int64(k) * shp.Period
	}

	return f
}
