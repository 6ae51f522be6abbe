package strategy

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
)

// OneShot builds every variable and constraint for traffic (and, if
// shpFrame is non-nil, the SHP reservation) on b in a single pass,
// solves once, and reads the solution back into each frame's Offset
// cells. Returns ErrNoSchedule if the backend has no incumbent.
//
// hyperperiod is the global hyperperiod in timeslot units (see
// timemodel.Result.HyperperiodSlots).
func OneShot(b backend.Backend, cfg Config, ccfg constraint.Config, traffic *model.Traffic, shpFrame *model.Frame, hyperperiod int64) error {
	m := constraint.New(b, ccfg)

	all := make([]*model.Frame, 0, traffic.Len()+1)
	if shpFrame != nil {
		if err := m.EmitSHPVariables(shpFrame); err != nil {
			return fmt.Errorf("strategy: one-shot SHP variables: %w", err)
		}
		all = append(all, shpFrame)
	}
	for _, f := range traffic.Frames() {
		if err := m.EmitFrameVariables(f, hyperperiod); err != nil {
			return fmt.Errorf("strategy: one-shot frame %d variables: %w", f.ID, err)
		}
		if err := m.EmitPathDependencyConstraints(f); err != nil {
			return fmt.Errorf("strategy: one-shot frame %d path dependency: %w", f.ID, err)
		}
		if err := m.EmitEndToEndConstraints(f); err != nil {
			return fmt.Errorf("strategy: one-shot frame %d end-to-end: %w", f.ID, err)
		}
		all = append(all, f)
	}

	if err := emitAllContention(m, all, hyperperiod); err != nil {
		return fmt.Errorf("strategy: one-shot contention: %w", err)
	}

	if err := b.Update(); err != nil {
		return fmt.Errorf("strategy: one-shot update: %w", err)
	}
	status, err := b.Optimize(cfg.TimeLimitSeconds, cfg.MipGap)
	if err != nil {
		return fmt.Errorf("strategy: one-shot optimize: %w", err)
	}
	if status == backend.NoIncumbent || status == backend.Infeasible {
		return ErrNoSchedule
	}

	for _, f := range traffic.Frames() {
		if err := readback(b, f); err != nil {
			return fmt.Errorf("strategy: one-shot readback frame %d: %w", f.ID, err)
		}
	}

	return nil
}

// emitAllContention emits the pairwise contention-free constraint for
// every distinct pair of frames in frames (in order, i<j) that share a
// link, one fresh LinkDist(ℓ) per link actually touched.
func emitAllContention(m *constraint.Model, frames []*model.Frame, hyperperiod int64) error {
	linkDist := make(map[int]backend.VarHandle)

	for i := 0; i < len(frames); i++ {
		for j := i + 1; j < len(frames); j++ {
			for _, l := range sharedLinks(frames[i], frames[j]) {
				ld, ok := linkDist[l]
				if !ok {
					var err error
					ld, err = m.NewLinkDistVar(l, hyperperiod)
					if err != nil {
						return err
					}
					linkDist[l] = ld
				}
				if err := m.EmitContentionFreeConstraints(frames[i], frames[j], l, ld); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
