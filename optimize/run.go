package optimize

import (
	"fmt"
	"math"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/patch"
)

// Config holds the solver parameters and incremental batch size for
// Run, mirroring strategy.Config's fields for the single-link case.
type Config struct {
	K                int
	TimeLimitSeconds float64
	MipGap           float64
}

// DefaultConfig returns K=1, solve-to-optimality, unbounded time.
func DefaultConfig() Config {
	return Config{K: 1, TimeLimitSeconds: 0, MipGap: 0}
}

// Result is one new frame's re-solved per-instance start times, in
// instance order — the optimize-engine counterpart of patch.Result.
type Result struct {
	FrameID int
	Starts  []int64
}

// Run re-opens linkID as a MILP: fixed and shp are pinned to their
// known values, each newFrames entry is bounded by its patch-time
// [min, max] window, and the frames are solved and pinned cfg.K at a
// time, reusing the contention-free formulation from the constraint
// package between every pair of frames (new-new, new-fixed, new-shp)
// sharing linkID.
func Run(b backend.Backend, ccfg constraint.Config, cfg Config, linkID int, shp model.SHP, hyperperiod int64, fixed []patch.FixedFrame, newFrames []patch.NewFrameInput) ([]Result, error) {
	k := cfg.K
	if k <= 0 {
		k = 1
	}
	m := constraint.New(b, ccfg)

	introduced := make([]*model.Frame, 0, len(fixed)+len(newFrames)+1)
	for _, fr := range fixed {
		f := buildFixedFrame(fr, linkID)
		if err := pinFixed(b, f); err != nil {
			return nil, fmt.Errorf("optimize: fixed frame %d: %w", fr.FrameID, err)
		}
		introduced = append(introduced, f)
	}
	if shpFrame := buildSHPFrame(shp, linkID, hyperperiod); shpFrame != nil {
		if err := pinFixed(b, shpFrame); err != nil {
			return nil, fmt.Errorf("optimize: SHP reservation: %w", err)
		}
		introduced = append(introduced, shpFrame)
	}

	built := make([]*model.Frame, len(newFrames))
	for i, nf := range newFrames {
		built[i] = buildNewFrame(nf, linkID)
	}

	fdCoeff := make(map[int]backend.VarHandle, len(built))

	for cursor := 0; cursor < len(built); cursor += k {
		end := cursor + k
		if end > len(built) {
			end = len(built)
		}
		batch := built[cursor:end]

		for _, f := range batch {
			fd, err := emitNewFrame(b, f, ccfg)
			if err != nil {
				return nil, fmt.Errorf("optimize: frame %d: %w", f.ID, err)
			}
			fdCoeff[f.ID] = fd
		}

		ld, err := m.NewLinkDistVar(linkID, hyperperiod)
		if err != nil {
			return nil, fmt.Errorf("optimize: link %d LinkDist: %w", linkID, err)
		}
		for _, n := range batch {
			for _, e := range introduced {
				if err := m.EmitContentionFreeConstraints(e, n, linkID, ld); err != nil {
					return nil, fmt.Errorf("optimize: contention %d/%d: %w", e.ID, n.ID, err)
				}
			}
		}
		for i := 0; i < len(batch); i++ {
			for j := i + 1; j < len(batch); j++ {
				if err := m.EmitContentionFreeConstraints(batch[i], batch[j], linkID, ld); err != nil {
					return nil, fmt.Errorf("optimize: contention %d/%d: %w", batch[i].ID, batch[j].ID, err)
				}
			}
		}
		introduced = append(introduced, batch...)

		if err := b.Update(); err != nil {
			return nil, fmt.Errorf("optimize: update: %w", err)
		}
		status, err := b.Optimize(cfg.TimeLimitSeconds, cfg.MipGap)
		if err != nil {
			return nil, fmt.Errorf("optimize: solve: %w", err)
		}
		if status == backend.NoIncumbent || status == backend.Infeasible {
			return nil, ErrNoSchedule
		}

		for _, f := range batch {
			if err := readbackAndPin(b, f, fdCoeff[f.ID]); err != nil {
				return nil, fmt.Errorf("optimize: frame %d readback: %w", f.ID, err)
			}
		}
	}

	results := make([]Result, len(built))
	for i, f := range built {
		o := f.Offsets.Iterate()[0]
		starts := make([]int64, len(o.Value))
		for inst := range o.Value {
			starts[inst] = o.Value[inst][0]
		}
		results[i] = Result{FrameID: f.ID, Starts: starts}
	}

	return results, nil
}

// pinFixed creates one pinned (lb=ub=value) backend variable per
// instance of f's single offset.
func pinFixed(b backend.Backend, f *model.Frame) error {
	o := f.Offsets.Iterate()[0]
	for i := range o.Value {
		pinned := float64(o.Value[i][0])
		v, err := b.AddVariable(fmt.Sprintf("fix_f%d_i%d", f.ID, i), pinned, pinned, true)
		if err != nil {
			return err
		}
		o.Var[i][0] = v
	}

	return nil
}

// emitNewFrame creates f's bounded decision variables and its
// FrameDist(F) slack (upper bound = the widest per-instance max-min
// window), plus the start/deadline slack constraints per spec §4.6.
func emitNewFrame(b backend.Backend, f *model.Frame, ccfg constraint.Config) (backend.VarHandle, error) {
	o := f.Offsets.Iterate()[0]
	var maxSlack int64
	for i := range o.Value {
		lb, ub := o.MinOffset[i][0], o.MaxOffset[i][0]
		v, err := b.AddVariable(fmt.Sprintf("opt_f%d_i%d", f.ID, i), float64(lb), float64(ub), true)
		if err != nil {
			return 0, err
		}
		o.Var[i][0] = v
		if slack := ub - lb; slack > maxSlack {
			maxSlack = slack
		}
	}

	fd, err := b.AddVariable(fmt.Sprintf("opt_fd_f%d", f.ID), 0, float64(maxSlack), true)
	if err != nil {
		return 0, err
	}
	if err := b.SetObjectiveCoefficient(fd, ccfg.FrameWeight); err != nil {
		return 0, err
	}

	for i := range o.Value {
		lb, ub := o.MinOffset[i][0], o.MaxOffset[i][0]
		startName := fmt.Sprintf("opt_start_f%d_i%d", f.ID, i)
		if _, err := b.AddLinearConstraint(startName, []backend.Term{{Var: o.Var[i][0], Coeff: 1}, {Var: fd, Coeff: -1}}, backend.GE, float64(lb)); err != nil {
			return 0, err
		}
		deadlineName := fmt.Sprintf("opt_deadline_f%d_i%d", f.ID, i)
		if _, err := b.AddLinearConstraint(deadlineName, []backend.Term{{Var: o.Var[i][0], Coeff: 1}, {Var: fd, Coeff: 1}}, backend.LE, float64(ub)); err != nil {
			return 0, err
		}
	}

	return fd, nil
}

// readbackAndPin copies f's solved values back into its Offset cells,
// then re-pins each variable's bounds to the solved value and zeros
// fd's objective coefficient — spec §4.4 step 4, reused for optimize's
// own batching.
func readbackAndPin(b backend.Backend, f *model.Frame, fd backend.VarHandle) error {
	o := f.Offsets.Iterate()[0]
	for i := range o.Value {
		v, err := b.GetValue(o.Var[i][0])
		if err != nil {
			return err
		}
		val := int64(math.Round(v))
		o.Value[i][0] = val
		if err := b.SetBounds(o.Var[i][0], float64(val), float64(val)); err != nil {
			return err
		}
	}

	return b.SetObjectiveCoefficient(fd, 0)
}
