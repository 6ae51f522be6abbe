package strategy

import (
	"context"
	"fmt"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
)

// Incremental drives the batched solve-and-pin loop of spec §4.4: K
// frames at a time, fresh LinkDist(ℓ) per touched link per iteration,
// pinning each solved batch before advancing. shpFrame's variables (if
// non-nil) are introduced once, in the first iteration.
//
// Returns *IterationError wrapping ErrNoSchedule if any iteration's
// solve has no incumbent. cfg.Limiter, if set, is waited on before
// every iteration's Optimize call.
func Incremental(ctx context.Context, b backend.Backend, cfg Config, ccfg constraint.Config, traffic *model.Traffic, shpFrame *model.Frame, hyperperiod int64) error {
	k := cfg.K
	if k <= 0 {
		k = 1
	}
	m := constraint.New(b, ccfg)

	frames := traffic.Frames()
	introduced := make([]*model.Frame, 0, len(frames)+1)
	if shpFrame != nil {
		if err := m.EmitSHPVariables(shpFrame); err != nil {
			return fmt.Errorf("strategy: incremental SHP variables: %w", err)
		}
		introduced = append(introduced, shpFrame)
	}

	for iter, cursor := 0, 0; cursor < len(frames); iter, cursor = iter+1, cursor+k {
		end := cursor + k
		if end > len(frames) {
			end = len(frames)
		}
		batch := frames[cursor:end]

		if err := emitBatch(m, batch, hyperperiod); err != nil {
			return &IterationError{Iteration: iter, Err: err}
		}
		if err := emitBatchContention(m, introduced, batch, hyperperiod); err != nil {
			return &IterationError{Iteration: iter, Err: err}
		}
		introduced = append(introduced, batch...)

		if cfg.Limiter != nil {
			if err := cfg.Limiter.Wait(ctx); err != nil {
				return &IterationError{Iteration: iter, Err: err}
			}
		}

		if err := b.Update(); err != nil {
			return &IterationError{Iteration: iter, Err: err}
		}
		status, err := b.Optimize(cfg.TimeLimitSeconds, cfg.MipGap)
		if err != nil {
			return &IterationError{Iteration: iter, Err: err}
		}
		if status == backend.NoIncumbent || status == backend.Infeasible {
			return &IterationError{Iteration: iter, Err: ErrNoSchedule}
		}

		for _, f := range batch {
			if err := readback(b, f); err != nil {
				return &IterationError{Iteration: iter, Err: err}
			}
			if err := pin(m, f); err != nil {
				return &IterationError{Iteration: iter, Err: err}
			}
		}
	}

	return nil
}

func emitBatch(m *constraint.Model, batch []*model.Frame, hyperperiod int64) error {
	for _, f := range batch {
		if err := m.EmitFrameVariables(f, hyperperiod); err != nil {
			return fmt.Errorf("frame %d variables: %w", f.ID, err)
		}
		if err := m.EmitPathDependencyConstraints(f); err != nil {
			return fmt.Errorf("frame %d path dependency: %w", f.ID, err)
		}
		if err := m.EmitEndToEndConstraints(f); err != nil {
			return fmt.Errorf("frame %d end-to-end: %w", f.ID, err)
		}
	}

	return nil
}

// emitBatchContention emits contention-free constraints between every
// batch frame and every previously-introduced frame sharing a link,
// plus among batch frames themselves (i<j), one fresh LinkDist per
// link actually touched this iteration.
func emitBatchContention(m *constraint.Model, introduced, batch []*model.Frame, hyperperiod int64) error {
	linkDist := make(map[int]backend.VarHandle)
	linkDistFor := func(l int) (backend.VarHandle, error) {
		if ld, ok := linkDist[l]; ok {
			return ld, nil
		}
		ld, err := m.NewLinkDistVar(l, hyperperiod)
		if err != nil {
			return 0, err
		}
		linkDist[l] = ld

		return ld, nil
	}

	for _, n := range batch {
		for _, e := range introduced {
			for _, l := range sharedLinks(n, e) {
				ld, err := linkDistFor(l)
				if err != nil {
					return err
				}
				if err := m.EmitContentionFreeConstraints(e, n, l, ld); err != nil {
					return err
				}
			}
		}
	}
	for i := 0; i < len(batch); i++ {
		for j := i + 1; j < len(batch); j++ {
			for _, l := range sharedLinks(batch[i], batch[j]) {
				ld, err := linkDistFor(l)
				if err != nil {
					return err
				}
				if err := m.EmitContentionFreeConstraints(batch[i], batch[j], l, ld); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
