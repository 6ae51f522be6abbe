package constraint

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/model"
)

// EmitPathDependencyConstraints emits, for every receiver of f and
// every adjacent hop pair (l, l') on that receiver's path, the
// ordering constraint
//
//	x(l', i, 0) - x(l, i, 0) - FrameDist(F) >= dur(F, l) + switchMinTime
//
// for every instance i. Per spec §3/§8, a receiver whose path has a
// single hop contributes no constraints here — the loop below is
// simply empty for it.
//
// Only replica 0 carries the path-dependency chain; replicas beyond 0
// are redundant transmissions of the same hop and do not participate
// in inter-hop ordering.
func (m *Model) EmitPathDependencyConstraints(f *model.Frame) error {
	fd, ok := m.frameDist[f.ID]
	if !ok {
		return fmt.Errorf("constraint: frame %d: %w", f.ID, ErrUnknownFrame)
	}

	for _, recv := range f.Receivers {
		refs := recv.OffsetRefs()
		if len(refs) == 0 {
			return fmt.Errorf("constraint: frame %d receiver %d: %w", f.ID, recv.ReceiverID, ErrEmptyPath)
		}
		for hop := 0; hop < len(refs)-1; hop++ {
			cur := f.Offsets.At(refs[hop])
			next := f.Offsets.At(refs[hop+1])
			for i := 0; i < cur.NumInstances; i++ {
				name := fmt.Sprintf("pathdep_f%d_r%d_h%d_i%d", f.ID, recv.ReceiverID, hop, i)
				terms := []backend.Term{
					{Var: next.Var[i][0], Coeff: 1},
					{Var: cur.Var[i][0], Coeff: -1},
					{Var: fd, Coeff: -1},
				}
				rhs := float64(cur.Time + m.cfg.SwitchMinTime)
				if _, err := m.backend.AddLinearConstraint(name, terms, backend.GE, rhs); err != nil {
					return fmt.Errorf("constraint: %s: %w", name, err)
				}
			}
		}
	}

	return nil
}

// EmitEndToEndConstraints emits, for every receiver of f and every
// instance i:
//
//   - the start-slack constraint: x(first, i, 0) - FrameDist(F) >= F.Start + i*Period
//   - the deadline-slack constraint: x(last, i, 0) + FrameDist(F) <= F.Deadline - dur(last) + i*Period
//   - when F.EndToEnd > 0, the end-to-end budget itself:
//     x(last, i, 0) - x(first, i, 0) <= F.EndToEnd - dur(first)
//
// The third constraint is the one spec §9 open question (c) scopes to
// F.EndToEnd > 0; the first two are unconditional, since FrameDist is
// always bounded (see EmitFrameVariables) and always needs somewhere
// to "spend" its slack.
func (m *Model) EmitEndToEndConstraints(f *model.Frame) error {
	fd, ok := m.frameDist[f.ID]
	if !ok {
		return fmt.Errorf("constraint: frame %d: %w", f.ID, ErrUnknownFrame)
	}

	for _, recv := range f.Receivers {
		refs := recv.OffsetRefs()
		if len(refs) == 0 {
			return fmt.Errorf("constraint: frame %d receiver %d: %w", f.ID, recv.ReceiverID, ErrEmptyPath)
		}
		first := f.Offsets.At(refs[0])
		last := f.Offsets.At(refs[len(refs)-1])

		for i := 0; i < first.NumInstances; i++ {
			startName := fmt.Sprintf("e2estart_f%d_r%d_i%d", f.ID, recv.ReceiverID, i)
			startTerms := []backend.Term{{Var: first.Var[i][0], Coeff: 1}, {Var: fd, Coeff: -1}}
			if _, err := m.backend.AddLinearConstraint(startName, startTerms, backend.GE, float64(f.Start+int64(i)*f.Period)); err != nil {
				return fmt.Errorf("constraint: %s: %w", startName, err)
			}

			deadlineName := fmt.Sprintf("e2edeadline_f%d_r%d_i%d", f.ID, recv.ReceiverID, i)
			deadlineTerms := []backend.Term{{Var: last.Var[i][0], Coeff: 1}, {Var: fd, Coeff: 1}}
			deadlineRHS := float64(f.Deadline - last.Time + int64(i)*f.Period)
			if _, err := m.backend.AddLinearConstraint(deadlineName, deadlineTerms, backend.LE, deadlineRHS); err != nil {
				return fmt.Errorf("constraint: %s: %w", deadlineName, err)
			}

			if f.EndToEnd > 0 {
				budgetName := fmt.Sprintf("e2ebudget_f%d_r%d_i%d", f.ID, recv.ReceiverID, i)
				budgetTerms := []backend.Term{{Var: last.Var[i][0], Coeff: 1}, {Var: first.Var[i][0], Coeff: -1}}
				budgetRHS := float64(f.EndToEnd - first.Time)
				if _, err := m.backend.AddLinearConstraint(budgetName, budgetTerms, backend.LE, budgetRHS); err != nil {
					return fmt.Errorf("constraint: %s: %w", budgetName, err)
				}
			}
		}
	}

	return nil
}
