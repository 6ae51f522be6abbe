package constraint

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/model"
)

// windowsOverlap decides whether frame a's instance ai and frame b's
// instance bi could ever be transmitting at the same time, using the
// literal active-window formula from spec §4.3: window(F, i) =
// [F.Start+1, F.Deadline+1) + i*F.Period. It is a pruning filter only
// — skipping a non-overlapping pair is always safe, and a false
// positive here just emits a redundant (but still correct) disjunction.
func windowsOverlap(aStart, aDeadline, aPeriod int64, ai int, bStart, bDeadline, bPeriod int64, bi int) bool {
	aLo := aStart + 1 + int64(ai)*aPeriod
	aHi := aDeadline + 1 + int64(ai)*aPeriod
	bLo := bStart + 1 + int64(bi)*bPeriod
	bHi := bDeadline + 1 + int64(bi)*bPeriod

	return aLo < bHi && bLo < aHi
}

// EmitContentionFreeConstraints emits the pairwise disjunctive
// constraint set for every (instance, replica) cell pair of f1 and f2
// that share linkID, per spec §4.3:
//
//	b1, b2 binary, b1 + b2 >= 1  (AddOr)
//	b1 => x(f2) - x(f1) - LinkDist(l) >= dur(f1, l)
//	b2 => x(f1) - x(f2) - LinkDist(l) >= dur(f2, l)
//
// linkDist is the link's current LinkDist(l) variable (see
// NewLinkDistVar). f1 and f2 must be distinct frames — callers iterate
// distinct pairs; self-pairs are not this function's concern.
//
// When neither frame is the SHP reservation frame, windowsOverlap
// prunes instance pairs that provably never coincide. When either
// frame is the reservation frame (pinned, fixed cells), every instance
// pair is emitted unconditionally — conservative, since the
// reservation's window shape does not line up with the normal-frame
// formula and over-constraining here never changes feasibility (the
// reservation side is a constant).
func (m *Model) EmitContentionFreeConstraints(f1, f2 *model.Frame, linkID int, linkDist backend.VarHandle) error {
	idx1, ok1 := f1.Offsets.Lookup(linkID)
	idx2, ok2 := f2.Offsets.Lookup(linkID)
	if !ok1 || !ok2 {
		return nil // neither path touches linkID in common; nothing to emit
	}
	o1 := f1.Offsets.At(idx1)
	o2 := f2.Offsets.At(idx2)

	prune := !f1.IsReservation && !f2.IsReservation

	for i1 := 0; i1 < o1.NumInstances; i1++ {
		for i2 := 0; i2 < o2.NumInstances; i2++ {
			if prune && !windowsOverlap(f1.Start, f1.Deadline, f1.Period, i1, f2.Start, f2.Deadline, f2.Period, i2) {
				continue
			}
			for r1 := 0; r1 < o1.NumReplicas; r1++ {
				for r2 := 0; r2 < o2.NumReplicas; r2++ {
					if err := m.emitDisjunction(f1, f2, linkID, o1, o2, i1, r1, i2, r2, linkDist); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}

func (m *Model) emitDisjunction(f1, f2 *model.Frame, linkID int, o1, o2 *model.Offset, i1, r1, i2, r2 int, linkDist backend.VarHandle) error {
	tag := fmt.Sprintf("cf_f%d_f%d_l%d_i%d%d_r%d%d", f1.ID, f2.ID, linkID, i1, i2, r1, r2)

	b1, err := m.backend.AddVariable(tag+"_b1", 0, 1, true)
	if err != nil {
		return fmt.Errorf("constraint: %s: %w", tag, err)
	}
	b2, err := m.backend.AddVariable(tag+"_b2", 0, 1, true)
	if err != nil {
		return fmt.Errorf("constraint: %s: %w", tag, err)
	}
	if _, err := m.backend.AddOr(tag+"_or", []backend.VarHandle{b1, b2}); err != nil {
		return fmt.Errorf("constraint: %s: %w", tag, err)
	}

	fwdTerms := []backend.Term{
		{Var: o2.Var[i2][r2], Coeff: 1},
		{Var: o1.Var[i1][r1], Coeff: -1},
		{Var: linkDist, Coeff: -1},
	}
	if _, err := m.backend.AddIndicator(tag+"_fwd", b1, true, fwdTerms, backend.GE, float64(o1.Time)); err != nil {
		return fmt.Errorf("constraint: %s: %w", tag, err)
	}

	revTerms := []backend.Term{
		{Var: o1.Var[i1][r1], Coeff: 1},
		{Var: o2.Var[i2][r2], Coeff: -1},
		{Var: linkDist, Coeff: -1},
	}
	if _, err := m.backend.AddIndicator(tag+"_rev", b2, true, revTerms, backend.GE, float64(o2.Time)); err != nil {
		return fmt.Errorf("constraint: %s: %w", tag, err)
	}

	return nil
}
