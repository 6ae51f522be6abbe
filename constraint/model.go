package constraint

import (
	"fmt"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/model"
)

// Model accumulates the variables and constraints for one scheduling
// run against a single backend.Backend. It tracks the handles a
// strategy needs to revisit across iterations — each frame's
// FrameDist variable, and each link's *current* LinkDist variable —
// without knowing anything about one-shot vs. incremental driving.
type Model struct {
	backend backend.Backend
	cfg     Config

	frameDist map[int]backend.VarHandle // frame id -> FrameDist(F)
	linkDist  map[int]backend.VarHandle // link id -> current LinkDist(l)
}

// New returns a Model that emits onto b using cfg.
func New(b backend.Backend, cfg Config) *Model {
	return &Model{
		backend:   b,
		cfg:       cfg,
		frameDist: make(map[int]backend.VarHandle),
		linkDist:  make(map[int]backend.VarHandle),
	}
}

// FrameDistVar returns the FrameDist(F) handle for frameID, if one has
// been emitted.
func (m *Model) FrameDistVar(frameID int) (backend.VarHandle, bool) {
	v, ok := m.frameDist[frameID]

	return v, ok
}

// LinkDistVar returns the current LinkDist(l) handle for linkID, if
// one has been emitted.
func (m *Model) LinkDistVar(linkID int) (backend.VarHandle, bool) {
	v, ok := m.linkDist[linkID]

	return v, ok
}

// EmitFrameVariables creates one backend variable per (instance,
// replica) cell of every Offset f owns, bounded per spec §4.3's
// domain formula, plus f's FrameDist(F) slack variable weighted by
// cfg.FrameWeight in the objective.
//
// When f.EndToEnd == 0 (unconstrained end-to-end budget) FrameDist is
// still emitted — bounded by hyperperiod rather than by a zero budget,
// so maximizing it is never artificially capped at zero.
func (m *Model) EmitFrameVariables(f *model.Frame, hyperperiod int64) error {
	for _, o := range f.Offsets.Iterate() {
		for i := 0; i < o.NumInstances; i++ {
			for r := 0; r < o.NumReplicas; r++ {
				lb := f.Start + int64(i)*f.Period + int64(r)*o.Time
				ub := f.Deadline - o.Time + int64(i)*f.Period - int64(r)*o.Time
				name := fmt.Sprintf("x_f%d_l%d_i%d_r%d", f.ID, o.LinkID, i, r)
				v, err := m.backend.AddVariable(name, float64(lb), float64(ub), true)
				if err != nil {
					return fmt.Errorf("constraint: frame %d link %d offset var: %w", f.ID, o.LinkID, err)
				}
				o.Var[i][r] = v
				o.MinOffset[i][r] = lb
				o.MaxOffset[i][r] = ub
			}
		}
	}

	fdUpper := f.EndToEnd
	if fdUpper == 0 {
		fdUpper = hyperperiod
	}
	fd, err := m.backend.AddVariable(fmt.Sprintf("fd_f%d", f.ID), 0, float64(fdUpper), true)
	if err != nil {
		return fmt.Errorf("constraint: frame %d FrameDist var: %w", f.ID, err)
	}
	if err := m.backend.SetObjectiveCoefficient(fd, m.cfg.FrameWeight); err != nil {
		return fmt.Errorf("constraint: frame %d FrameDist objective: %w", f.ID, err)
	}
	m.frameDist[f.ID] = fd

	return nil
}

// EmitSHPVariables creates one pinned backend variable per cell of the
// synthetic reservation frame — lb == ub == the pre-filled Value,
// since SHP reservations are fixed inputs, never decision variables.
func (m *Model) EmitSHPVariables(shpFrame *model.Frame) error {
	for _, o := range shpFrame.Offsets.Iterate() {
		for i := 0; i < o.NumInstances; i++ {
			for r := 0; r < o.NumReplicas; r++ {
				pinned := float64(o.Value[i][r])
				name := fmt.Sprintf("shp_l%d_i%d_r%d", o.LinkID, i, r)
				v, err := m.backend.AddVariable(name, pinned, pinned, true)
				if err != nil {
					return fmt.Errorf("constraint: SHP link %d var: %w", o.LinkID, err)
				}
				o.Var[i][r] = v
			}
		}
	}

	return nil
}

// NewLinkDistVar creates a fresh LinkDist(l) variable bounded by
// hyperperiod, weighted by cfg.LinkWeight in the objective, and
// records it as the current LinkDist for linkID. If a previous
// LinkDist existed for this link (an earlier incremental/optimize
// iteration), its objective coefficient is zeroed first — the design
// note from spec §4.3/§4.4: each iteration gets its own copy, and
// stale copies stop contributing to the objective rather than being
// deleted (backends in this package never remove variables).
func (m *Model) NewLinkDistVar(linkID int, hyperperiod int64) (backend.VarHandle, error) {
	if old, ok := m.linkDist[linkID]; ok {
		if err := m.backend.SetObjectiveCoefficient(old, 0); err != nil {
			return 0, fmt.Errorf("constraint: link %d zero stale LinkDist: %w", linkID, err)
		}
	}
	v, err := m.backend.AddVariable(fmt.Sprintf("ld_l%d", linkID), 0, float64(hyperperiod), true)
	if err != nil {
		return 0, fmt.Errorf("constraint: link %d LinkDist var: %w", linkID, err)
	}
	if err := m.backend.SetObjectiveCoefficient(v, m.cfg.LinkWeight); err != nil {
		return 0, fmt.Errorf("constraint: link %d LinkDist objective: %w", linkID, err)
	}
	m.linkDist[linkID] = v

	return v, nil
}

// ZeroFrameDistObjective zeros frameID's FrameDist objective
// coefficient — called once a frame's offsets are pinned (incremental
// mode's step 4): its slack no longer competes for objective weight
// against frames still being solved.
func (m *Model) ZeroFrameDistObjective(frameID int) error {
	fd, ok := m.frameDist[frameID]
	if !ok {
		return fmt.Errorf("constraint: frame %d: %w", frameID, ErrUnknownFrame)
	}

	return m.backend.SetObjectiveCoefficient(fd, 0)
}

// PinOffset fixes o's (instance, replica) cell to value by collapsing
// its variable bounds to [value, value] — used by incremental mode and
// the optimize engine to carry a previously-solved or patched value
// into a later solve as a hard input rather than a decision.
func (m *Model) PinOffset(o *model.Offset, i, r int, value int64) error {
	return m.backend.SetBounds(o.Var[i][r], float64(value), float64(value))
}
