package session

import (
	"fmt"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/patch"
)

// PatchSession drives the Patch Engine through the same state machine
// as Session, with its own Loaded (patch input: fixed frames, SHP,
// new-frame bounds) and Prepared (input sanity, no solver model to
// build — the allocator is backend-free).
type PatchSession struct {
	ID    string
	state State
	log   log.Interface

	fixed       []patch.FixedFrame
	shp         model.SHP
	hyperperiod int64
	newFrames   []patch.NewFrameInput

	Results []patch.Result
}

// NewPatchSession creates an Empty patch session.
func NewPatchSession() *PatchSession {
	return &PatchSession{ID: uuid.NewString(), state: Empty, log: log.Log}
}

// State returns the session's current state.
func (s *PatchSession) State() State { return s.state }

func (s *PatchSession) transition(to State) {
	s.log.WithField("session", s.ID).WithField("from", s.state.String()).WithField("to", to.String()).Info("patch session: transition")
	s.state = to
}

func (s *PatchSession) fail(err error) error {
	s.transition(Failed)

	return err
}

// Load stores the patch input, moving Empty -> Loaded.
func (s *PatchSession) Load(fixed []patch.FixedFrame, shp model.SHP, hyperperiod int64, newFrames []patch.NewFrameInput) error {
	if s.state != Empty {
		return fmt.Errorf("session: patch load from %s: %w", s.state, ErrInvalidTransition)
	}
	if hyperperiod <= 0 {
		return s.fail(fmt.Errorf("session: patch load: non-positive hyperperiod %d", hyperperiod))
	}

	s.fixed = fixed
	s.shp = shp
	s.hyperperiod = hyperperiod
	s.newFrames = newFrames
	s.transition(Loaded)

	return nil
}

// Prepare validates the loaded input is solvable in principle (every
// new frame carries at least one instance), moving Loaded -> Prepared.
func (s *PatchSession) Prepare() error {
	if s.state != Loaded {
		return fmt.Errorf("session: patch prepare from %s: %w", s.state, ErrInvalidTransition)
	}
	for _, nf := range s.newFrames {
		if len(nf.Instances) == 0 {
			return s.fail(fmt.Errorf("session: patch prepare: frame %d has no instances", nf.FrameID))
		}
	}

	s.transition(Prepared)

	return nil
}

// Solve runs the greedy allocator, moving Prepared -> Solving ->
// Solved (or Failed on ErrPatchInfeasible).
func (s *PatchSession) Solve() error {
	if s.state != Prepared {
		return fmt.Errorf("session: patch solve from %s: %w", s.state, ErrInvalidTransition)
	}
	s.transition(Solving)

	results, err := patch.Run(s.fixed, s.shp, s.hyperperiod, s.newFrames)
	if err != nil {
		return s.fail(fmt.Errorf("session: patch solve: %w", err))
	}

	s.Results = results
	s.transition(Solved)

	return nil
}

// Verify moves Solved -> Verified. The allocator's no-backtracking
// greedy placement is correct by construction whenever Solve succeeds
// — there is no further invariant for the deterministic verifier to
// recheck beyond what Solve already guarantees.
func (s *PatchSession) Verify() error {
	if s.state != Solved {
		return fmt.Errorf("session: patch verify from %s: %w", s.state, ErrInvalidTransition)
	}
	s.transition(Verified)

	return nil
}
