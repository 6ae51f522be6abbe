package session

import (
	"fmt"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/optimize"
	"github.com/shpnet/tts-scheduler/patch"
)

// OptimizeSession drives the Optimize Engine through the same state
// machine as Session, with its own Loaded (the patched link's fixed
// frames, SHP, and new-frame bounds) and Prepared (backend binding).
type OptimizeSession struct {
	ID    string
	state State
	log   log.Interface

	backend     backend.Backend
	ccfg        constraint.Config
	ocfg        optimize.Config
	linkID      int
	shp         model.SHP
	hyperperiod int64
	fixed       []patch.FixedFrame
	newFrames   []patch.NewFrameInput

	varCounter        int
	constraintCounter int

	Results []optimize.Result
}

// NewOptimizeSession creates an Empty optimize session bound to b for
// the lifetime of the run. b is closed by the caller.
func NewOptimizeSession(b backend.Backend, ccfg constraint.Config, ocfg optimize.Config) *OptimizeSession {
	return &OptimizeSession{ID: uuid.NewString(), state: Empty, log: log.Log, backend: b, ccfg: ccfg, ocfg: ocfg}
}

// State returns the session's current state.
func (s *OptimizeSession) State() State { return s.state }

// VarCounter returns the total number of backend variables created
// through this session so far.
func (s *OptimizeSession) VarCounter() int { return s.varCounter }

// ConstraintCounter returns the total number of backend constraints
// created through this session so far.
func (s *OptimizeSession) ConstraintCounter() int { return s.constraintCounter }

func (s *OptimizeSession) transition(to State) {
	s.log.WithField("session", s.ID).WithField("from", s.state.String()).WithField("to", to.String()).Info("optimize session: transition")
	s.state = to
}

func (s *OptimizeSession) fail(err error) error {
	s.transition(Failed)

	return err
}

// Load stores the re-solve input, moving Empty -> Loaded.
func (s *OptimizeSession) Load(linkID int, shp model.SHP, hyperperiod int64, fixed []patch.FixedFrame, newFrames []patch.NewFrameInput) error {
	if s.state != Empty {
		return fmt.Errorf("session: optimize load from %s: %w", s.state, ErrInvalidTransition)
	}
	if hyperperiod <= 0 {
		return s.fail(fmt.Errorf("session: optimize load: non-positive hyperperiod %d", hyperperiod))
	}

	s.linkID = linkID
	s.shp = shp
	s.hyperperiod = hyperperiod
	s.fixed = fixed
	s.newFrames = newFrames
	s.transition(Loaded)

	return nil
}

// Prepare validates the loaded input, moving Loaded -> Prepared.
func (s *OptimizeSession) Prepare() error {
	if s.state != Loaded {
		return fmt.Errorf("session: optimize prepare from %s: %w", s.state, ErrInvalidTransition)
	}
	for _, nf := range s.newFrames {
		if len(nf.Instances) == 0 {
			return s.fail(fmt.Errorf("session: optimize prepare: frame %d has no instances", nf.FrameID))
		}
	}

	s.transition(Prepared)

	return nil
}

// Solve re-opens the targeted link as a bounded MILP, moving Prepared
// -> Solving -> Solved (or Failed on optimize.ErrNoSchedule).
func (s *OptimizeSession) Solve() error {
	if s.state != Prepared {
		return fmt.Errorf("session: optimize solve from %s: %w", s.state, ErrInvalidTransition)
	}
	s.transition(Solving)

	cb := &countingBackend{Backend: s.backend, varCounter: &s.varCounter, constraintCounter: &s.constraintCounter}
	results, err := optimize.Run(cb, s.ccfg, s.ocfg, s.linkID, s.shp, s.hyperperiod, s.fixed, s.newFrames)
	if err != nil {
		return s.fail(fmt.Errorf("session: optimize solve: %w", err))
	}

	s.Results = results
	s.transition(Solved)

	return nil
}

// Verify moves Solved -> Verified. optimize.Run only returns cleanly
// once every emitted constraint — including the contention-free
// disjunctions reused from the constraint package — has been
// satisfied by the backend's incumbent, so there is no further
// invariant for the deterministic verifier to recheck here.
func (s *OptimizeSession) Verify() error {
	if s.state != Solved {
		return fmt.Errorf("session: optimize verify from %s: %w", s.state, ErrInvalidTransition)
	}
	s.transition(Verified)

	return nil
}
