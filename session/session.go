package session

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/offsetgraph"
	"github.com/shpnet/tts-scheduler/strategy"
	"github.com/shpnet/tts-scheduler/timemodel"
	"github.com/shpnet/tts-scheduler/verify"
)

// Session drives one scheduling run — Load, Prepare, Solve, Verify —
// owning every value the reference implementation kept as a
// process-wide global (spec §9): variable/constraint counters,
// solver weights, the chosen algorithm, incremental batch size, time
// limit, MIP gap, accumulated execution time, and the active SHP
// reservation.
type Session struct {
	ID    string
	state State
	cfg   config
	log   log.Interface

	topo    *model.Topology
	traffic *model.Traffic

	backend  backend.Backend
	model    *constraint.Model
	shpFrame *model.Frame

	timing *timemodel.Result

	varCounter        int
	constraintCounter int
	ExecutionTime     time.Duration

	Report *verify.Report
}

// New creates an Empty session bound to b for the lifetime of the
// run. b is closed by the caller, not by Session.
func New(b backend.Backend, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		ID:      uuid.NewString(),
		state:   Empty,
		cfg:     cfg,
		log:     log.Log,
		backend: b,
	}
}

func (s *Session) transition(to State) {
	s.log.WithField("session", s.ID).WithField("from", s.state.String()).WithField("to", to.String()).Info("session: transition")
	s.state = to
}

func (s *Session) fail(err error) error {
	s.transition(Failed)

	return err
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// VarCounter returns the total number of backend variables created
// through this session so far.
func (s *Session) VarCounter() int { return s.varCounter }

// ConstraintCounter returns the total number of backend constraints
// created through this session so far.
func (s *Session) ConstraintCounter() int { return s.constraintCounter }

// Timing returns the Time Model result computed by Prepare, nil
// before that.
func (s *Session) Timing() *timemodel.Result { return s.timing }

// SHPFrame returns the synthetic SHP reservation frame built by
// Prepare, nil when the session carries no active SHP.
func (s *Session) SHPFrame() *model.Frame { return s.shpFrame }

// Load validates topo/traffic against each other (first-hop
// ownership) and moves Empty -> Loaded.
func (s *Session) Load(topo *model.Topology, traffic *model.Traffic) error {
	if s.state != Empty {
		return fmt.Errorf("session: load from %s: %w", s.state, ErrInvalidTransition)
	}
	for _, f := range traffic.Frames() {
		if err := f.ValidateFirstHop(topo); err != nil {
			return s.fail(fmt.Errorf("session: load: %w", err))
		}
	}

	s.topo = topo
	s.traffic = traffic
	s.transition(Loaded)

	return nil
}

// Prepare runs the Time Model and Offset Graph Builder, moving
// Loaded -> Prepared.
func (s *Session) Prepare() error {
	if s.state != Loaded {
		return fmt.Errorf("session: prepare from %s: %w", s.state, ErrInvalidTransition)
	}

	res, normalizedSHP, err := timemodel.Normalize(s.topo, s.traffic, s.cfg.shp)
	if err != nil {
		return s.fail(fmt.Errorf("session: prepare: time model: %w", err))
	}
	for _, f := range s.traffic.Frames() {
		if err := offsetgraph.BuildFrame(f, res, res.HyperperiodSlots); err != nil {
			return s.fail(fmt.Errorf("session: prepare: offset graph frame %d: %w", f.ID, err))
		}
	}
	if normalizedSHP.Active() {
		shpFrame, err := offsetgraph.BuildReservation(s.topo, normalizedSHP, res.HyperperiodSlots)
		if err != nil {
			return s.fail(fmt.Errorf("session: prepare: SHP reservation: %w", err))
		}
		s.shpFrame = shpFrame
	}

	s.timing = res
	s.transition(Prepared)

	return nil
}

// Solve invokes the configured strategy, moving Prepared -> Solving ->
// Solved (or Failed on a no-incumbent solve).
func (s *Session) Solve(ctx context.Context) error {
	if s.state != Prepared {
		return fmt.Errorf("session: solve from %s: %w", s.state, ErrInvalidTransition)
	}
	s.transition(Solving)

	cb := &countingBackend{Backend: s.backend, varCounter: &s.varCounter, constraintCounter: &s.constraintCounter}
	s.model = constraint.New(cb, s.cfg.weights)

	scfg := strategy.Config{
		TimeLimitSeconds: s.cfg.timeLimitSeconds,
		MipGap:           s.cfg.mipGap,
		K:                s.cfg.framesPerIteration,
		Limiter:          s.cfg.limiter,
	}

	start := time.Now()
	var err error
	switch s.cfg.algorithm {
	case IncrementalAlgorithm:
		err = strategy.Incremental(ctx, cb, scfg, s.cfg.weights, s.traffic, s.shpFrame, s.timing.HyperperiodSlots)
	default:
		err = strategy.OneShot(cb, scfg, s.cfg.weights, s.traffic, s.shpFrame, s.timing.HyperperiodSlots)
	}
	s.ExecutionTime += time.Since(start)
	if err != nil {
		return s.fail(fmt.Errorf("session: solve: %w", err))
	}

	s.transition(Solved)

	return nil
}

// Verify runs the deterministic post-solve checks, moving Solved ->
// Verified (or Failed on a violation).
func (s *Session) Verify() error {
	if s.state != Solved {
		return fmt.Errorf("session: verify from %s: %w", s.state, ErrInvalidTransition)
	}

	report, err := verify.Run(s.backend, s.model, s.traffic, s.shpFrame, s.cfg.switchMinTime)
	if err != nil {
		return s.fail(fmt.Errorf("session: verify: %w", err))
	}
	s.Report = report
	if !report.Valid() {
		return s.fail(fmt.Errorf("session: verify: %w", report.Err))
	}

	s.transition(Verified)

	return nil
}
