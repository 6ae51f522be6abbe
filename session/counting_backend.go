package session

import "github.com/shpnet/tts-scheduler/backend"

// countingBackend decorates a backend.Backend, tallying every
// variable and constraint it creates into the owning session's
// counters via pointer — the session-local replacement for the
// reference implementation's process-wide var_it/constraint counters
// (spec §9). Shared between Session and OptimizeSession, the two
// session kinds that build their own model against a live backend.
type countingBackend struct {
	backend.Backend
	varCounter        *int
	constraintCounter *int
}

func (c *countingBackend) AddVariable(name string, lb, ub float64, integer bool) (backend.VarHandle, error) {
	v, err := c.Backend.AddVariable(name, lb, ub, integer)
	if err == nil {
		(*c.varCounter)++
	}

	return v, err
}

func (c *countingBackend) AddLinearConstraint(name string, terms []backend.Term, sense backend.Sense, rhs float64) (backend.ConstraintHandle, error) {
	h, err := c.Backend.AddLinearConstraint(name, terms, sense, rhs)
	if err == nil {
		(*c.constraintCounter)++
	}

	return h, err
}

func (c *countingBackend) AddIndicator(name string, indicator backend.VarHandle, indicatorValue bool, terms []backend.Term, sense backend.Sense, rhs float64) (backend.ConstraintHandle, error) {
	h, err := c.Backend.AddIndicator(name, indicator, indicatorValue, terms, sense, rhs)
	if err == nil {
		(*c.constraintCounter)++
	}

	return h, err
}

func (c *countingBackend) AddOr(name string, indicators []backend.VarHandle) (backend.ConstraintHandle, error) {
	h, err := c.Backend.AddOr(name, indicators)
	if err == nil {
		(*c.constraintCounter)++
	}

	return h, err
}
