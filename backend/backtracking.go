package backend

import (
	"fmt"
	"math"
	"time"
)

// DefaultNodeBudget bounds the number of search nodes (every
// variable-assignment step, not only complete assignments)
// BacktrackingBackend.Optimize will explore before giving up and
// returning its best incumbent (or NoIncumbent if none was found).
// Exhaustive integer search is only appropriate for the small
// instances spec.md §8 describes; production deployments must supply
// a real MILP-backed Backend.
const DefaultNodeBudget = 2_000_000

type constraintKind int

const (
	kindLinear constraintKind = iota
	kindIndicator
	kindOr
)

type constraintRec struct {
	kind           constraintKind
	terms          []Term
	sense          Sense
	rhs            float64
	indicator      VarHandle
	indicatorValue bool
	orVars         []VarHandle
	maxVar         int // highest 1-based variable index this constraint references
}

type varRec struct {
	name     string
	lb, ub   float64
	integer  bool
	objCoeff float64
}

// BacktrackingBackend is a small, deterministic, exhaustive-search
// Backend: depth-first assignment of every integer variable in
// creation order, pruning a branch the moment a constraint whose
// variables are all now assigned is violated, exactly mirroring the
// deterministic-order, admissible-pruning shape of
// lvlath/tsp's branch-and-bound engine (bbEngine.dfs).
//
// It maximizes the objective exactly (mipGap is not enforced — every
// call behaves as mipGap=0) subject to a node budget and an optional
// time_limit; whichever is hit first stops the search and returns the
// best incumbent found, or NoIncumbent if none was found at all.
type BacktrackingBackend struct {
	vars        []varRec // 1-indexed; vars[0] is a dummy so VarHandle 1 is the first real variable
	constraints []constraintRec
	completeAt  map[int][]int // variable index -> indices into constraints complete at that point

	assigned   []float64
	isAssigned []bool

	haveIncumbent  bool
	bestAssignment []float64
	bestObjective  float64

	nodeBudget int
	nodes      int
	deadline   time.Time
	useTime    bool

	lastStatus Status
	closed     bool
}

// NewBacktrackingBackend returns a BacktrackingBackend with the given
// node budget. A nodeBudget <= 0 uses DefaultNodeBudget.
func NewBacktrackingBackend(nodeBudget int) *BacktrackingBackend {
	if nodeBudget <= 0 {
		nodeBudget = DefaultNodeBudget
	}

	return &BacktrackingBackend{
		vars:       make([]varRec, 1), // index 0 unused, so handle 0 never denotes a real variable
		completeAt: make(map[int][]int),
		nodeBudget: nodeBudget,
	}
}

func (b *BacktrackingBackend) checkOpen() error {
	if b.closed {
		return ErrClosed
	}

	return nil
}

// AddVariable implements Backend. integer must be true: this reference
// backend only supports integer search, matching the all-integer
// formulation in spec.md §4.3.
func (b *BacktrackingBackend) AddVariable(name string, lb, ub float64, integer bool) (VarHandle, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	if !integer {
		return 0, fmt.Errorf("backend: BacktrackingBackend only supports integer variables (%q): %w", name, ErrBackend)
	}
	if lb > ub {
		return 0, fmt.Errorf("backend: variable %q has empty domain [%v,%v]: %w", name, lb, ub, ErrBackend)
	}
	b.vars = append(b.vars, varRec{name: name, lb: lb, ub: ub, integer: integer})

	return VarHandle(len(b.vars) - 1), nil
}

func (b *BacktrackingBackend) varIndex(v VarHandle) (int, error) {
	idx := int(v)
	if idx <= 0 || idx >= len(b.vars) {
		return 0, fmt.Errorf("backend: handle %d: %w", v, ErrUnknownHandle)
	}

	return idx, nil
}

func maxVarIndex(self *BacktrackingBackend, terms []Term, extra ...VarHandle) (int, error) {
	max := 0
	for _, t := range terms {
		idx, err := self.varIndex(t.Var)
		if err != nil {
			return 0, err
		}
		if idx > max {
			max = idx
		}
	}
	for _, v := range extra {
		idx, err := self.varIndex(v)
		if err != nil {
			return 0, err
		}
		if idx > max {
			max = idx
		}
	}

	return max, nil
}

// AddLinearConstraint implements Backend.
func (b *BacktrackingBackend) AddLinearConstraint(name string, terms []Term, sense Sense, rhs float64) (ConstraintHandle, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	maxVar, err := maxVarIndex(b, terms)
	if err != nil {
		return 0, err
	}
	c := constraintRec{kind: kindLinear, terms: terms, sense: sense, rhs: rhs, maxVar: maxVar}
	b.register(c)

	return ConstraintHandle(len(b.constraints)), nil
}

// AddIndicator implements Backend.
func (b *BacktrackingBackend) AddIndicator(name string, indicator VarHandle, indicatorValue bool, terms []Term, sense Sense, rhs float64) (ConstraintHandle, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	maxVar, err := maxVarIndex(b, terms, indicator)
	if err != nil {
		return 0, err
	}
	c := constraintRec{
		kind: kindIndicator, terms: terms, sense: sense, rhs: rhs,
		indicator: indicator, indicatorValue: indicatorValue, maxVar: maxVar,
	}
	b.register(c)

	return ConstraintHandle(len(b.constraints)), nil
}

// AddOr implements Backend.
func (b *BacktrackingBackend) AddOr(name string, indicators []VarHandle) (ConstraintHandle, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	if len(indicators) == 0 {
		return 0, fmt.Errorf("backend: AddOr %q with no indicators: %w", name, ErrBackend)
	}
	maxVar, err := maxVarIndex(b, nil, indicators...)
	if err != nil {
		return 0, err
	}
	c := constraintRec{kind: kindOr, orVars: indicators, maxVar: maxVar}
	b.register(c)

	return ConstraintHandle(len(b.constraints)), nil
}

func (b *BacktrackingBackend) register(c constraintRec) {
	b.constraints = append(b.constraints, c)
	idx := len(b.constraints) - 1
	b.completeAt[c.maxVar] = append(b.completeAt[c.maxVar], idx)
}

// SetBounds implements Backend.
func (b *BacktrackingBackend) SetBounds(v VarHandle, lb, ub float64) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	idx, err := b.varIndex(v)
	if err != nil {
		return err
	}
	if lb > ub {
		return fmt.Errorf("backend: SetBounds on %q: empty domain [%v,%v]: %w", b.vars[idx].name, lb, ub, ErrBackend)
	}
	b.vars[idx].lb, b.vars[idx].ub = lb, ub

	return nil
}

// SetObjectiveCoefficient implements Backend.
func (b *BacktrackingBackend) SetObjectiveCoefficient(v VarHandle, coeff float64) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	idx, err := b.varIndex(v)
	if err != nil {
		return err
	}
	b.vars[idx].objCoeff = coeff

	return nil
}

// Update implements Backend; this backend applies every change
// eagerly, so Update is a no-op.
func (b *BacktrackingBackend) Update() error { return b.checkOpen() }

// GetValue implements Backend.
func (b *BacktrackingBackend) GetValue(v VarHandle) (float64, error) {
	if err := b.checkOpen(); err != nil {
		return 0, err
	}
	idx, err := b.varIndex(v)
	if err != nil {
		return 0, err
	}
	if !b.haveIncumbent {
		return 0, fmt.Errorf("backend: GetValue before a feasible Optimize result: %w", ErrBackend)
	}

	return b.bestAssignment[idx], nil
}

// Close implements Backend.
func (b *BacktrackingBackend) Close() error {
	b.closed = true

	return nil
}

// Optimize implements Backend: exhaustive depth-first search over
// every variable's integer domain, in creation order, pruning as soon
// as a fully-determined constraint is violated.
func (b *BacktrackingBackend) Optimize(timeLimitSeconds, _ float64) (Status, error) {
	if err := b.checkOpen(); err != nil {
		return Infeasible, err
	}
	n := len(b.vars) - 1
	b.assigned = make([]float64, len(b.vars))
	b.isAssigned = make([]bool, len(b.vars))
	b.haveIncumbent = false
	b.bestObjective = math.Inf(-1)
	b.nodes = 0
	b.useTime = timeLimitSeconds > 0
	if b.useTime {
		b.deadline = time.Now().Add(time.Duration(timeLimitSeconds * float64(time.Second)))
	}

	b.dfs(1, n)

	if !b.haveIncumbent {
		b.lastStatus = NoIncumbent

		return NoIncumbent, nil
	}
	if b.nodes >= b.nodeBudget || (b.useTime && time.Now().After(b.deadline)) {
		b.lastStatus = Feasible

		return Feasible, nil
	}
	b.lastStatus = Optimal

	return Optimal, nil
}

// budgetExceeded performs a sparse deadline/node-budget check,
// mirroring the cheap periodic check in lvlath/tsp/bb.go.
func (b *BacktrackingBackend) budgetExceeded() bool {
	b.nodes++
	if b.nodes >= b.nodeBudget {
		return true
	}
	if b.useTime && (b.nodes&2047) == 0 && time.Now().After(b.deadline) {
		return true
	}

	return false
}

// dfs assigns variable idx..n in order. Returns true if the search
// should stop (budget exhausted).
func (b *BacktrackingBackend) dfs(idx, n int) bool {
	if b.budgetExceeded() {
		return true
	}
	if idx > n {
		obj := b.objectiveValue()
		if !b.haveIncumbent || obj > b.bestObjective {
			b.haveIncumbent = true
			b.bestObjective = obj
			b.bestAssignment = append([]float64(nil), b.assigned...)
		}

		return false
	}

	v := b.vars[idx]
	lo, hi := int64(math.Ceil(v.lb)), int64(math.Floor(v.ub))
	for val := lo; val <= hi; val++ {
		b.assigned[idx] = float64(val)
		b.isAssigned[idx] = true
		if b.constraintsOKAt(idx) {
			if b.dfs(idx+1, n) {
				b.isAssigned[idx] = false

				return true
			}
		}
		b.isAssigned[idx] = false
	}

	return false
}

// constraintsOKAt checks every constraint whose last-needed variable
// is idx, now that idx has just been assigned.
func (b *BacktrackingBackend) constraintsOKAt(idx int) bool {
	for _, ci := range b.completeAt[idx] {
		if !b.checkConstraint(b.constraints[ci]) {
			return false
		}
	}

	return true
}

func (b *BacktrackingBackend) checkConstraint(c constraintRec) bool {
	switch c.kind {
	case kindLinear:
		return evalSense(b.sumTerms(c.terms), c.sense, c.rhs)
	case kindIndicator:
		indicatorIdx, _ := b.varIndex(c.indicator)
		active := b.assigned[indicatorIdx] != 0
		if active != c.indicatorValue {
			return true // inactive indicator: constraint not enforced
		}

		return evalSense(b.sumTerms(c.terms), c.sense, c.rhs)
	case kindOr:
		for _, v := range c.orVars {
			idx, _ := b.varIndex(v)
			if b.assigned[idx] != 0 {
				return true
			}
		}

		return false
	default:
		return true
	}
}

func (b *BacktrackingBackend) sumTerms(terms []Term) float64 {
	sum := 0.0
	for _, t := range terms {
		idx, _ := b.varIndex(t.Var)
		sum += t.Coeff * b.assigned[idx]
	}

	return sum
}

func evalSense(lhs float64, sense Sense, rhs float64) bool {
	switch sense {
	case LE:
		return lhs <= rhs
	case GE:
		return lhs >= rhs
	case EQ:
		return lhs == rhs
	default:
		return false
	}
}

func (b *BacktrackingBackend) objectiveValue() float64 {
	sum := 0.0
	for i := 1; i < len(b.vars); i++ {
		if b.vars[i].objCoeff != 0 {
			sum += b.vars[i].objCoeff * b.assigned[i]
		}
	}

	return sum
}
