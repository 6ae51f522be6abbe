package model

import "github.com/shpnet/tts-scheduler/backend"

// UnsetOffset is the sentinel value for an Offset cell that has not
// yet been assigned by a scheduling strategy or the patch engine.
const UnsetOffset int64 = -1

// Offset aggregates every (instance, replica) transmission cell for a
// single (frame, link) pair. Two paths of the same frame that traverse
// the same link share one Offset object — see OffsetSet.
type Offset struct {
	LinkID       int
	NumInstances int
	NumReplicas  int

	// Time is the transmission duration on LinkID, in timeslots.
	Time int64

	// Value[i][r] is the solved/allocated start timeslot for instance i,
	// replica r. UnsetOffset until assigned; assignment is monotonic —
	// a cell is written at most once per scheduling run.
	Value [][]int64

	// MinOffset/MaxOffset[i][r] bound the allowed range for Value[i][r].
	// Always allocated; used directly by patch/optimize, and mirrored
	// into backend variable bounds by the constraint package for
	// one-shot/incremental strategies.
	MinOffset [][]int64
	MaxOffset [][]int64

	// Var[i][r] is the backend variable handle bound to Value[i][r],
	// once the constraint model has emitted it. Zero value
	// (backend.VarHandle(0)) means "not yet emitted"; callers must
	// consult a separate bool or stage ordering to avoid confusing a
	// valid handle 0 with "unset" (backend.BacktrackingBackend never
	// issues handle 0 for this reason; the backend.Backend interface
	// itself does not rule it out).
	Var [][]backend.VarHandle
}

// newOffset allocates an Offset for linkID with numInstances instances
// and numReplicas replicas, every cell initialized to UnsetOffset.
func newOffset(linkID, numInstances, numReplicas int) *Offset {
	o := &Offset{
		LinkID:       linkID,
		NumInstances: numInstances,
		NumReplicas:  numReplicas,
		Value:        make([][]int64, numInstances),
		MinOffset:    make([][]int64, numInstances),
		MaxOffset:    make([][]int64, numInstances),
		Var:          make([][]backend.VarHandle, numInstances),
	}
	for i := 0; i < numInstances; i++ {
		o.Value[i] = make([]int64, numReplicas)
		o.MinOffset[i] = make([]int64, numReplicas)
		o.MaxOffset[i] = make([]int64, numReplicas)
		o.Var[i] = make([]backend.VarHandle, numReplicas)
		for r := 0; r < numReplicas; r++ {
			o.Value[i][r] = UnsetOffset
		}
	}

	return o
}

// OffsetSet is a frame's arena of Offset objects: owned, contiguous
// storage (order) plus a non-owning link-id lookup (byLink). This
// removes the pointer-aliasing the original design used (a raw
// pointer shared between a per-path index and a link-indexed lookup)
// in favor of arena-index sharing, per the spec's design notes.
type OffsetSet struct {
	arena  []Offset
	order  []int       // arena indices in creation order (iteration list)
	byLink map[int]int // link id -> arena index
}

// NewOffsetSet returns an empty arena.
func NewOffsetSet() *OffsetSet {
	return &OffsetSet{byLink: make(map[int]int)}
}

// GetOrCreate returns the arena index of the Offset for linkID,
// creating it (with numInstances/numReplicas) if this is the first
// time this frame has seen linkID. The second return value is true
// when a new Offset was created. Two paths traversing the same link
// therefore resolve to the same arena index and the same *Offset.
func (s *OffsetSet) GetOrCreate(linkID, numInstances, numReplicas int) (int, bool) {
	if idx, ok := s.byLink[linkID]; ok {
		return idx, false
	}
	idx := len(s.arena)
	s.arena = append(s.arena, *newOffset(linkID, numInstances, numReplicas))
	s.order = append(s.order, idx)
	s.byLink[linkID] = idx

	return idx, true
}

// At returns a pointer to the Offset at arena index idx.
func (s *OffsetSet) At(idx int) *Offset {
	return &s.arena[idx]
}

// Lookup returns the arena index of the Offset for linkID, if this
// frame has one.
func (s *OffsetSet) Lookup(linkID int) (int, bool) {
	idx, ok := s.byLink[linkID]

	return idx, ok
}

// Iterate returns, in creation order, a pointer to every distinct
// Offset owned by this arena — the set of distinct links the frame
// uses.
func (s *OffsetSet) Iterate() []*Offset {
	out := make([]*Offset, len(s.order))
	for i, idx := range s.order {
		out[i] = &s.arena[idx]
	}

	return out
}

// Len returns the number of distinct links this frame has an Offset
// for.
func (s *OffsetSet) Len() int { return len(s.order) }
