package model

import "fmt"

// Receiver is one multicast destination of a Frame: a receiver node id
// and the fixed ordered sequence of link ids from the frame's sender
// to that receiver. Paths are inputs; this package never synthesizes
// or validates reachability beyond link existence (see Topology.HasPath).
type Receiver struct {
	ReceiverID int
	Path       []int

	// offsetRefs holds, for each hop in Path, the arena index (into the
	// owning Frame's OffsetSet) of the Offset object covering that hop.
	// Populated by the offsetgraph package; nil before that.
	offsetRefs []int
}

// OffsetRefs returns the arena indices backing each hop of this
// receiver's path, in path order. Only valid after the offset graph
// has been built for the owning frame.
func (r *Receiver) OffsetRefs() []int { return r.offsetRefs }

// SetOffsetRefs records the arena indices backing each hop of this
// receiver's path. Called by the offsetgraph package only.
func (r *Receiver) SetOffsetRefs(refs []int) { r.offsetRefs = refs }

// Frame is a periodic multicast flow. All timing fields are in
// nanoseconds until the timemodel package renormalizes them in place
// to timeslot units; after that point every field on this struct is
// in timeslots.
type Frame struct {
	ID     int
	Size   int64 // bytes
	Period int64

	// Deadline <= Period; a zero input value means Deadline == Period
	// (resolved at construction time, see NewFrame).
	Deadline int64

	// Start < Deadline.
	Start int64

	// EndToEnd < Deadline; zero means unconstrained (no end-to-end
	// delay inequality is emitted for this frame).
	EndToEnd int64

	SenderID  int
	Receivers []Receiver

	// IsReservation marks the synthetic SHP reservation frame built by
	// offsetgraph.BuildReservation; normal frames never set this.
	IsReservation bool

	// Offsets is populated by the offsetgraph package once the
	// hyperperiod and timeslot are fixed.
	Offsets *OffsetSet
}

// NewFrame validates and constructs a Frame from raw (still
// nanosecond-denominated) fields. Size == 0 resolves to the 1000-byte
// ingestion default (see spec §6); Deadline == 0 resolves to Period.
func NewFrame(id int, size, period, deadline, start, endToEnd int64, senderID int, receivers []Receiver) (*Frame, error) {
	if id < 0 {
		return nil, fmt.Errorf("model: frame id %d: %w", id, ErrInvalidInput)
	}
	if period <= 0 {
		return nil, fmt.Errorf("model: frame %d period %d: %w", id, period, ErrInvalidInput)
	}
	if size == 0 {
		size = 1000
	}
	if deadline == 0 {
		deadline = period
	}
	if deadline > period {
		return nil, fmt.Errorf("model: frame %d deadline %d > period %d: %w", id, deadline, period, ErrInvalidTiming)
	}
	if start >= deadline {
		return nil, fmt.Errorf("model: frame %d start %d >= deadline %d: %w", id, start, deadline, ErrInvalidTiming)
	}
	if endToEnd != 0 && endToEnd >= deadline {
		return nil, fmt.Errorf("model: frame %d end-to-end %d >= deadline %d: %w", id, endToEnd, deadline, ErrInvalidTiming)
	}
	if senderID < 0 {
		return nil, fmt.Errorf("model: frame %d sender %d: %w", id, senderID, ErrInvalidInput)
	}
	if len(receivers) == 0 {
		return nil, fmt.Errorf("model: frame %d has no receivers: %w", id, ErrInvalidInput)
	}
	for i := range receivers {
		if len(receivers[i].Path) == 0 {
			return nil, fmt.Errorf("model: frame %d receiver %d has an empty path: %w", id, receivers[i].ReceiverID, ErrInvalidInput)
		}
	}

	return &Frame{
		ID:        id,
		Size:      size,
		Period:    period,
		Deadline:  deadline,
		Start:     start,
		EndToEnd:  endToEnd,
		SenderID:  senderID,
		Receivers: receivers,
	}, nil
}

// ValidateFirstHop checks that every receiver's path begins at a link
// the frame's sender actually owns in topo — "the first hop
// originates at the sender" invariant from spec §3.
func (f *Frame) ValidateFirstHop(topo *Topology) error {
	for _, r := range f.Receivers {
		firstLink := r.Path[0]
		found := false
		for _, c := range topo.Connections(f.SenderID) {
			if c.LinkID == firstLink {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("model: frame %d receiver %d: first hop link %d does not originate at sender %d: %w",
				f.ID, r.ReceiverID, firstLink, f.SenderID, ErrInvalidInput)
		}
	}

	return nil
}

// NumInstances returns hyperperiod / f.Period. hyperperiod must
// already be in the same units as f.Period (both nanoseconds, or both
// timeslots after renormalization).
func (f *Frame) NumInstances(hyperperiod int64) int {
	if f.Period == 0 {
		return 0
	}

	return int(hyperperiod / f.Period)
}

// Traffic is the ordered set of frames presented to the engine. Order
// determines scheduling priority in incremental and optimize modes:
// earlier frames constrain later ones. Traffic exclusively owns every
// Frame it holds.
type Traffic struct {
	frames  []*Frame
	byID    map[int]int // frame id -> index into frames
}

// NewTraffic builds a Traffic from frames in scheduling-priority order.
// Returns ErrInvalidInput on a duplicate frame id.
func NewTraffic(frames []*Frame) (*Traffic, error) {
	t := &Traffic{
		frames: make([]*Frame, 0, len(frames)),
		byID:   make(map[int]int, len(frames)),
	}
	for _, f := range frames {
		if _, exists := t.byID[f.ID]; exists {
			return nil, fmt.Errorf("model: duplicate frame id %d: %w", f.ID, ErrInvalidInput)
		}
		t.byID[f.ID] = len(t.frames)
		t.frames = append(t.frames, f)
	}

	return t, nil
}

// Frames returns the frames in scheduling-priority order. The
// returned slice must not be mutated by callers outside this package.
func (t *Traffic) Frames() []*Frame { return t.frames }

// ByID looks up a frame by id.
func (t *Traffic) ByID(id int) (*Frame, bool) {
	idx, ok := t.byID[id]
	if !ok {
		return nil, false
	}

	return t.frames[idx], true
}

// Len returns the number of frames.
func (t *Traffic) Len() int { return len(t.frames) }
