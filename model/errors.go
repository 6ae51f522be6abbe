package model

import "errors"

// Sentinel errors for data-model construction and validation.
//
// Callers should use errors.Is(err, ErrX) to branch on semantics; these
// sentinels are never wrapped with formatted strings at the definition
// site, only at the call site via fmt.Errorf("%w", ...).
var (
	// ErrInvalidInput indicates a malformed document, an unknown
	// enumerated value (link kind, node role, unit), a receiver not
	// present in the topology, or a negative identifier where a
	// natural number is required.
	ErrInvalidInput = errors.New("model: invalid input")

	// ErrInvalidTiming indicates deadline > period, starting >= deadline,
	// or end-to-end >= deadline. A timeslot that resolves to zero is
	// reported with the timemodel package's own ErrInvalidTiming.
	ErrInvalidTiming = errors.New("model: invalid timing")

	// ErrTopology indicates a duplicate node id, a self-loop, or a
	// duplicate link id attached twice to the same node.
	ErrTopology = errors.New("model: topology error")

	// ErrUnknownLink indicates a path referenced a link id that does
	// not exist in the topology.
	ErrUnknownLink = errors.New("model: unknown link")
)
