package timemodel

import "errors"

// ErrInvalidTiming is returned when the folded timeslot resolves to
// zero (no frame traverses any link and the SHP is inactive), or a
// duration computation encounters a non-positive link speed.
var ErrInvalidTiming = errors.New("timemodel: invalid timing")
