package session

import "errors"

// ErrInvalidTransition is returned when a method is called from a
// state that does not permit it — e.g. Solve before Prepare.
var ErrInvalidTransition = errors.New("session: invalid state transition")
