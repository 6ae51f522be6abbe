package verify

import "errors"

// ErrScheduleInvalid names a violated invariant. Report.Err wraps this
// sentinel with the specific violation via %w so callers can
// errors.Is(err, ErrScheduleInvalid) regardless of which check failed.
var ErrScheduleInvalid = errors.New("verify: schedule invalid")
