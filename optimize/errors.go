package optimize

import "errors"

// ErrNoSchedule indicates an optimize iteration's solve had no
// incumbent — the patched placement stands, but optimize could not
// improve on it within the given backend/time budget.
var ErrNoSchedule = errors.New("optimize: backend produced no improved schedule")
