package patch

import "errors"

// ErrPatchInfeasible indicates an instance's accepted start would
// exceed its allowed maximum — spec §4.5's "fail with PatchInfeasible,
// terminal" case.
var ErrPatchInfeasible = errors.New("patch: no conflict-free start within window")
