package constraint

import "errors"

// ErrUnknownFrame indicates a caller asked for per-frame bookkeeping
// (FrameDist var, pin, zero) before EmitFrameVariables/EmitSHPVariables
// ran for that frame.
var ErrUnknownFrame = errors.New("constraint: frame has no emitted variables")

// ErrUnknownLink indicates a caller asked for a link's LinkDist
// variable before one was ever created for that link.
var ErrUnknownLink = errors.New("constraint: link has no LinkDist variable")

// ErrEmptyPath indicates a receiver with zero offset refs was handed
// to a constraint emitter — model.NewFrame should have rejected this
// already, so this only fires on a caller-constructed Frame.
var ErrEmptyPath = errors.New("constraint: receiver path has no hops")
