package backend

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrBackend is the sentinel for spec.md's BackendError kind: the
// solver API itself returned an error (as opposed to a modeling
// failure). Wrap with WrapBackendError to attach a diagnostic stack.
var ErrBackend = errors.New("backend: solver API error")

// ErrUnknownHandle indicates a VarHandle/ConstraintHandle not issued
// by this Backend instance was used.
var ErrUnknownHandle = errors.New("backend: unknown handle")

// ErrClosed indicates a call was made on a Backend after Close.
var ErrClosed = errors.New("backend: backend is closed")

// WrapBackendError wraps a raw solver SDK error with ErrBackend and a
// pkg/errors stack trace, so an opaque vendor failure can be
// diagnosed post-mortem. This is the only place in the module that
// reaches for github.com/pkg/errors rather than the stdlib %w
// convention used everywhere else — BackendError is the sole error
// kind that crosses a real external API boundary.
func WrapBackendError(cause error) error {
	if cause == nil {
		return nil
	}

	return pkgerrors.Wrap(fmt.Errorf("%w: %w", ErrBackend, cause), "backend")
}
