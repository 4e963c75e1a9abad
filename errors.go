package ambient

import (
	"errors"

	"github.com/gekko3d/ambient/rt/core"
	"github.com/gekko3d/ambient/rt/geom"
)

var (
	// ErrDegenerateViewport is returned when the host container has zero
	// width or height. It is not fatal: the viewport mounts once the
	// container is resized to a usable size.
	ErrDegenerateViewport = errors.New("ambient: degenerate viewport")
	ErrUnknownPreset      = errors.New("ambient: unknown preset")
	ErrViewportDisposed   = errors.New("ambient: viewport disposed")

	ErrInvalidShapeKind = geom.ErrInvalidShapeKind
	ErrInvalidParameter = geom.ErrInvalidParameter
	ErrBatchFull        = core.ErrBatchFull
)
