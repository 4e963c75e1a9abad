package ambient

import "github.com/gekko3d/ambient/rt/core"

// Surface is the drawing target supplied by the host, such as a GPU swap
// chain or an offscreen image.
type Surface interface {
	Resize(width, height int) error
	// Present draws scene and clears the dirty flag of every batch it uploaded.
	Present(scene *core.Scene) error
	// ReleaseResource frees whatever the surface created for id. Unknown ids
	// are not an error.
	ReleaseResource(id core.ResourceID) error
	Release() error
}

type SurfaceFactory func(width, height int) (Surface, error)

// Container is the host element the viewport lives in.
type Container interface {
	Size() (width, height int)
	Attach(s Surface)
	Detach(s Surface)
	// OnResize registers fn for size changes and returns a func removing it.
	OnResize(fn func(width, height int)) (remove func())
}

type FrameHandle uint64

// Scheduler runs one-shot callbacks at the host's next display refresh.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// ViewportState is the current size of the host container.
type ViewportState struct {
	Width  int
	Height int
}

func (v ViewportState) Degenerate() bool {
	return v.Width <= 0 || v.Height <= 0
}

func (v ViewportState) Aspect() float32 {
	if v.Degenerate() {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
