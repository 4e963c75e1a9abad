package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/rt/raster"
)

// offscreen is a fixed-size container with no window behind it.
type offscreen struct {
	width, height int
	surface       *raster.Surface
	listeners     ambient.ResizeListeners
}

func (o *offscreen) Size() (int, int) { return o.width, o.height }

func (o *offscreen) Attach(s ambient.Surface) {
	if r, ok := s.(*raster.Surface); ok {
		o.surface = r
	}
}

func (o *offscreen) Detach(s ambient.Surface) {
	if r, ok := s.(*raster.Surface); ok && r == o.surface {
		o.surface = nil
	}
}

func (o *offscreen) OnResize(fn func(int, int)) func() { return o.listeners.Add(fn) }

// snapshot mounts a viewport, runs ticks frames and returns a copy of the
// last image. The viewport is disposed before returning.
func snapshot(p ambient.Preset, width, height, ticks int, factory ambient.SurfaceFactory, opts ...ambient.Option) (*image.RGBA, error) {
	if ticks < 1 {
		return nil, errors.New("ticks must be at least 1")
	}
	frames := ambient.NewFrameQueue()
	host := &offscreen{width: width, height: height}
	vp := ambient.NewViewport(p, host, frames, factory, opts...)
	defer vp.Dispose()

	if err := vp.Mount(); err != nil {
		return nil, err
	}
	if host.surface == nil {
		return nil, errors.New("surface is not a raster surface")
	}
	for i := 0; i < ticks; i++ {
		frames.RunFrame()
	}
	if st := vp.Stats(); st.PresentErrors > 0 {
		return nil, fmt.Errorf("%d frames failed to present", st.PresentErrors)
	}

	src := host.surface.Image()
	img := image.NewRGBA(src.Bounds())
	copy(img.Pix, src.Pix)
	return img, nil
}
