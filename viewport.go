package ambient

import (
	"fmt"

	"github.com/gekko3d/ambient/rt/anim"
	"github.com/gekko3d/ambient/rt/core"
)

type LifecycleState int

const (
	StateUninitialized LifecycleState = iota
	StateRunning
	StateDisposed
)

func (s LifecycleState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("LifecycleState(%d)", int(s))
}

type Stats struct {
	State         LifecycleState
	Epoch         uint64
	Width         int
	Height        int
	Ticks         uint64
	Presents      uint64
	PresentErrors uint64
	ReleaseErrors uint64
	Batches       int
	Instances     int
}

// Viewport owns one scene for the lifetime of its host container: it mounts
// the scene, drives the frame loop, follows resizes and tears everything
// down. All methods must be called from the host's UI thread.
type Viewport struct {
	preset    Preset
	container Container
	scheduler Scheduler
	factory   SurfaceFactory
	opts      []Option
	logger    Logger
	step      float32

	state   LifecycleState
	epoch   uint64
	size    ViewportState
	scene   *core.Scene
	surface Surface
	clock   *core.FrameClock
	driver  *anim.Driver

	frame        FrameHandle
	framePending bool
	removeResize func()

	ticks, presents, presentErrors, releaseErrors uint64
}

func NewViewport(p Preset, container Container, scheduler Scheduler, factory SurfaceFactory, opts ...Option) *Viewport {
	o := buildOptions(opts)
	step := p.Step
	if o.step > 0 {
		step = o.step
	}
	return &Viewport{
		preset:    p,
		container: container,
		scheduler: scheduler,
		factory:   factory,
		opts:      opts,
		logger:    o.logger,
		step:      step,
		driver:    anim.NewDriver(),
	}
}

// Mount starts listening for resizes and, when the container has a usable
// size, builds the scene and starts the frame loop. A degenerate container
// yields ErrDegenerateViewport and the mount completes on the first resize
// to a usable size.
func (v *Viewport) Mount() error {
	switch v.state {
	case StateDisposed:
		return ErrViewportDisposed
	case StateRunning:
		return nil
	}
	if v.removeResize == nil {
		v.removeResize = v.container.OnResize(v.Resize)
	}

	w, h := v.container.Size()
	v.size = ViewportState{Width: w, Height: h}
	if v.size.Degenerate() {
		v.logger.Warnf("viewport %dx%d is degenerate, waiting for a resize", w, h)
		return fmt.Errorf("%w: %dx%d", ErrDegenerateViewport, w, h)
	}
	return v.start()
}

func (v *Viewport) start() error {
	scene, err := Compose(v.preset, v.size, v.opts...)
	if err != nil {
		return err
	}
	surface, err := v.factory(v.size.Width, v.size.Height)
	if err != nil {
		scene.Dispose()
		return fmt.Errorf("create surface: %w", err)
	}
	v.container.Attach(surface)

	v.scene = scene
	v.surface = surface
	v.clock = core.NewFrameClock(v.step)
	v.state = StateRunning
	v.epoch++
	v.logger.Infof("viewport running %dx%d: preset %q, %d instances",
		v.size.Width, v.size.Height, v.preset.Name, scene.InstanceCount())
	v.schedule()
	return nil
}

func (v *Viewport) schedule() {
	epoch := v.epoch
	v.frame = v.scheduler.RequestFrame(func() { v.runFrame(epoch) })
	v.framePending = true
}

// runFrame is a no-op for callbacks scheduled under an older epoch, so a
// frame that slipped past Dispose never touches released resources.
func (v *Viewport) runFrame(epoch uint64) {
	if epoch != v.epoch || v.state != StateRunning {
		return
	}
	v.framePending = false

	v.driver.Tick(v.scene, v.clock)
	v.ticks++
	if err := v.surface.Present(v.scene); err != nil {
		v.presentErrors++
		if v.presentErrors == 1 {
			v.logger.Errorf("present: %v", err)
		} else {
			v.logger.Debugf("present (%d failures): %v", v.presentErrors, err)
		}
	} else {
		v.presents++
	}
	v.schedule()
}

// Resize is the container's resize listener. Non-positive sizes are ignored;
// a pending mount completes on the first usable size.
func (v *Viewport) Resize(width, height int) {
	if v.state == StateDisposed {
		return
	}
	next := ViewportState{Width: width, Height: height}
	if next.Degenerate() {
		v.logger.Warnf("ignoring resize to %dx%d", width, height)
		return
	}
	v.size = next

	if v.state == StateUninitialized {
		if err := v.start(); err != nil {
			v.logger.Errorf("deferred mount: %v", err)
		}
		return
	}

	v.scene.Camera.SetAspect(width, height)
	if err := v.surface.Resize(width, height); err != nil {
		v.logger.Errorf("surface resize %dx%d: %v", width, height, err)
	}
}

// Dispose stops the frame loop and releases every resource. Release failures
// are logged and teardown continues. Calling Dispose again does nothing.
func (v *Viewport) Dispose() {
	if v.state == StateDisposed {
		return
	}
	v.state = StateDisposed
	v.epoch++

	if v.framePending {
		v.scheduler.CancelFrame(v.frame)
		v.framePending = false
	}
	if v.removeResize != nil {
		v.removeResize()
		v.removeResize = nil
	}

	if v.scene != nil {
		for _, id := range v.scene.Resources() {
			if v.surface == nil {
				break
			}
			if err := v.surface.ReleaseResource(id); err != nil {
				v.releaseErrors++
				v.logger.Warnf("release %s: %v", id, err)
			}
		}
		v.scene.Dispose()
	}
	if v.surface != nil {
		v.container.Detach(v.surface)
		if err := v.surface.Release(); err != nil {
			v.releaseErrors++
			v.logger.Warnf("release surface: %v", err)
		}
		v.surface = nil
	}
	v.logger.Infof("viewport disposed after %d ticks", v.ticks)
}

func (v *Viewport) State() LifecycleState { return v.state }

// Scene is nil until the viewport is running.
func (v *Viewport) Scene() *core.Scene { return v.scene }

func (v *Viewport) Size() ViewportState { return v.size }

func (v *Viewport) Stats() Stats {
	s := Stats{
		State:         v.state,
		Epoch:         v.epoch,
		Width:         v.size.Width,
		Height:        v.size.Height,
		Ticks:         v.ticks,
		Presents:      v.presents,
		PresentErrors: v.presentErrors,
		ReleaseErrors: v.releaseErrors,
	}
	if v.scene != nil {
		s.Batches = len(v.scene.Batches)
		s.Instances = v.scene.InstanceCount()
	}
	return s
}
