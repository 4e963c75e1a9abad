package app

import (
	"errors"
	"fmt"

	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/rt/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// statsEvery is how many frames pass between window title refreshes in
// debug mode.
const statsEvery = 60

// App hosts one viewport in a GLFW window. The window is the container, the
// glfw event loop is the frame scheduler and surfaces are WebGPU swap chains.
type App struct {
	Window    *glfw.Window
	Frames    *ambient.FrameQueue
	Viewport  *ambient.Viewport
	Profiler  *Profiler
	DebugMode bool
	Title     string

	logger    ambient.Logger
	listeners ambient.ResizeListeners
	attached  ambient.Surface
	frames    int
}

func NewApp(window *glfw.Window, preset ambient.Preset, logger ambient.Logger, opts ...ambient.Option) *App {
	if logger == nil {
		logger = ambient.NewNopLogger()
	}
	a := &App{
		Window:   window,
		Frames:   ambient.NewFrameQueue(),
		Profiler: NewProfiler(),
		Title:    preset.Name,
		logger:   logger,
	}
	opts = append([]ambient.Option{ambient.WithLogger(logger)}, opts...)
	a.Viewport = ambient.NewViewport(preset, a, a.Frames, a.createSurface, opts...)
	return a
}

// Init hooks window resizes and mounts the viewport. A minimized window is
// not an error; the mount finishes once the framebuffer gets a size.
func (a *App) Init() error {
	a.Window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.Resize(width, height)
	})
	err := a.Viewport.Mount()
	if errors.Is(err, ambient.ErrDegenerateViewport) {
		return nil
	}
	return err
}

func (a *App) createSurface(width, height int) (ambient.Surface, error) {
	s, err := gpu.New(GetSurfaceDescriptor(a.Window), width, height, gpu.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) Size() (width, height int) {
	return a.Window.GetFramebufferSize()
}

func (a *App) Attach(s ambient.Surface) {
	a.attached = s
}

func (a *App) Detach(s ambient.Surface) {
	if a.attached == s {
		a.attached = nil
	}
}

func (a *App) OnResize(fn func(width, height int)) (remove func()) {
	return a.listeners.Add(fn)
}

func (a *App) Resize(width, height int) {
	a.listeners.Notify(width, height)
}

// Update runs the frame callbacks requested since the last call.
func (a *App) Update() {
	a.Profiler.Measure("frame", func() {
		a.Frames.RunFrame()
	})
	a.frames++
	if !a.DebugMode || a.frames%statsEvery != 0 {
		return
	}
	st := a.Viewport.Stats()
	a.Profiler.SetCount("instances", st.Instances)
	a.Profiler.SetCount("batches", st.Batches)
	a.Profiler.SetCount("present_errors", int(st.PresentErrors))
	summary := a.Profiler.Summary()
	a.Window.SetTitle(fmt.Sprintf("%s | %s", a.Title, summary))
	a.logger.Debugf("%s", summary)
}

// Run pumps window events and frames until the window is closed, then
// disposes the viewport.
func (a *App) Run() {
	defer a.Close()
	for !a.Window.ShouldClose() {
		glfw.PollEvents()
		a.Update()
	}
}

func (a *App) Close() {
	a.Viewport.Dispose()
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}
