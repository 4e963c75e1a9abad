package ambient

import (
	"errors"
	"testing"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewportFixture struct {
	container *MockContainer
	queue     *FrameQueue
	surfaces  []*MockSurface
	log       *recordingLogger
	viewport  *Viewport
}

func newViewportFixture(t *testing.T, p Preset, w, h int) *viewportFixture {
	t.Helper()
	f := &viewportFixture{
		container: NewMockContainer(w, h),
		queue:     NewFrameQueue(),
		log:       &recordingLogger{},
	}
	factory := func(w, h int) (Surface, error) {
		s := NewMockSurface(w, h)
		f.surfaces = append(f.surfaces, s)
		return s, nil
	}
	f.viewport = NewViewport(p, f.container, f.queue, factory, WithLogger(f.log))
	return f
}

func (f *viewportFixture) run(frames int) {
	for i := 0; i < frames; i++ {
		f.queue.RunFrame()
	}
}

func TestViewport_EndToEnd(t *testing.T) {
	f := newViewportFixture(t, Meadow(), 800, 600)
	require.NoError(t, f.viewport.Mount())
	require.Equal(t, StateRunning, f.viewport.State())
	require.Len(t, f.surfaces, 1)
	surface := f.surfaces[0]
	assert.Equal(t, []Surface{surface}, f.container.attached)

	scene := f.viewport.Scene()
	grass, sprouts, pollen := scene.Batch("grass"), scene.Batch("sprouts"), scene.Batch("pollen")
	require.Equal(t, []int{2000, 500, 50}, []int{grass.Len(), sprouts.Len(), pollen.Len()})

	const ticks = 100
	for i := 1; i <= ticks; i++ {
		f.run(1)
		for _, b := range []*core.RenderBatch{grass, sprouts, pollen} {
			assert.Equal(t, i, f.surfaces[0].dirtySeen[b.Name], "batch %s tick %d", b.Name, i)
		}
	}
	assert.InDelta(t, 0.5, f.viewport.clock.Time(), 1e-6)
	assert.Equal(t, 1, surface.dirtySeen["terrain"], "static terrain uploads once")
	assert.Equal(t, 1, surface.dirtySeen["trunks"])
	assert.Equal(t, ticks, surface.dirtySeen["clouds"])
	assert.Equal(t, []int{2000, 500, 50}, []int{grass.Len(), sprouts.Len(), pollen.Len()})

	stats := f.viewport.Stats()
	assert.Equal(t, uint64(ticks), stats.Ticks)
	assert.Equal(t, uint64(ticks), stats.Presents)
	assert.Equal(t, scene.InstanceCount(), stats.Instances)

	resources := scene.Resources()
	f.viewport.Dispose()
	assert.Equal(t, StateDisposed, f.viewport.State())
	assert.Empty(t, f.container.attached)
	assert.Zero(t, f.container.listeners.Len())
	assert.Equal(t, resources, surface.released)
	assert.Equal(t, 1, surface.releaseCalls)
	assert.True(t, scene.Disposed())
	assert.Zero(t, f.queue.Pending())

	f.run(5)
	assert.Equal(t, uint64(ticks), f.viewport.Stats().Ticks)
	assert.Equal(t, ticks, surface.presents)
}

// leakyScheduler ignores cancellation so stale callbacks still fire.
type leakyScheduler struct{ *FrameQueue }

func (leakyScheduler) CancelFrame(FrameHandle) {}

func TestViewport_StaleFrameAfterDispose(t *testing.T) {
	queue := leakyScheduler{NewFrameQueue()}
	container := NewMockContainer(320, 240)
	surface := NewMockSurface(320, 240)
	v := NewViewport(Night(), container, queue, func(int, int) (Surface, error) { return surface, nil })
	require.NoError(t, v.Mount())
	queue.RunFrame()
	require.Equal(t, 1, surface.presents)

	v.Dispose()
	require.Equal(t, 1, queue.Pending())
	grass := v.Scene().Batch("grass")
	before := grass.DirtyCount()

	queue.RunFrame()
	assert.Equal(t, 1, surface.presents)
	assert.Equal(t, before, grass.DirtyCount())
	assert.Equal(t, uint64(1), v.Stats().Ticks)
	assert.Zero(t, queue.Pending(), "stale callback must not reschedule")
}

func TestViewport_DeferredMount(t *testing.T) {
	f := newViewportFixture(t, Meadow(), 0, 0)
	err := f.viewport.Mount()
	require.ErrorIs(t, err, ErrDegenerateViewport)
	assert.Equal(t, StateUninitialized, f.viewport.State())
	assert.Nil(t, f.viewport.Scene())
	assert.Empty(t, f.surfaces)
	assert.Zero(t, f.queue.Pending())
	assert.Equal(t, 1, f.log.count("WARN"))

	f.container.SetSize(0, 480)
	assert.Equal(t, StateUninitialized, f.viewport.State())

	f.container.SetSize(640, 480)
	require.Equal(t, StateRunning, f.viewport.State())
	require.Len(t, f.surfaces, 1)
	assert.Equal(t, 640, f.surfaces[0].width)
	assert.InDelta(t, 640.0/480.0, f.viewport.Scene().Camera.Aspect, 1e-6)

	f.run(3)
	assert.Equal(t, uint64(3), f.viewport.Stats().Ticks)
	f.viewport.Dispose()
}

func TestViewport_Resize(t *testing.T) {
	f := newViewportFixture(t, Harvest(), 800, 600)
	require.NoError(t, f.viewport.Mount())
	surface := f.surfaces[0]
	cam := f.viewport.Scene().Camera
	fov, near, far := cam.FovY, cam.Near, cam.Far

	f.container.SetSize(1024, 512)
	assert.Equal(t, ViewportState{Width: 1024, Height: 512}, f.viewport.Size())
	assert.Equal(t, float32(2), cam.Aspect)
	assert.Equal(t, [2]int{1024, 512}, [2]int{surface.width, surface.height})
	assert.Equal(t, []float32{fov, near, far}, []float32{cam.FovY, cam.Near, cam.Far})

	// zero size while running is ignored
	f.container.SetSize(0, 0)
	assert.Equal(t, float32(2), cam.Aspect)
	assert.Equal(t, 1024, surface.width)
	assert.Equal(t, StateRunning, f.viewport.State())
	f.run(2)
	assert.Equal(t, 2, surface.presents)

	f.viewport.Dispose()
	f.container.SetSize(300, 300)
	assert.Equal(t, 1024, surface.width)
}

func TestViewport_DisposeSwallowsReleaseErrors(t *testing.T) {
	f := newViewportFixture(t, Meadow(), 400, 300)
	require.NoError(t, f.viewport.Mount())
	surface := f.surfaces[0]
	surface.failRelease = true
	n := len(f.viewport.Scene().Resources())

	f.viewport.Dispose()
	assert.Equal(t, StateDisposed, f.viewport.State())
	assert.Len(t, surface.released, n, "every resource release is attempted")
	assert.Equal(t, 1, surface.releaseCalls)
	assert.Empty(t, f.container.attached)
	assert.Equal(t, uint64(n+1), f.viewport.Stats().ReleaseErrors)
	assert.Equal(t, n+1, f.log.count("WARN"))

	// second dispose is a no-op
	f.viewport.Dispose()
	assert.Len(t, surface.released, n)
	assert.Equal(t, 1, surface.releaseCalls)
}

func TestViewport_DisposeBeforeMount(t *testing.T) {
	f := newViewportFixture(t, Meadow(), 0, 0)
	_ = f.viewport.Mount()
	f.viewport.Dispose()
	assert.Equal(t, StateDisposed, f.viewport.State())
	assert.Zero(t, f.container.listeners.Len())

	f.container.SetSize(800, 600)
	assert.Empty(t, f.surfaces)
	assert.ErrorIs(t, f.viewport.Mount(), ErrViewportDisposed)
}

func TestViewport_PresentFailureKeepsRunning(t *testing.T) {
	f := newViewportFixture(t, Night(), 200, 100)
	require.NoError(t, f.viewport.Mount())
	f.surfaces[0].failPresent = true

	f.run(4)
	stats := f.viewport.Stats()
	assert.Equal(t, StateRunning, stats.State)
	assert.Equal(t, uint64(4), stats.Ticks)
	assert.Equal(t, uint64(4), stats.PresentErrors)
	assert.Equal(t, 1, f.log.count("ERROR"))
	assert.Equal(t, 1, f.queue.Pending())
	f.viewport.Dispose()
}

func TestViewport_SurfaceFactoryError(t *testing.T) {
	container := NewMockContainer(100, 100)
	queue := NewFrameQueue()
	boom := errors.New("no adapter")
	v := NewViewport(Meadow(), container, queue, func(int, int) (Surface, error) { return nil, boom })

	err := v.Mount()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateUninitialized, v.State())
	assert.Zero(t, queue.Pending())
	v.Dispose()
	assert.Zero(t, container.listeners.Len())
}

func TestViewport_EpochAdvances(t *testing.T) {
	f := newViewportFixture(t, Meadow(), 100, 100)
	assert.Equal(t, uint64(0), f.viewport.Stats().Epoch)
	require.NoError(t, f.viewport.Mount())
	assert.Equal(t, uint64(1), f.viewport.Stats().Epoch)
	require.NoError(t, f.viewport.Mount(), "mounting twice is a no-op")
	assert.Equal(t, 1, f.queue.Pending())
	f.viewport.Dispose()
	assert.Equal(t, uint64(2), f.viewport.Stats().Epoch)
	assert.Equal(t, "disposed", f.viewport.State().String())
}
