package anim

import (
	"math"
	"testing"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatch(t *testing.T, name string, motion core.Motion, recs []core.InstanceRecord) *core.RenderBatch {
	t.Helper()
	mesh := &core.MeshTemplate{ID: core.NewResourceID()}
	b := core.NewRenderBatch(name, mesh, core.DefaultMaterial(), len(recs))
	b.Motion = motion
	require.NoError(t, b.Bind(recs))
	b.ClearDirty()
	return b
}

func records() []core.InstanceRecord {
	return []core.InstanceRecord{
		{Spawn: mgl32.Vec3{0, 0, 0}, Phase: 0, Scale: 1},
		{Spawn: mgl32.Vec3{3, 0.5, -2}, Phase: 1.1, Scale: 0.8},
		{Spawn: mgl32.Vec3{-7, 1, 4}, Phase: 4.2, Scale: 1.3},
	}
}

func TestPureMotionKTicksEqualsDirectEvaluation(t *testing.T) {
	for _, motion := range []core.Motion{
		{Kind: core.MotionSway, Amplitude: 1.2, LeanBias: 0.05},
		{Kind: core.MotionPulse, Amplitude: 0.3, Rate: 2},
	} {
		t.Run(string(motion.Kind), func(t *testing.T) {
			ticked := newBatch(t, "ticked", motion, records())
			direct := newBatch(t, "direct", motion, records())

			scene := core.NewScene(core.NewCamera(60, 0.1, 100))
			scene.AddBatch(ticked)
			clock := core.NewFrameClock(0.005)
			d := NewDriver()
			for k := 0; k < 137; k++ {
				d.Tick(scene, clock)
			}

			require.True(t, Evaluate(direct, clock.Time()))
			for i := 0; i < ticked.Len(); i++ {
				assert.Equal(t, direct.Instances.Matrix(i), ticked.Instances.Matrix(i), "instance %d", i)
			}
		})
	}
}

func TestSwayClosedForm(t *testing.T) {
	b := newBatch(t, "grass", core.Motion{Kind: core.MotionSway, Amplitude: 1}, records())
	tm := float32(0.5)
	Evaluate(b, tm)

	x, z := 3.0, -2.0
	rz := math.Sin(1.5*0.5+0.5*x+0.3*z) * 0.15
	rx := math.Cos(1.2*0.5+0.3*x+0.5*z) * 0.1
	assert.InDelta(t, rz, b.Instances.Rotation[1].Z(), 1e-6)
	assert.InDelta(t, rx, b.Instances.Rotation[1].X(), 1e-6)
	assert.Equal(t, b.Instances.Spawn[1], b.Instances.Position[1])
}

func TestDriftAccumulates(t *testing.T) {
	motion := core.Motion{Kind: core.MotionDrift, K1: 0.01, K2: 0.02, Spin: 0.1}
	b := newBatch(t, "particles", motion, records())
	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(b)
	clock := core.NewFrameClock(0.005)
	d := NewDriver()

	var wantX, wantY float64
	spawn := b.Instances.Spawn[1]
	phase := float64(b.Instances.Phase[1])
	for k := 1; k <= 50; k++ {
		d.Tick(scene, clock)
		tm := float64(clock.Time())
		wantX += math.Cos(0.5*tm+phase) * 0.02
		wantY += math.Sin(tm+phase) * 0.01
	}
	pos := b.Instances.Position[1]
	assert.InDelta(t, float64(spawn.X())+wantX, pos.X(), 1e-4)
	assert.InDelta(t, float64(spawn.Y())+wantY, pos.Y(), 1e-4)
	assert.Equal(t, spawn.Z(), pos.Z())
	assert.InDelta(t, 5.0, b.Instances.Rotation[1].Y(), 1e-4)
	assert.Equal(t, uint64(51), b.DirtyCount())
}

func TestConveyorWraps(t *testing.T) {
	motion := core.Motion{Kind: core.MotionConveyor, Speed: 1, MinX: -10, MaxX: 10}
	recs := []core.InstanceRecord{
		{Spawn: mgl32.Vec3{8, 20, 0}},
		{Spawn: mgl32.Vec3{0, 22, 5}},
	}
	b := newBatch(t, "clouds", motion, recs)
	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(b)
	clock := core.NewFrameClock(0.005)
	d := NewDriver()

	d.Tick(scene, clock)
	assert.Equal(t, float32(9), b.Instances.Position[0].X())
	assert.Equal(t, float32(2), b.Instances.Position[1].X())

	d.Tick(scene, clock)
	d.Tick(scene, clock)
	// 9 -> 10 -> 11 > MaxX wraps to MinX
	assert.Equal(t, float32(-10), b.Instances.Position[0].X())
	assert.Equal(t, float32(20), b.Instances.Position[0].Y())
}

func TestStaticBatchesStayClean(t *testing.T) {
	still := newBatch(t, "terrain", core.Motion{Kind: core.MotionNone}, records())
	unset := newBatch(t, "trees", core.Motion{}, records())
	moving := newBatch(t, "grass", core.Motion{Kind: core.MotionSway, Amplitude: 1}, records())

	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(still)
	scene.AddBatch(unset)
	scene.AddBatch(moving)

	d := NewDriver()
	clock := core.NewFrameClock(0.002)
	for k := 0; k < 10; k++ {
		d.Tick(scene, clock)
		assert.True(t, moving.Dirty())
		moving.ClearDirty()
		assert.Equal(t, 1, d.Updated())
	}
	assert.False(t, still.Dirty())
	assert.False(t, unset.Dirty())
	assert.Equal(t, uint64(1), still.DirtyCount(), "only the initial bind")
	assert.Equal(t, uint64(11), moving.DirtyCount())
}

func TestMotionsThatCannotMoveStayClean(t *testing.T) {
	for _, motion := range []core.Motion{
		{Kind: core.MotionSway},
		{Kind: core.MotionPulse, Rate: 3},
		{Kind: core.MotionDrift},
		{Kind: core.MotionConveyor, MinX: -10, MaxX: 10},
	} {
		t.Run(string(motion.Kind), func(t *testing.T) {
			assert.False(t, motion.Animated())
			b := newBatch(t, "idle", motion, records())
			before := make([]mgl32.Mat4, b.Len())
			for i := range before {
				before[i] = b.Instances.Matrix(i)
			}

			scene := core.NewScene(core.NewCamera(60, 0.1, 100))
			scene.AddBatch(b)
			d := NewDriver()
			clock := core.NewFrameClock(0.005)
			for k := 0; k < 10; k++ {
				d.Tick(scene, clock)
				assert.Zero(t, d.Updated())
			}
			assert.False(t, b.Dirty())
			assert.Equal(t, uint64(1), b.DirtyCount())
			for i := range before {
				assert.Equal(t, before[i], b.Instances.Matrix(i))
			}
		})
	}
}

func TestLeaningSwayIsPosedOnce(t *testing.T) {
	b := newBatch(t, "sprouts", core.Motion{Kind: core.MotionSway, LeanBias: 0.05}, records())
	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(b)

	d := NewDriver()
	clock := core.NewFrameClock(0.005)
	d.Tick(scene, clock)
	require.True(t, b.Dirty())
	assert.Equal(t, 1, d.Updated())
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, mgl32.Vec3{0.05, 0, 0}, b.Instances.Rotation[i])
	}
	b.ClearDirty()

	for k := 0; k < 10; k++ {
		d.Tick(scene, clock)
	}
	assert.False(t, b.Dirty())
	assert.Equal(t, uint64(2), b.DirtyCount())
}

func TestFrozenPulseIsPosedOnce(t *testing.T) {
	motion := core.Motion{Kind: core.MotionPulse, Amplitude: 0.5}
	require.False(t, motion.Animated())
	b := newBatch(t, "fireflies", motion, records())
	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(b)

	d := NewDriver()
	clock := core.NewFrameClock(0.005)
	for k := 0; k < 5; k++ {
		d.Tick(scene, clock)
	}
	assert.Equal(t, uint64(2), b.DirtyCount())
	a := b.Instances
	for i := 0; i < a.Len(); i++ {
		want := a.BaseScale[i] * (1 + float32(math.Sin(float64(a.Phase[i])))*0.5)
		assert.InDelta(t, want, a.Scale[i].X(), 1e-6)
	}
}

func TestConveyorWrapsBackwards(t *testing.T) {
	motion := core.Motion{Kind: core.MotionConveyor, Speed: -1, MinX: -10, MaxX: 10}
	b := newBatch(t, "clouds", motion, []core.InstanceRecord{{Spawn: mgl32.Vec3{-8, 20, 0}}})
	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(b)
	clock := core.NewFrameClock(0.005)
	d := NewDriver()

	d.Tick(scene, clock)
	d.Tick(scene, clock)
	assert.Equal(t, float32(-10), b.Instances.Position[0].X())
	d.Tick(scene, clock)
	// -11 < MinX wraps to MaxX
	assert.Equal(t, float32(10), b.Instances.Position[0].X())

	for k := 0; k < 100; k++ {
		d.Tick(scene, clock)
		x := b.Instances.Position[0].X()
		assert.True(t, x >= -10 && x <= 10, "x = %v", x)
	}
}

func TestCameraSway(t *testing.T) {
	cam := core.NewCamera(60, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 5, 30}
	cam.Target = mgl32.Vec3{0, 0, 0}
	scene := core.NewScene(cam)
	scene.Sway = core.CameraSway{Omega: 0.5, Amplitude: 2, BaseX: 1}

	d := NewDriver()
	clock := core.NewFrameClock(0.005)
	for k := 0; k < 200; k++ {
		d.Tick(scene, clock)
	}
	want := 1 + math.Sin(float64(clock.Time())*0.5)*2
	assert.InDelta(t, want, cam.Position.X(), 1e-5)
	assert.Equal(t, float32(5), cam.Position.Y())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target)
}

func TestTickOnDisposedSceneIsNoop(t *testing.T) {
	b := newBatch(t, "grass", core.Motion{Kind: core.MotionSway, Amplitude: 1}, records())
	scene := core.NewScene(core.NewCamera(60, 0.1, 100))
	scene.AddBatch(b)
	scene.Dispose()

	before := b.DirtyCount()
	clock := core.NewFrameClock(0.005)
	d := NewDriver()
	d.Tick(scene, clock)
	assert.Equal(t, before, b.DirtyCount())
	assert.False(t, b.Dirty())
	assert.Equal(t, 0, d.Updated())
}
