package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCapacityIsFixed(t *testing.T) {
	b := NewRenderBatch("stalks", &MeshTemplate{ID: NewResourceID()}, DefaultMaterial(), 3)

	records := []InstanceRecord{
		{Spawn: mgl32.Vec3{1, 0, 0}, Scale: 1},
		{Spawn: mgl32.Vec3{2, 0, 0}, Scale: 2},
		{Spawn: mgl32.Vec3{3, 0, 0}},
	}
	require.NoError(t, b.Bind(records))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3, b.Capacity())

	// zero scale falls back to 1
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, b.Instances.Scale[2])

	err := b.Bind([]InstanceRecord{{}})
	require.ErrorIs(t, err, ErrBatchFull)
	assert.Equal(t, 3, b.Len())
	assert.Len(t, b.Instances.Position, 3, "arena slices never grow")
}

func TestBatchDirtyTracking(t *testing.T) {
	b := NewRenderBatch("clouds", &MeshTemplate{}, DefaultMaterial(), 1)
	assert.True(t, b.Dirty(), "new batches need a first upload")

	b.ClearDirty()
	assert.False(t, b.Dirty())

	b.MarkDirty()
	b.MarkDirty()
	assert.True(t, b.Dirty())
	assert.Equal(t, uint64(2), b.DirtyCount())
}

func TestInstanceMatrix(t *testing.T) {
	b := NewRenderBatch("trees", &MeshTemplate{}, DefaultMaterial(), 1)
	require.NoError(t, b.Bind([]InstanceRecord{{Spawn: mgl32.Vec3{4, 5, 6}, Scale: 2}}))

	m := b.Instances.Matrix(0)
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 6, p.X(), 1e-5)
	assert.InDelta(t, 5, p.Y(), 1e-5)
	assert.InDelta(t, 6, p.Z(), 1e-5)

	b.Instances.Rotation[0] = mgl32.Vec3{0, 0, mgl32.DegToRad(90)}
	m = b.Instances.Matrix(0)
	p = m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 4, p.X(), 1e-5)
	assert.InDelta(t, 7, p.Y(), 1e-5)

	dst := make([]float32, 16)
	assert.Equal(t, 16, b.WriteMatrices(dst))
	assert.Equal(t, m[12], dst[12])
}
