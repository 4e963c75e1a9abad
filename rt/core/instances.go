package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// InstanceRecord is the spawn-time state of one instance as produced by the
// placement planner.
type InstanceRecord struct {
	Spawn    mgl32.Vec3
	Phase    float32 // radians in [0, 2π)
	Scale    float32
	Color    [4]float32
	HasColor bool
}

// InstanceArena stores per-instance state as parallel slices indexed by
// instance id (SoA). Every slice is allocated once at the batch capacity and
// never grows, so per-frame updates do not allocate.
type InstanceArena struct {
	Spawn     []mgl32.Vec3
	Phase     []float32
	BaseScale []float32

	Position []mgl32.Vec3
	Rotation []mgl32.Vec3 // Euler XYZ, radians
	Scale    []mgl32.Vec3
	Color    [][4]float32

	count    int
	capacity int
	hasColor bool
}

func NewInstanceArena(capacity int) *InstanceArena {
	if capacity < 0 {
		capacity = 0
	}
	return &InstanceArena{
		Spawn:     make([]mgl32.Vec3, capacity),
		Phase:     make([]float32, capacity),
		BaseScale: make([]float32, capacity),
		Position:  make([]mgl32.Vec3, capacity),
		Rotation:  make([]mgl32.Vec3, capacity),
		Scale:     make([]mgl32.Vec3, capacity),
		Color:     make([][4]float32, capacity),
		capacity:  capacity,
	}
}

func (a *InstanceArena) Len() int       { return a.count }
func (a *InstanceArena) Cap() int       { return a.capacity }
func (a *InstanceArena) HasColor() bool { return a.hasColor }

// Add writes rec into the next free slot and returns its index.
func (a *InstanceArena) Add(rec InstanceRecord) (int, error) {
	if a.count >= a.capacity {
		return -1, ErrBatchFull
	}
	i := a.count
	scale := rec.Scale
	if scale == 0 {
		scale = 1
	}
	a.Spawn[i] = rec.Spawn
	a.Phase[i] = rec.Phase
	a.BaseScale[i] = scale
	a.Position[i] = rec.Spawn
	a.Rotation[i] = mgl32.Vec3{}
	a.Scale[i] = mgl32.Vec3{scale, scale, scale}
	if rec.HasColor {
		a.Color[i] = rec.Color
		a.hasColor = true
	} else {
		a.Color[i] = [4]float32{1, 1, 1, 1}
	}
	a.count++
	return i, nil
}

// Record returns the spawn-time record of instance i.
func (a *InstanceArena) Record(i int) InstanceRecord {
	return InstanceRecord{
		Spawn:    a.Spawn[i],
		Phase:    a.Phase[i],
		Scale:    a.BaseScale[i],
		Color:    a.Color[i],
		HasColor: a.hasColor,
	}
}

// Matrix returns the object-to-world matrix of instance i: T * Rx * Ry * Rz * S.
func (a *InstanceArena) Matrix(i int) mgl32.Mat4 {
	p, r, s := a.Position[i], a.Rotation[i], a.Scale[i]
	translate := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	rotate := mgl32.HomogRotate3DX(r.X()).Mul4(mgl32.HomogRotate3DY(r.Y())).Mul4(mgl32.HomogRotate3DZ(r.Z()))
	scale := mgl32.Scale3D(s.X(), s.Y(), s.Z())
	return translate.Mul4(rotate).Mul4(scale)
}
