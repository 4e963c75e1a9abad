package place

import (
	"github.com/gekko3d/ambient/rt/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Rule proposes candidate positions and decides which ones are kept.
// Candidate receives the running attempt number so finite rules can walk
// their range without keeping state; it reports false once the range is
// exhausted.
type Rule interface {
	Candidate(rng *RNG, attempt int) (mgl32.Vec3, bool)
	Accept(pos mgl32.Vec3) bool
}

// HeightFunc samples ground height at planar (x, z).
type HeightFunc func(x, z float32) float32

type Bounds struct {
	MinX float32 `toml:"min_x"`
	MaxX float32 `toml:"max_x"`
	MinZ float32 `toml:"min_z"`
	MaxZ float32 `toml:"max_z"`
}

// Square returns bounds spanning [-half, half] on both axes.
func Square(half float32) Bounds {
	return Bounds{MinX: -half, MaxX: half, MinZ: -half, MaxZ: half}
}

func (b Bounds) sample(rng *RNG) (float32, float32) {
	return rng.Range(b.MinX, b.MaxX), rng.Range(b.MinZ, b.MaxZ)
}

func (b Bounds) Contains(x, z float32) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}

// Scatter draws x and z uniformly within Bounds. Y is Height(x, z) + Y when
// Height is set, otherwise Y. Candidates closer than Clearing to the origin
// are rejected.
type Scatter struct {
	Bounds   Bounds
	Y        float32
	Height   HeightFunc
	Clearing float32
}

func (s Scatter) Candidate(rng *RNG, _ int) (mgl32.Vec3, bool) {
	x, z := s.Bounds.sample(rng)
	y := s.Y
	if s.Height != nil {
		y += s.Height(x, z)
	}
	return mgl32.Vec3{x, y, z}, true
}

func (s Scatter) Accept(pos mgl32.Vec3) bool {
	if s.Clearing <= 0 {
		return true
	}
	return pos.X()*pos.X()+pos.Z()*pos.Z() >= s.Clearing*s.Clearing
}

// Ridge only keeps candidates on the crest of a furrow row (sin(x*f3) > 0)
// and seats them on the terrain surface.
type Ridge struct {
	Bounds  Bounds
	Terrain geom.Terrain
	Offset  float32
}

func (r Ridge) Candidate(rng *RNG, _ int) (mgl32.Vec3, bool) {
	x, z := r.Bounds.sample(rng)
	return mgl32.Vec3{x, r.Terrain.HeightAt(x, z) + r.Offset, z}, true
}

func (r Ridge) Accept(pos mgl32.Vec3) bool {
	return r.Terrain.OnRidge(pos.X())
}

// Lattice walks a regular grid row by row with optional jitter and is
// exhausted after the last cell.
type Lattice struct {
	Bounds Bounds
	Step   float32
	Jitter float32
	Y      float32
	Height HeightFunc
}

func (l Lattice) dims() (int, int) {
	if l.Step <= 0 {
		return 0, 0
	}
	cols := int((l.Bounds.MaxX-l.Bounds.MinX)/l.Step) + 1
	rows := int((l.Bounds.MaxZ-l.Bounds.MinZ)/l.Step) + 1
	if cols < 0 || rows < 0 {
		return 0, 0
	}
	return cols, rows
}

// Cells is the number of grid points in the lattice.
func (l Lattice) Cells() int {
	cols, rows := l.dims()
	return cols * rows
}

func (l Lattice) Candidate(rng *RNG, attempt int) (mgl32.Vec3, bool) {
	cols, rows := l.dims()
	if attempt >= cols*rows {
		return mgl32.Vec3{}, false
	}
	x := l.Bounds.MinX + float32(attempt%cols)*l.Step
	z := l.Bounds.MinZ + float32(attempt/cols)*l.Step
	if l.Jitter > 0 {
		x += rng.Range(-l.Jitter, l.Jitter)
		z += rng.Range(-l.Jitter, l.Jitter)
	}
	y := l.Y
	if l.Height != nil {
		y += l.Height(x, z)
	}
	return mgl32.Vec3{x, y, z}, true
}

func (l Lattice) Accept(mgl32.Vec3) bool { return true }

// Fixed yields an explicit list of positions, e.g. hand placed clouds.
type Fixed struct {
	Points []mgl32.Vec3
}

func (f Fixed) Candidate(_ *RNG, attempt int) (mgl32.Vec3, bool) {
	if attempt >= len(f.Points) {
		return mgl32.Vec3{}, false
	}
	return f.Points[attempt], true
}

func (f Fixed) Accept(mgl32.Vec3) bool { return true }
