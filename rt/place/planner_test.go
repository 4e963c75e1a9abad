package place

import (
	"math"
	"testing"

	"github.com/gekko3d/ambient/rt/geom"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanScatterReturnsExactCount(t *testing.T) {
	p := Planner{Seed: 7, ScaleRange: [2]float32{0.8, 1.2}}
	recs := p.Plan(2000, Scatter{Bounds: Square(50)})

	require.Len(t, recs, 2000)
	for _, r := range recs {
		assert.True(t, Square(50).Contains(r.Spawn.X(), r.Spawn.Z()))
		assert.GreaterOrEqual(t, r.Phase, float32(0))
		assert.Less(t, r.Phase, float32(2*math.Pi))
		assert.GreaterOrEqual(t, r.Scale, float32(0.8))
		assert.LessOrEqual(t, r.Scale, float32(1.2))
		assert.False(t, r.HasColor)
	}
}

func TestPlanRidgeSatisfiesConstraint(t *testing.T) {
	ter := geom.DefaultTerrain()
	p := Planner{Seed: 3}
	recs := p.Plan(500, Ridge{Bounds: Square(50), Terrain: ter})

	require.Len(t, recs, 500)
	for _, r := range recs {
		x, z := r.Spawn.X(), r.Spawn.Z()
		assert.Greater(t, math.Sin(float64(x)*float64(ter.FurrowFreq)), 0.0, "x=%v", x)
		assert.Equal(t, ter.HeightAt(x, z), r.Spawn.Y(), "sprout must sit on the terrain")
		assert.Equal(t, float32(1), r.Scale)
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	p := Planner{Seed: 42, ScaleRange: [2]float32{0.5, 2}}
	a := p.Plan(100, Scatter{Bounds: Square(10)})
	b := p.Plan(100, Scatter{Bounds: Square(10)})
	assert.Equal(t, a, b)

	c := Planner{Seed: 43, ScaleRange: p.ScaleRange}.Plan(100, Scatter{Bounds: Square(10)})
	assert.NotEqual(t, a, c)
}

func TestPlanStopsWhenRuleIsExhausted(t *testing.T) {
	lat := Lattice{Bounds: Bounds{MinX: 0, MaxX: 2, MinZ: 0, MaxZ: 1}, Step: 1}
	require.Equal(t, 6, lat.Cells())

	recs := Planner{Seed: 1}.Plan(50, lat)
	require.Len(t, recs, 6)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, recs[0].Spawn)
	assert.Equal(t, mgl32.Vec3{2, 0, 1}, recs[5].Spawn)

	fixed := Fixed{Points: []mgl32.Vec3{{1, 20, 0}, {-4, 22, 3}}}
	recs = Planner{Seed: 1}.Plan(10, fixed)
	require.Len(t, recs, 2)
	assert.Equal(t, fixed.Points[1], recs[1].Spawn)
}

func TestPlanAttemptBudget(t *testing.T) {
	// clearing larger than the bounds rejects every candidate
	rule := Scatter{Bounds: Square(1), Clearing: 10}
	recs := Planner{Seed: 9, MaxAttempts: 5}.Plan(20, rule)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestPlanZeroCount(t *testing.T) {
	assert.Empty(t, Planner{}.Plan(0, Scatter{Bounds: Square(1)}))
	assert.Empty(t, Planner{}.Plan(-3, Scatter{Bounds: Square(1)}))
	assert.Empty(t, Planner{}.Plan(3, nil))
}

func TestScatterClearingAndHeight(t *testing.T) {
	rule := Scatter{
		Bounds:   Square(30),
		Y:        0.5,
		Height:   func(x, z float32) float32 { return 2 },
		Clearing: 15,
	}
	recs := Planner{Seed: 11}.Plan(200, rule)
	require.Len(t, recs, 200)
	for _, r := range recs {
		d := r.Spawn.X()*r.Spawn.X() + r.Spawn.Z()*r.Spawn.Z()
		assert.GreaterOrEqual(t, d, float32(225))
		assert.Equal(t, float32(2.5), r.Spawn.Y())
	}
}

func TestPlanPalette(t *testing.T) {
	palette := [][4]float32{{1, 0, 0, 1}, {0, 1, 0, 1}}
	recs := Planner{Seed: 5, Palette: palette}.Plan(64, Scatter{Bounds: Square(5)})
	require.Len(t, recs, 64)
	seen := map[[4]float32]bool{}
	for _, r := range recs {
		assert.True(t, r.HasColor)
		assert.Contains(t, palette, r.Color)
		seen[r.Color] = true
	}
	assert.Len(t, seen, 2)
}

func TestLatticeJitterStaysNearCell(t *testing.T) {
	lat := Lattice{Bounds: Square(2), Step: 1, Jitter: 0.25, Y: 1}
	recs := Planner{Seed: 2}.Plan(100, lat)
	require.Len(t, recs, lat.Cells())
	for i, r := range recs {
		cx := float32(-2 + i%5)
		cz := float32(-2 + i/5)
		assert.InDelta(t, cx, r.Spawn.X(), 0.25)
		assert.InDelta(t, cz, r.Spawn.Z(), 0.25)
		assert.Equal(t, float32(1), r.Spawn.Y())
	}
}
