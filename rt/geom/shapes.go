package geom

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

type ShapeKind string

const (
	ShapeStalk       ShapeKind = "stalk"
	ShapeTerrain     ShapeKind = "terrain"
	ShapeCone        ShapeKind = "cone"
	ShapeIcosahedron ShapeKind = "icosahedron"
	ShapeSphere      ShapeKind = "sphere"
	ShapeCylinder    ShapeKind = "cylinder"
	ShapePoints      ShapeKind = "points"
)

// Params carries the size inputs of every shape kind; each builder reads only
// its own fields. Zero segment counts fall back to the kind's default.
type Params struct {
	Radius         float32 `toml:"radius"`
	RadiusTop      float32 `toml:"radius_top"` // stalk/cylinder; 0 means same as Radius
	Height         float32 `toml:"height"`
	RadialSegments int     `toml:"radial_segments"`
	HeightSegments int     `toml:"height_segments"`
	Detail         int     `toml:"detail"` // icosahedron subdivisions
	Count          int     `toml:"count"`  // points
	Seed           int64   `toml:"seed"`   // points
	Flat           bool    `toml:"flat"`
	Terrain        Terrain `toml:"terrain"`
}

// Build synthesizes the mesh template for kind. The result is immutable and
// safe to share between batches.
func Build(kind ShapeKind, p Params) (*core.MeshTemplate, error) {
	var (
		mesh *core.MeshTemplate
		err  error
	)
	switch kind {
	case ShapeStalk:
		mesh, err = buildStalk(p)
	case ShapeTerrain:
		mesh, err = buildTerrain(p)
	case ShapeCone:
		mesh, err = buildCone(p)
	case ShapeIcosahedron:
		mesh, err = buildIcosahedron(p)
	case ShapeSphere:
		mesh, err = buildSphere(p)
	case ShapeCylinder:
		mesh, err = buildCylinder(p)
	case ShapePoints:
		mesh, err = buildPoints(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidShapeKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	if p.Flat && len(mesh.Indices) > 0 {
		mesh.Flatten()
	}
	mesh.ID = core.NewResourceID()
	mesh.Kind = string(kind)
	mesh.ComputeBBox()
	return mesh, nil
}

func paramErr(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidParameter, field, v)
}

func segments(v, def, minimum int, field string) (int, error) {
	if v == 0 {
		return def, nil
	}
	if v < minimum {
		return 0, paramErr(field, v)
	}
	return v, nil
}

func buildStalk(p Params) (*core.MeshTemplate, error) {
	top, err := topRadius(p)
	if err != nil {
		return nil, err
	}
	radial, err := segments(p.RadialSegments, 4, 3, "radial_segments")
	if err != nil {
		return nil, err
	}
	rows, err := segments(p.HeightSegments, 1, 1, "height_segments")
	if err != nil {
		return nil, err
	}
	// root at y=0 so sway rotates around the base
	return cylinder(top, p.Radius, p.Height, radial, rows, false, p.Height/2), nil
}

func buildCylinder(p Params) (*core.MeshTemplate, error) {
	top, err := topRadius(p)
	if err != nil {
		return nil, err
	}
	radial, err := segments(p.RadialSegments, 8, 3, "radial_segments")
	if err != nil {
		return nil, err
	}
	rows, err := segments(p.HeightSegments, 1, 1, "height_segments")
	if err != nil {
		return nil, err
	}
	return cylinder(top, p.Radius, p.Height, radial, rows, true, 0), nil
}

func buildCone(p Params) (*core.MeshTemplate, error) {
	if p.Radius <= 0 {
		return nil, paramErr("radius", p.Radius)
	}
	if p.Height <= 0 {
		return nil, paramErr("height", p.Height)
	}
	radial, err := segments(p.RadialSegments, 8, 3, "radial_segments")
	if err != nil {
		return nil, err
	}
	rows, err := segments(p.HeightSegments, 1, 1, "height_segments")
	if err != nil {
		return nil, err
	}
	return cylinder(0, p.Radius, p.Height, radial, rows, true, 0), nil
}

func topRadius(p Params) (float32, error) {
	if p.Radius <= 0 {
		return 0, paramErr("radius", p.Radius)
	}
	if p.Height <= 0 {
		return 0, paramErr("height", p.Height)
	}
	if p.RadiusTop < 0 {
		return 0, paramErr("radius_top", p.RadiusTop)
	}
	if p.RadiusTop == 0 {
		return p.Radius, nil
	}
	return p.RadiusTop, nil
}

// cylinder builds a (possibly tapered) tube centered on the y axis, shifted
// up by lift. Caps are only emitted for rims with a non-zero radius.
func cylinder(radiusTop, radiusBottom, height float32, radial, rows int, capped bool, lift float32) *core.MeshTemplate {
	mesh := &core.MeshTemplate{}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	grid := make([][]uint32, rows+1)
	for y := 0; y <= rows; y++ {
		v := float32(y) / float32(rows)
		r := v*(radiusBottom-radiusTop) + radiusTop
		py := -v*height + half + lift
		grid[y] = make([]uint32, radial+1)
		for x := 0; x <= radial; x++ {
			theta := float64(x) / float64(radial) * 2 * math.Pi
			sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))
			grid[y][x] = uint32(len(mesh.Positions))
			mesh.Positions = append(mesh.Positions, mgl32.Vec3{r * sin, py, r * cos})
			mesh.Normals = append(mesh.Normals, mgl32.Vec3{sin, slope, cos}.Normalize())
		}
	}
	for x := 0; x < radial; x++ {
		for y := 0; y < rows; y++ {
			a, b := grid[y][x], grid[y+1][x]
			c, d := grid[y+1][x+1], grid[y][x+1]
			mesh.Indices = append(mesh.Indices, a, b, d, b, c, d)
		}
	}

	if capped {
		if radiusTop > 0 {
			addCap(mesh, radiusTop, half+lift, radial, true)
		}
		if radiusBottom > 0 {
			addCap(mesh, radiusBottom, -half+lift, radial, false)
		}
	}
	return mesh
}

func addCap(mesh *core.MeshTemplate, radius, y float32, radial int, top bool) {
	normal := mgl32.Vec3{0, -1, 0}
	if top {
		normal = mgl32.Vec3{0, 1, 0}
	}
	center := uint32(len(mesh.Positions))
	mesh.Positions = append(mesh.Positions, mgl32.Vec3{0, y, 0})
	mesh.Normals = append(mesh.Normals, normal)
	first := uint32(len(mesh.Positions))
	for x := 0; x <= radial; x++ {
		theta := float64(x) / float64(radial) * 2 * math.Pi
		mesh.Positions = append(mesh.Positions, mgl32.Vec3{
			radius * float32(math.Sin(theta)), y, radius * float32(math.Cos(theta)),
		})
		mesh.Normals = append(mesh.Normals, normal)
	}
	for x := uint32(0); x < uint32(radial); x++ {
		i := first + x
		if top {
			mesh.Indices = append(mesh.Indices, center, i, i+1)
		} else {
			mesh.Indices = append(mesh.Indices, center, i+1, i)
		}
	}
}

func buildSphere(p Params) (*core.MeshTemplate, error) {
	if p.Radius <= 0 {
		return nil, paramErr("radius", p.Radius)
	}
	ws, err := segments(p.RadialSegments, 16, 3, "radial_segments")
	if err != nil {
		return nil, err
	}
	hs, err := segments(p.HeightSegments, 12, 2, "height_segments")
	if err != nil {
		return nil, err
	}

	mesh := &core.MeshTemplate{}
	grid := make([][]uint32, hs+1)
	for iy := 0; iy <= hs; iy++ {
		v := float64(iy) / float64(hs)
		grid[iy] = make([]uint32, ws+1)
		for ix := 0; ix <= ws; ix++ {
			u := float64(ix) / float64(ws)
			n := mgl32.Vec3{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			grid[iy][ix] = uint32(len(mesh.Positions))
			mesh.Positions = append(mesh.Positions, n.Mul(p.Radius))
			mesh.Normals = append(mesh.Normals, n)
		}
	}
	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a, b := grid[iy][ix+1], grid[iy][ix]
			c, d := grid[iy+1][ix], grid[iy+1][ix+1]
			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if iy != hs-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}
	return mesh, nil
}

var icoIndices = []uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

func buildIcosahedron(p Params) (*core.MeshTemplate, error) {
	if p.Radius <= 0 {
		return nil, paramErr("radius", p.Radius)
	}
	if p.Detail < 0 || p.Detail > 5 {
		return nil, paramErr("detail", p.Detail)
	}

	t := float32((1 + math.Sqrt(5)) / 2)
	unit := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range unit {
		unit[i] = unit[i].Normalize()
	}
	indices := append([]uint32(nil), icoIndices...)

	for level := 0; level < p.Detail; level++ {
		mid := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if a > b {
				key = [2]uint32{b, a}
			}
			if i, ok := mid[key]; ok {
				return i
			}
			i := uint32(len(unit))
			unit = append(unit, unit[a].Add(unit[b]).Normalize())
			mid[key] = i
			return i
		}
		next := make([]uint32, 0, len(indices)*4)
		for f := 0; f < len(indices); f += 3 {
			a, b, c := indices[f], indices[f+1], indices[f+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next, a, ab, ca, b, bc, ab, c, ca, bc, ab, bc, ca)
		}
		indices = next
	}

	mesh := &core.MeshTemplate{
		Positions: make([]mgl32.Vec3, len(unit)),
		Normals:   unit,
		Indices:   indices,
	}
	for i, n := range unit {
		mesh.Positions[i] = n.Mul(p.Radius)
	}
	return mesh, nil
}

func buildTerrain(p Params) (*core.MeshTemplate, error) {
	t := p.Terrain
	if err := t.validate(); err != nil {
		return nil, err
	}

	cols, rows := t.SegmentsX+1, t.SegmentsZ+1
	mesh := &core.MeshTemplate{
		Positions: make([]mgl32.Vec3, 0, cols*rows),
		Colors:    make([][4]float32, 0, cols*rows),
		Indices:   make([]uint32, 0, t.SegmentsX*t.SegmentsZ*6),
	}
	dx := t.Width / float32(t.SegmentsX)
	dz := t.Depth / float32(t.SegmentsZ)
	for iz := 0; iz < rows; iz++ {
		z := -t.Depth/2 + float32(iz)*dz
		for ix := 0; ix < cols; ix++ {
			x := -t.Width/2 + float32(ix)*dx
			h := t.HeightAt(x, z)
			c := t.ColorAt(h)
			mesh.Positions = append(mesh.Positions, mgl32.Vec3{x, h, z})
			mesh.Colors = append(mesh.Colors, [4]float32{c[0], c[1], c[2], 1})
		}
	}
	for iz := 0; iz < t.SegmentsZ; iz++ {
		for ix := 0; ix < t.SegmentsX; ix++ {
			a := uint32(iz*cols + ix)
			b := uint32((iz+1)*cols + ix)
			c := b + 1
			d := a + 1
			mesh.Indices = append(mesh.Indices, a, b, d, b, c, d)
		}
	}
	// normals follow the displaced positions
	mesh.ComputeSmoothNormals()
	return mesh, nil
}

// buildPoints scatters Count points uniformly inside a ball of Radius. The
// template has no indices and is drawn as a point list.
func buildPoints(p Params) (*core.MeshTemplate, error) {
	if p.Radius <= 0 {
		return nil, paramErr("radius", p.Radius)
	}
	if p.Count <= 0 {
		return nil, paramErr("count", p.Count)
	}
	rng := rand.New(rand.NewPCG(uint64(p.Seed), 0))
	mesh := &core.MeshTemplate{
		Positions: make([]mgl32.Vec3, 0, p.Count),
		Normals:   make([]mgl32.Vec3, 0, p.Count),
	}
	for len(mesh.Positions) < p.Count {
		v := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
		}
		if v.Len() > 1 {
			continue
		}
		mesh.Positions = append(mesh.Positions, v.Mul(p.Radius))
		mesh.Normals = append(mesh.Normals, mgl32.Vec3{0, 1, 0})
	}
	return mesh, nil
}
