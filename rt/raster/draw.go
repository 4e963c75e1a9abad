package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// minW keeps vertices behind or on the eye plane out of the projection.
const minW = 1e-4

type frame struct {
	img      *image.RGBA
	depth    []float32
	width    int
	height   int
	viewProj mgl32.Mat4
	eye      mgl32.Vec3
	fog      core.Fog
	lights   lighting

	screen []mgl32.Vec3 // x, y in pixels, z in NDC
	world  []mgl32.Vec3
	valid  []bool
}

func (f *frame) drawBatch(batch *core.RenderBatch, transforms []mgl32.Mat4) {
	mesh := batch.Mesh
	n := mesh.NumVertex()
	if cap(f.screen) < n {
		f.screen = make([]mgl32.Vec3, n)
		f.world = make([]mgl32.Vec3, n)
		f.valid = make([]bool, n)
	}
	f.screen, f.world, f.valid = f.screen[:n], f.world[:n], f.valid[:n]

	for i, model := range transforms {
		tint := batch.Instances.Color[i]
		mvp := f.viewProj.Mul4(model)
		for v, p := range mesh.Positions {
			f.world[v] = model.Mul4x1(p.Vec4(1)).Vec3()
			f.screen[v], f.valid[v] = f.project(mvp.Mul4x1(p.Vec4(1)))
		}
		if len(mesh.Indices) == 0 {
			f.drawPoints(mesh, batch.Material, tint)
			continue
		}
		for t := 0; t+2 < len(mesh.Indices); t += 3 {
			ia, ib, ic := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
			if !f.valid[ia] || !f.valid[ib] || !f.valid[ic] {
				continue
			}
			col := f.triangleColor(mesh, model, batch.Material, tint, ia, ib, ic)
			f.fill(f.screen[ia], f.screen[ib], f.screen[ic], col)
		}
	}
}

func (f *frame) project(clip mgl32.Vec4) (mgl32.Vec3, bool) {
	w := clip.W()
	if w <= minW {
		return mgl32.Vec3{}, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{
		(ndc.X()*0.5 + 0.5) * float32(f.width),
		(0.5 - ndc.Y()*0.5) * float32(f.height),
		ndc.Z(),
	}, true
}

func (f *frame) triangleColor(mesh *core.MeshTemplate, model mgl32.Mat4, mat core.Material, tint [4]float32, ia, ib, ic uint32) color.RGBA {
	a, b, c := f.world[ia], f.world[ib], f.world[ic]
	centroid := a.Add(b).Add(c).Mul(1.0 / 3)

	var normal mgl32.Vec3
	if mat.FlatShading || len(mesh.Normals) != len(mesh.Positions) {
		normal = b.Sub(a).Cross(c.Sub(a))
	} else {
		sum := mesh.Normals[ia].Add(mesh.Normals[ib]).Add(mesh.Normals[ic])
		normal = model.Mul4x1(sum.Vec4(0)).Vec3()
	}
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}

	base := mgl32.Vec3{mat.BaseColor[0] * tint[0], mat.BaseColor[1] * tint[1], mat.BaseColor[2] * tint[2]}
	if mat.VertexColors && mesh.HasColor() {
		ca, cb, cc := mesh.Colors[ia], mesh.Colors[ib], mesh.Colors[ic]
		base = mgl32.Vec3{
			base[0] * (ca[0] + cb[0] + cc[0]) / 3,
			base[1] * (ca[1] + cb[1] + cc[1]) / 3,
			base[2] * (ca[2] + cb[2] + cc[2]) / 3,
		}
	}
	light := f.lights.shade(centroid, normal)
	lit := [3]float32{
		base[0]*light[0] + mat.Emissive[0],
		base[1]*light[1] + mat.Emissive[1],
		base[2]*light[2] + mat.Emissive[2],
	}
	lit = f.fog.Apply(lit, centroid.Sub(f.eye).Len())
	return toRGBA(lit, 1)
}

func (f *frame) drawPoints(mesh *core.MeshTemplate, mat core.Material, tint [4]float32) {
	for v := range mesh.Positions {
		if !f.valid[v] {
			continue
		}
		c := [3]float32{
			mat.BaseColor[0]*tint[0] + mat.Emissive[0],
			mat.BaseColor[1]*tint[1] + mat.Emissive[1],
			mat.BaseColor[2]*tint[2] + mat.Emissive[2],
		}
		c = f.fog.Apply(c, f.world[v].Sub(f.eye).Len())
		p := f.screen[v]
		f.plot(int(p.X()), int(p.Y()), p.Z(), toRGBA(c, 1))
	}
}

func (f *frame) plot(x, y int, z float32, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	i := y*f.width + x
	if z >= f.depth[i] {
		return
	}
	f.depth[i] = z
	f.img.SetRGBA(x, y, c)
}

func edge(a, b mgl32.Vec3, px, py float32) float32 {
	return (b.X()-a.X())*(py-a.Y()) - (b.Y()-a.Y())*(px-a.X())
}

// fill rasterizes a triangle of either winding with a depth test.
func (f *frame) fill(a, b, c mgl32.Vec3, col color.RGBA) {
	area := edge(a, b, c.X(), c.Y())
	if area == 0 {
		return
	}
	minX := max(0, int(math.Floor(float64(min(a.X(), b.X(), c.X())))))
	maxX := min(f.width-1, int(math.Ceil(float64(max(a.X(), b.X(), c.X())))))
	minY := max(0, int(math.Floor(float64(min(a.Y(), b.Y(), c.Y())))))
	maxY := min(f.height-1, int(math.Ceil(float64(max(a.Y(), b.Y(), c.Y())))))
	inv := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) * inv
			w1 := edge(c, a, px, py) * inv
			w2 := edge(a, b, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			f.plot(x, y, a.Z()*w0+b.Z()*w1+c.Z()*w2, col)
		}
	}
}
