package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MeshTemplate is an immutable indexed triangle mesh shared by every instance
// of a RenderBatch. Colors is either empty or parallel to Positions.
type MeshTemplate struct {
	ID        ResourceID
	Kind      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    [][4]float32
	Indices   []uint32
	BBox      [2]mgl32.Vec3 // Min, Max

	refs     int
	released bool
}

func (m *MeshTemplate) NumVertex() int { return len(m.Positions) }
func (m *MeshTemplate) NumIndex() int  { return len(m.Indices) }
func (m *MeshTemplate) HasColor() bool { return len(m.Colors) > 0 }

// Released reports whether the CPU-side vertex data has been dropped.
func (m *MeshTemplate) Released() bool { return m.released }

// Refs is the number of live batches drawing this template.
func (m *MeshTemplate) Refs() int { return m.refs }

func (m *MeshTemplate) retain() { m.refs++ }

// release drops one batch reference. The vertex data is freed with the last
// one, so a template shared through a cache outlives every scene but the
// final user.
func (m *MeshTemplate) release() {
	if m.released {
		return
	}
	if m.refs > 0 {
		m.refs--
		if m.refs > 0 {
			return
		}
	}
	m.Positions = nil
	m.Normals = nil
	m.Colors = nil
	m.Indices = nil
	m.released = true
}

// ComputeBBox refreshes BBox from Positions.
func (m *MeshTemplate) ComputeBBox() {
	if len(m.Positions) == 0 {
		m.BBox = [2]mgl32.Vec3{}
		return
	}
	inf := float32(1e20)
	bMin := mgl32.Vec3{inf, inf, inf}
	bMax := mgl32.Vec3{-inf, -inf, -inf}
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			if p[i] < bMin[i] {
				bMin[i] = p[i]
			}
			if p[i] > bMax[i] {
				bMax[i] = p[i]
			}
		}
	}
	m.BBox = [2]mgl32.Vec3{bMin, bMax}
}

// ComputeSmoothNormals accumulates area weighted face normals on shared
// vertices and normalizes them.
func (m *MeshTemplate) ComputeSmoothNormals() {
	normals := make([]mgl32.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := faceNormal(m.Positions[a], m.Positions[b], m.Positions[c])
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	m.Normals = normals
}

// Flatten de-indexes the mesh so every triangle owns its vertices, then
// assigns face normals. Used for faceted materials.
func (m *MeshTemplate) Flatten() {
	n := len(m.Indices)
	pos := make([]mgl32.Vec3, n)
	nrm := make([]mgl32.Vec3, n)
	var col [][4]float32
	if m.HasColor() {
		col = make([][4]float32, n)
	}
	idx := make([]uint32, n)
	for i := 0; i+2 < n; i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pos[i], pos[i+1], pos[i+2] = m.Positions[a], m.Positions[b], m.Positions[c]
		fn := faceNormal(pos[i], pos[i+1], pos[i+2])
		if fn.Len() > 0 {
			fn = fn.Normalize()
		}
		nrm[i], nrm[i+1], nrm[i+2] = fn, fn, fn
		if col != nil {
			col[i], col[i+1], col[i+2] = m.Colors[a], m.Colors[b], m.Colors[c]
		}
		idx[i], idx[i+1], idx[i+2] = uint32(i), uint32(i+1), uint32(i+2)
	}
	m.Positions, m.Normals, m.Colors, m.Indices = pos, nrm, col, idx
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}
