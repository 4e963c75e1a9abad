package gpu

import (
	"unsafe"

	"github.com/gekko3d/ambient/rt/core"
)

const (
	vertexFloats   = 10 // position.xyz, normal.xyz, color.rgba
	instanceFloats = 20 // model matrix columns, tint.rgba
	frameFloats    = 48
	materialFloats = 12

	vertexStride   = vertexFloats * 4
	instanceStride = instanceFloats * 4
	frameSize      = frameFloats * 4
	materialSize   = materialFloats * 4
)

// packVertices interleaves a template into the vertex buffer layout. Missing
// normals or colors are written as zero normal and white.
func packVertices(m *core.MeshTemplate) []float32 {
	out := make([]float32, 0, m.NumVertex()*vertexFloats)
	hasNormals := len(m.Normals) == len(m.Positions)
	for i, p := range m.Positions {
		out = append(out, p[0], p[1], p[2])
		if hasNormals {
			n := m.Normals[i]
			out = append(out, n[0], n[1], n[2])
		} else {
			out = append(out, 0, 0, 0)
		}
		if m.HasColor() {
			c := m.Colors[i]
			out = append(out, c[0], c[1], c[2], c[3])
		} else {
			out = append(out, 1, 1, 1, 1)
		}
	}
	return out
}

// packInstances writes every live instance of b into dst and returns the
// number of floats used. dst must hold Len()*instanceFloats floats.
func packInstances(b *core.RenderBatch, dst []float32) int {
	a := b.Instances
	for i := 0; i < a.Len(); i++ {
		m := a.Matrix(i)
		off := i * instanceFloats
		copy(dst[off:off+16], m[:])
		copy(dst[off+16:off+20], a.Color[i][:])
	}
	return a.Len() * instanceFloats
}

// packFrame lays out the per-frame uniform block. Only the first directional
// and the first point light are used; ambient lights add up.
func packFrame(scene *core.Scene) [frameFloats]float32 {
	var f [frameFloats]float32
	cam := scene.Camera
	vp := cam.ViewProjection()
	copy(f[0:16], vp[:])
	f[16], f[17], f[18], f[19] = cam.Position[0], cam.Position[1], cam.Position[2], 1

	fog := scene.Fog
	f[20], f[21], f[22], f[23] = fog.Color[0], fog.Color[1], fog.Color[2], float32(fog.Mode)
	f[24], f[25], f[26] = fog.Near, fog.Far, fog.Density

	sun, point := false, false
	for _, l := range scene.Lights {
		switch l.Type {
		case core.LightTypeAmbient:
			f[28] += l.Color[0] * l.Intensity
			f[29] += l.Color[1] * l.Intensity
			f[30] += l.Color[2] * l.Intensity
		case core.LightTypeDirectional:
			if sun || l.Position.Len() == 0 {
				continue
			}
			sun = true
			d := l.Position.Normalize()
			f[32], f[33], f[34] = d[0], d[1], d[2]
			f[36], f[37], f[38] = l.Color[0]*l.Intensity, l.Color[1]*l.Intensity, l.Color[2]*l.Intensity
		case core.LightTypePoint:
			if point {
				continue
			}
			point = true
			f[40], f[41], f[42], f[43] = l.Position[0], l.Position[1], l.Position[2], l.Range
			f[44], f[45], f[46], f[47] = l.Color[0], l.Color[1], l.Color[2], l.Intensity
		}
	}
	return f
}

func packMaterial(m core.Material) [materialFloats]float32 {
	var f [materialFloats]float32
	copy(f[0:4], m.BaseColor[:])
	copy(f[4:7], m.Emissive[:])
	if m.FlatShading {
		f[8] = 1
	}
	if m.VertexColors {
		f[9] = 1
	}
	f[10] = m.Roughness
	return f
}

func floatBytes(f []float32) []byte {
	if len(f) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}

func indexBytes(idx []uint32) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*4)
}
