package core

import "github.com/go-gl/mathgl/mgl32"

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeAmbient     LightType = 3
)

type Light struct {
	Type      LightType
	Position  mgl32.Vec3 // directional: the light shines from Position toward the origin
	Color     [3]float32
	Intensity float32
	Range     float32 // point only, 0 = unlimited
}

// Packed is the std140 layout used by the GPU surface:
// position.xyz + type, color.rgb + intensity, range + padding.
func (l Light) Packed() [12]float32 {
	return [12]float32{
		l.Position[0], l.Position[1], l.Position[2], float32(l.Type),
		l.Color[0], l.Color[1], l.Color[2], l.Intensity,
		l.Range, 0, 0, 0,
	}
}
