package raster

import (
	"github.com/gekko3d/ambient/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

type pointLight struct {
	pos       mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	rng       float32
}

type lighting struct {
	ambient mgl32.Vec3
	sunDir  mgl32.Vec3 // toward the light
	sun     mgl32.Vec3
	points  []pointLight
}

func newLighting(lights []core.Light) lighting {
	var l lighting
	for _, light := range lights {
		c := mgl32.Vec3(light.Color).Mul(light.Intensity)
		switch light.Type {
		case core.LightTypeAmbient:
			l.ambient = l.ambient.Add(c)
		case core.LightTypeDirectional:
			if light.Position.Len() > 0 {
				l.sunDir = light.Position.Normalize()
				l.sun = c
			}
		case core.LightTypePoint:
			l.points = append(l.points, pointLight{pos: light.Position, color: mgl32.Vec3(light.Color), intensity: light.Intensity, rng: light.Range})
		}
	}
	return l
}

// shade returns the light arriving at a surface point with normal n. Both
// faces of a triangle are lit, grass blades have no back side.
func (l lighting) shade(p, n mgl32.Vec3) mgl32.Vec3 {
	out := l.ambient
	if l.sun != (mgl32.Vec3{}) {
		d := abs(n.Dot(l.sunDir))
		out = out.Add(l.sun.Mul(d))
	}
	for _, pl := range l.points {
		toLight := pl.pos.Sub(p)
		dist := toLight.Len()
		if dist == 0 || (pl.rng > 0 && dist > pl.rng) {
			continue
		}
		att := pl.intensity / (1 + dist*dist*0.05)
		if pl.rng > 0 {
			att *= 1 - dist/pl.rng
		}
		d := abs(n.Dot(toLight.Mul(1 / dist)))
		out = out.Add(pl.color.Mul(att * d))
	}
	return out
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
