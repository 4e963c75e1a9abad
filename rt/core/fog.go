package core

import "math"

type FogMode uint8

const (
	FogNone FogMode = iota
	FogLinear
	FogExp2
)

// Fog hides the far clip boundary and blends the scene into the host
// background.
type Fog struct {
	Mode    FogMode
	Color   [3]float32
	Near    float32
	Far     float32
	Density float32
}

// Factor returns how much of the fog color replaces the surface color at the
// given view distance, in [0, 1].
func (f Fog) Factor(distance float32) float32 {
	switch f.Mode {
	case FogLinear:
		if f.Far <= f.Near {
			return 0
		}
		return clamp01((distance - f.Near) / (f.Far - f.Near))
	case FogExp2:
		d := float64(f.Density * distance)
		return clamp01(float32(1 - math.Exp(-d*d)))
	}
	return 0
}

// Apply blends c toward the fog color by Factor(distance).
func (f Fog) Apply(c [3]float32, distance float32) [3]float32 {
	k := f.Factor(distance)
	return [3]float32{
		c[0] + (f.Color[0]-c[0])*k,
		c[1] + (f.Color[1]-c[1])*k,
		c[2] + (f.Color[2]-c[2])*k,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
