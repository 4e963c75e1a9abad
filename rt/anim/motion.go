package anim

import (
	"math"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Evaluate writes the closed-form transform of every instance at time t for
// pure motions (sway, pulse) and reports whether it did. Integrative motions
// depend on history and are left untouched.
func Evaluate(b *core.RenderBatch, t float32) bool {
	switch b.Motion.Kind {
	case core.MotionSway:
		sway(b, t)
	case core.MotionPulse:
		pulse(b, t)
	default:
		return false
	}
	return true
}

func sin(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos(v float32) float32 { return float32(math.Cos(float64(v))) }

// sway bends each stalk around its root. Position stays at spawn.
func sway(b *core.RenderBatch, t float32) {
	a := b.Instances
	amp := b.Motion.Amplitude
	for i := 0; i < a.Len(); i++ {
		x, z := a.Spawn[i].X(), a.Spawn[i].Z()
		a.Position[i] = a.Spawn[i]
		a.Rotation[i] = mgl32.Vec3{
			cos(1.2*t+0.3*x+0.5*z)*0.1*amp + b.Motion.LeanBias,
			0,
			sin(1.5*t+0.5*x+0.3*z) * 0.15 * amp,
		}
	}
}

func pulse(b *core.RenderBatch, t float32) {
	a := b.Instances
	for i := 0; i < a.Len(); i++ {
		s := a.BaseScale[i] * (1 + sin(b.Motion.Rate*t+a.Phase[i])*b.Motion.Amplitude)
		a.Scale[i] = mgl32.Vec3{s, s, s}
	}
}

// drift nudges each instance along a per-phase wobble. Offsets accumulate
// without bound.
func drift(b *core.RenderBatch, t float32) {
	a := b.Instances
	m := b.Motion
	for i := 0; i < a.Len(); i++ {
		ph := a.Phase[i]
		p := a.Position[i]
		a.Position[i] = mgl32.Vec3{
			p.X() + cos(0.5*t+ph)*m.K2,
			p.Y() + sin(t+ph)*m.K1,
			p.Z(),
		}
		if m.Spin != 0 {
			r := a.Rotation[i]
			a.Rotation[i] = mgl32.Vec3{r.X(), r.Y() + m.Spin, r.Z()}
		}
	}
}

// conveyor moves instance i along x at Speed*(i+1). Past MaxX it wraps to
// MinX, and below MinX (negative Speed) it wraps to MaxX.
func conveyor(b *core.RenderBatch) {
	a := b.Instances
	m := b.Motion
	for i := 0; i < a.Len(); i++ {
		p := a.Position[i]
		x := p.X() + m.Speed*float32(i+1)
		if x > m.MaxX {
			x = m.MinX
		} else if x < m.MinX {
			x = m.MaxX
		}
		a.Position[i] = mgl32.Vec3{x, p.Y(), p.Z()}
	}
}
