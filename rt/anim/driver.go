package anim

import (
	"github.com/gekko3d/ambient/rt/core"
)

// Driver applies batch motions and camera sway once per frame. Tick is
// synchronous and bounded by the number of live instances.
type Driver struct {
	updated int
	posed   map[core.ResourceID]bool
}

func NewDriver() *Driver {
	return &Driver{posed: make(map[core.ResourceID]bool)}
}

// Tick advances clock by one fixed step and animates scene at the new time.
// Only batches whose transforms changed are marked dirty; a constant pose is
// applied and marked once. A disposed scene is
// left alone, though the clock still advances.
func (d *Driver) Tick(scene *core.Scene, clock *core.FrameClock) {
	t := clock.Advance()
	d.updated = 0
	if scene == nil || scene.Disposed() {
		return
	}

	for _, b := range scene.Batches {
		if b.Released() || b.Len() == 0 {
			continue
		}
		if !b.Motion.Animated() {
			if b.Motion.Constant() && !d.posed[b.ID] {
				Evaluate(b, t)
				d.posed[b.ID] = true
				b.MarkDirty()
				d.updated++
			}
			continue
		}
		switch b.Motion.Kind {
		case core.MotionDrift:
			drift(b, t)
		case core.MotionConveyor:
			conveyor(b)
		default:
			if !Evaluate(b, t) {
				continue
			}
		}
		b.MarkDirty()
		d.updated++
	}

	swayCamera(scene, t)
}

// Updated is the number of batches marked dirty by the last Tick.
func (d *Driver) Updated() int { return d.updated }

func swayCamera(scene *core.Scene, t float32) {
	cam := scene.Camera
	if cam == nil || !scene.Sway.Enabled() {
		return
	}
	s := scene.Sway
	cam.Position[0] = s.BaseX + sin(t*s.Omega)*s.Amplitude
	cam.LookAt(cam.Target)
}
