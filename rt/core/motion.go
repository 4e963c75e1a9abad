package core

type MotionKind string

const (
	MotionNone     MotionKind = "none"
	MotionSway     MotionKind = "sway"
	MotionPulse    MotionKind = "pulse"
	MotionDrift    MotionKind = "drift"
	MotionConveyor MotionKind = "conveyor"
)

// Motion describes how a batch is animated. Only the fields relevant to Kind
// are read.
type Motion struct {
	Kind MotionKind `toml:"kind"`

	// sway
	Amplitude float32 `toml:"amplitude"`
	LeanBias  float32 `toml:"lean_bias"`

	// pulse
	Rate float32 `toml:"rate"`

	// drift
	K1   float32 `toml:"k1"`
	K2   float32 `toml:"k2"`
	Spin float32 `toml:"spin"`

	// conveyor
	Speed float32 `toml:"speed"`
	MinX  float32 `toml:"min_x"`
	MaxX  float32 `toml:"max_x"`
}

// Animated reports whether a batch with this motion changes every frame.
// A motion whose parameters cannot move anything is static.
func (m Motion) Animated() bool {
	switch m.Kind {
	case MotionSway:
		return m.Amplitude != 0
	case MotionPulse:
		return m.Amplitude != 0 && m.Rate != 0
	case MotionDrift:
		return m.K1 != 0 || m.K2 != 0 || m.Spin != 0
	case MotionConveyor:
		return m.Speed != 0
	}
	return false
}

// Constant reports a pure motion frozen in a pose other than the spawn one:
// a sway with only a lean, or a pulse with no rate. The pose is applied once.
func (m Motion) Constant() bool {
	switch m.Kind {
	case MotionSway:
		return m.Amplitude == 0 && m.LeanBias != 0
	case MotionPulse:
		return m.Rate == 0 && m.Amplitude != 0
	}
	return false
}

// Integrative motions accumulate onto the current transform instead of
// recomputing from spawn parameters.
func (m Motion) Integrative() bool {
	return m.Kind == MotionDrift || m.Kind == MotionConveyor
}

// CameraSway swings the camera horizontally around BaseX while it keeps
// looking at its target.
type CameraSway struct {
	Omega     float32 `toml:"omega"`
	Amplitude float32 `toml:"amplitude"`
	BaseX     float32 `toml:"base_x"`
}

func (s CameraSway) Enabled() bool {
	return s.Amplitude != 0 && s.Omega != 0
}
