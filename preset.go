package ambient

import (
	"fmt"

	"github.com/gekko3d/ambient/rt/core"
	"github.com/gekko3d/ambient/rt/geom"
)

// Preset declares a whole scene. The composer turns it into a core.Scene;
// presets carry no behaviour of their own.
type Preset struct {
	Name       string       `toml:"name"`
	Seed       int64        `toml:"seed"`
	Step       float32      `toml:"step"` // seconds of animation time per tick
	Background [3]float32   `toml:"background"`
	Camera     CameraDef    `toml:"camera"`
	Lights     []LightDef   `toml:"lights"`
	Fog        FogDef       `toml:"fog"`
	Terrain    geom.Terrain `toml:"terrain"`
	Groups     []GroupDef   `toml:"groups"`
}

type CameraDef struct {
	FovY     float32         `toml:"fov_y"`
	Near     float32         `toml:"near"`
	Far      float32         `toml:"far"`
	Position [3]float32      `toml:"position"`
	Target   [3]float32      `toml:"target"`
	Sway     core.CameraSway `toml:"sway"`
}

const (
	LightAmbient     = "ambient"
	LightDirectional = "directional"
	LightPoint       = "point"
)

type LightDef struct {
	Type      string     `toml:"type"`
	Position  [3]float32 `toml:"position"`
	Color     [3]float32 `toml:"color"`
	Intensity float32    `toml:"intensity"`
	Range     float32    `toml:"range"`
}

const (
	FogNone   = "none"
	FogLinear = "linear"
	FogExp2   = "exp2"
)

type FogDef struct {
	Mode    string     `toml:"mode"`
	Color   [3]float32 `toml:"color"`
	Near    float32    `toml:"near"`
	Far     float32    `toml:"far"`
	Density float32    `toml:"density"`
}

// GroupDef is one batch: a shape, how many instances to place and where, and
// how they move.
type GroupDef struct {
	Name      string         `toml:"name"`
	Shape     geom.ShapeKind `toml:"shape"`
	Params    geom.Params    `toml:"params"`
	Count     int            `toml:"count"`
	Capacity  int            `toml:"capacity"` // 0 means Count
	Placement PlacementDef   `toml:"placement"`
	Material  MaterialDef    `toml:"material"`
	Motion    core.Motion    `toml:"motion"`
}

const (
	RuleScatter = "scatter"
	RuleRidge   = "ridge"
	RuleLattice = "lattice"
	RuleFixed   = "fixed"
)

type PlacementDef struct {
	Rule       string       `toml:"rule"`
	Seed       int64        `toml:"seed"` // added to the preset seed
	Extent     float32      `toml:"extent"`
	Y          float32      `toml:"y"`
	OnTerrain  bool         `toml:"on_terrain"`
	Clearing   float32      `toml:"clearing"`
	Step       float32      `toml:"step"`
	Jitter     float32      `toml:"jitter"`
	Points     [][3]float32 `toml:"points"` // fixed; empty means the origin
	ScaleRange [2]float32   `toml:"scale_range"`
	Palette    [][4]float32 `toml:"palette"`
}

type MaterialDef struct {
	Color        [4]float32 `toml:"color"`
	Emissive     [3]float32 `toml:"emissive"`
	Roughness    float32    `toml:"roughness"`
	Flat         bool       `toml:"flat"`
	VertexColors bool       `toml:"vertex_colors"`
	Transparent  bool       `toml:"transparent"`
}

func (g GroupDef) capacity() int {
	if g.Capacity > 0 {
		return g.Capacity
	}
	return g.Count
}

// Validate checks the preset for values the composer cannot use. Shape
// parameters are left to the geometry factory.
func (p Preset) Validate() error {
	if p.Name == "" {
		return invalid("preset has no name")
	}
	if p.Step <= 0 {
		return invalid("preset %q: step %v must be positive", p.Name, p.Step)
	}
	c := p.Camera
	if c.FovY <= 0 || c.FovY >= 180 {
		return invalid("preset %q: camera fov %v out of range", p.Name, c.FovY)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return invalid("preset %q: camera planes near=%v far=%v", p.Name, c.Near, c.Far)
	}

	directional := 0
	for i, l := range p.Lights {
		switch l.Type {
		case LightAmbient, LightPoint:
		case LightDirectional:
			directional++
		default:
			return invalid("preset %q: light %d: type %q", p.Name, i, l.Type)
		}
	}
	if directional > 1 {
		return invalid("preset %q: %d directional lights, at most one", p.Name, directional)
	}

	switch p.Fog.Mode {
	case "", FogNone, FogExp2:
	case FogLinear:
		if p.Fog.Far <= p.Fog.Near {
			return invalid("preset %q: fog near=%v far=%v", p.Name, p.Fog.Near, p.Fog.Far)
		}
	default:
		return invalid("preset %q: fog mode %q", p.Name, p.Fog.Mode)
	}

	names := make(map[string]bool, len(p.Groups))
	for _, g := range p.Groups {
		if g.Name == "" {
			return invalid("preset %q: group without name", p.Name)
		}
		if names[g.Name] {
			return invalid("preset %q: duplicate group %q", p.Name, g.Name)
		}
		names[g.Name] = true
		if err := g.validate(); err != nil {
			return fmt.Errorf("preset %q: group %q: %w", p.Name, g.Name, err)
		}
	}
	return nil
}

func (g GroupDef) validate() error {
	if g.Count < 0 || g.Capacity < 0 {
		return invalid("count %d capacity %d", g.Count, g.Capacity)
	}
	if g.Count > g.capacity() {
		return invalid("count %d exceeds capacity %d", g.Count, g.Capacity)
	}

	pl := g.Placement
	switch pl.Rule {
	case RuleScatter, RuleRidge:
		if pl.Extent <= 0 {
			return invalid("%s placement needs a positive extent", pl.Rule)
		}
	case RuleLattice:
		if pl.Extent <= 0 || pl.Step <= 0 {
			return invalid("lattice placement extent=%v step=%v", pl.Extent, pl.Step)
		}
	case RuleFixed:
	default:
		return invalid("placement rule %q", pl.Rule)
	}
	if pl.ScaleRange[1] < pl.ScaleRange[0] {
		return invalid("scale range %v", pl.ScaleRange)
	}

	m := g.Motion
	switch m.Kind {
	case "", core.MotionNone, core.MotionSway, core.MotionPulse, core.MotionDrift:
	case core.MotionConveyor:
		if m.MaxX <= m.MinX {
			return invalid("conveyor range [%v, %v]", m.MinX, m.MaxX)
		}
	default:
		return invalid("motion %q", m.Kind)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}
