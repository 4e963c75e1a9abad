package ambient

import (
	"fmt"

	"github.com/gekko3d/ambient/rt/core"
	"github.com/gekko3d/ambient/rt/geom"
	"github.com/gekko3d/ambient/rt/place"

	"github.com/go-gl/mathgl/mgl32"
)

// Compose builds the scene described by p for a viewport of the given size.
// Nothing is built for a degenerate viewport, and any geometry or placement
// error aborts the whole composition.
func Compose(p Preset, vp ViewportState, opts ...Option) (*core.Scene, error) {
	if vp.Degenerate() {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateViewport, vp.Width, vp.Height)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	scene := core.NewScene(composeCamera(p.Camera, vp))
	scene.Sway = p.Camera.Sway
	scene.Background = p.Background
	for _, l := range p.Lights {
		scene.AddLight(composeLight(l))
	}
	scene.Fog = composeFog(p.Fog, p.Background)

	for _, g := range p.Groups {
		batch, err := composeGroup(scene, p, g, o.cache)
		if err != nil {
			scene.Dispose()
			return nil, fmt.Errorf("compose %q: group %q: %w", p.Name, g.Name, err)
		}
		if batch.Len() < g.Count {
			o.logger.Warnf("preset %q group %q: placed %d of %d instances", p.Name, g.Name, batch.Len(), g.Count)
		}
		o.logger.Debugf("group %q: %s x%d (%d vertices)", g.Name, g.Shape, batch.Len(), batch.Mesh.NumVertex())
	}

	o.logger.Infof("composed %q: %d batches, %d instances, viewport %dx%d",
		p.Name, len(scene.Batches), scene.InstanceCount(), vp.Width, vp.Height)
	return scene, nil
}

func composeCamera(c CameraDef, vp ViewportState) *core.Camera {
	cam := core.NewCamera(c.FovY, c.Near, c.Far)
	cam.Position = mgl32.Vec3(c.Position)
	cam.LookAt(mgl32.Vec3(c.Target))
	cam.SetAspect(vp.Width, vp.Height)
	return cam
}

func composeLight(l LightDef) core.Light {
	light := core.Light{
		Position:  mgl32.Vec3(l.Position),
		Color:     l.Color,
		Intensity: l.Intensity,
		Range:     l.Range,
	}
	switch l.Type {
	case LightAmbient:
		light.Type = core.LightTypeAmbient
	case LightDirectional:
		light.Type = core.LightTypeDirectional
	default:
		light.Type = core.LightTypePoint
	}
	return light
}

// composeFog falls back to the background color so distant geometry fades
// into the clear color.
func composeFog(f FogDef, background [3]float32) core.Fog {
	fog := core.Fog{Color: f.Color, Near: f.Near, Far: f.Far, Density: f.Density}
	if fog.Color == [3]float32{} {
		fog.Color = background
	}
	switch f.Mode {
	case FogLinear:
		fog.Mode = core.FogLinear
	case FogExp2:
		fog.Mode = core.FogExp2
	default:
		fog.Mode = core.FogNone
	}
	return fog
}

// composeGroup adds the group's batch to scene. The batch is added before its
// records are bound so a failed composition releases its mesh reference.
func composeGroup(scene *core.Scene, p Preset, g GroupDef, cache *geom.Cache) (*core.RenderBatch, error) {
	params := g.Params
	if g.Shape == geom.ShapeTerrain {
		params.Terrain = p.Terrain
	}
	mesh, err := cache.Get(g.Shape, params)
	if err != nil {
		return nil, err
	}

	planner := place.Planner{
		Seed:       p.Seed + g.Placement.Seed,
		ScaleRange: g.Placement.ScaleRange,
		Palette:    g.Placement.Palette,
	}
	records := planner.Plan(g.Count, placementRule(g.Placement, p.Terrain))

	batch := core.NewRenderBatch(g.Name, mesh, composeMaterial(g.Material), g.capacity())
	batch.Motion = g.Motion
	scene.AddBatch(batch)
	if err := batch.Bind(records); err != nil {
		return nil, err
	}
	return batch, nil
}

func placementRule(d PlacementDef, terrain geom.Terrain) place.Rule {
	bounds := place.Square(d.Extent)
	var height place.HeightFunc
	if d.OnTerrain {
		height = terrain.HeightAt
	}
	switch d.Rule {
	case RuleRidge:
		return place.Ridge{Bounds: bounds, Terrain: terrain, Offset: d.Y}
	case RuleLattice:
		return place.Lattice{Bounds: bounds, Step: d.Step, Jitter: d.Jitter, Y: d.Y, Height: height}
	case RuleFixed:
		points := make([]mgl32.Vec3, 0, len(d.Points))
		for _, pt := range d.Points {
			points = append(points, mgl32.Vec3(pt))
		}
		if len(points) == 0 {
			points = append(points, mgl32.Vec3{0, d.Y, 0})
		}
		return place.Fixed{Points: points}
	default:
		return place.Scatter{Bounds: bounds, Y: d.Y, Height: height, Clearing: d.Clearing}
	}
}

func composeMaterial(d MaterialDef) core.Material {
	color := d.Color
	if color == [4]float32{} {
		color = [4]float32{1, 1, 1, 1}
	}
	m := core.NewMaterial(color)
	m.Emissive = d.Emissive
	if d.Roughness > 0 {
		m.Roughness = d.Roughness
	}
	m.FlatShading = d.Flat
	m.VertexColors = d.VertexColors
	m.Transparent = d.Transparent
	return m
}
