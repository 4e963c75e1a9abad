package ambient

import (
	"fmt"
	"sort"

	"github.com/gekko3d/ambient/rt/core"
	"github.com/gekko3d/ambient/rt/geom"
)

var builtinPresets = map[string]func() Preset{
	"meadow":  Meadow,
	"night":   Night,
	"harvest": Harvest,
}

// Presets lists the built-in preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns a fresh copy of the named built-in preset.
func LookupPreset(name string) (Preset, error) {
	fn, ok := builtinPresets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

func terrainGroup() GroupDef {
	return GroupDef{
		Name:      "terrain",
		Shape:     geom.ShapeTerrain,
		Count:     1,
		Placement: PlacementDef{Rule: RuleFixed},
		Material:  MaterialDef{VertexColors: true, Roughness: 0.95},
		Motion:    core.Motion{Kind: core.MotionNone},
	}
}

// Meadow is a daytime field: swaying grass, sprouts along the furrow ridges,
// a ring of trees, drifting clouds and pollen.
func Meadow() Preset {
	sky := [3]float32{0.62, 0.78, 0.92}
	return Preset{
		Name:       "meadow",
		Seed:       1,
		Step:       0.005,
		Background: sky,
		Camera: CameraDef{
			FovY:     60,
			Near:     0.1,
			Far:      200,
			Position: [3]float32{0, 8, 30},
			Target:   [3]float32{0, 0, 0},
			Sway:     core.CameraSway{Omega: 0.3, Amplitude: 2},
		},
		Lights: []LightDef{
			{Type: LightAmbient, Color: [3]float32{1, 1, 1}, Intensity: 0.45},
			{Type: LightDirectional, Position: [3]float32{30, 50, 20}, Color: [3]float32{1, 0.96, 0.86}, Intensity: 1},
		},
		Fog:     FogDef{Mode: FogLinear, Color: sky, Near: 30, Far: 120},
		Terrain: geom.DefaultTerrain(),
		Groups: []GroupDef{
			terrainGroup(),
			{
				Name:      "grass",
				Shape:     geom.ShapeStalk,
				Params:    geom.Params{Radius: 0.03, RadiusTop: 0.005, Height: 1.2, RadialSegments: 4, HeightSegments: 4},
				Count:     2000,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 11, Extent: 48, OnTerrain: true, ScaleRange: [2]float32{0.7, 1.3}},
				Material:  MaterialDef{Color: [4]float32{0.3, 0.62, 0.2, 1}},
				Motion:    core.Motion{Kind: core.MotionSway, Amplitude: 1},
			},
			{
				Name:      "sprouts",
				Shape:     geom.ShapeCone,
				Params:    geom.Params{Radius: 0.12, Height: 0.35, RadialSegments: 6},
				Count:     500,
				Placement: PlacementDef{Rule: RuleRidge, Seed: 23, Extent: 48, ScaleRange: [2]float32{0.8, 1.2}},
				Material:  MaterialDef{Color: [4]float32{0.45, 0.75, 0.25, 1}, Flat: true},
				Motion:    core.Motion{Kind: core.MotionSway, Amplitude: 0.4},
			},
			{
				Name:      "trunks",
				Shape:     geom.ShapeCylinder,
				Params:    geom.Params{Radius: 0.25, RadiusTop: 0.18, Height: 3, RadialSegments: 6},
				Count:     24,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 37, Extent: 48, OnTerrain: true, Y: 1.5, Clearing: 35},
				Material:  MaterialDef{Color: [4]float32{0.4, 0.27, 0.16, 1}},
			},
			{
				// same seed and rule as trunks so each crown sits on its trunk
				Name:      "foliage",
				Shape:     geom.ShapeIcosahedron,
				Params:    geom.Params{Radius: 1.6, Detail: 1, Flat: true},
				Count:     24,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 37, Extent: 48, OnTerrain: true, Y: 3.8, Clearing: 35},
				Material:  MaterialDef{Color: [4]float32{0.22, 0.48, 0.2, 1}, Flat: true},
			},
			{
				Name:   "clouds",
				Shape:  geom.ShapeIcosahedron,
				Params: geom.Params{Radius: 3, Detail: 1, Flat: true},
				Count:  6,
				Placement: PlacementDef{Rule: RuleFixed, Seed: 41, ScaleRange: [2]float32{0.8, 1.6}, Points: [][3]float32{
					{-40, 24, -30}, {-18, 27, -45}, {5, 22, -35}, {22, 26, -50}, {38, 25, -28}, {55, 28, -40},
				}},
				Material: MaterialDef{Color: [4]float32{1, 1, 1, 0.9}, Transparent: true, Flat: true},
				Motion:   core.Motion{Kind: core.MotionConveyor, Speed: 0.01, MinX: -70, MaxX: 70},
			},
			{
				Name:      "pollen",
				Shape:     geom.ShapeIcosahedron,
				Params:    geom.Params{Radius: 0.06},
				Count:     50,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 53, Extent: 25, Y: 2, OnTerrain: true},
				Material:  MaterialDef{Color: [4]float32{1, 0.95, 0.6, 1}, Emissive: [3]float32{0.4, 0.35, 0.1}},
				Motion:    core.Motion{Kind: core.MotionDrift, K1: 0.01, K2: 0.006, Spin: 0.02},
			},
		},
	}
}

// Night is a dim field under moonlight with pulsing fireflies and a star dome.
func Night() Preset {
	sky := [3]float32{0.03, 0.04, 0.1}
	ter := geom.DefaultTerrain()
	ter.LowColor = [3]float32{0.08, 0.07, 0.1}
	ter.HighColor = [3]float32{0.14, 0.13, 0.2}
	ter.VegetationColor = [3]float32{0.07, 0.16, 0.12}
	return Preset{
		Name:       "night",
		Seed:       2,
		Step:       0.003,
		Background: sky,
		Camera: CameraDef{
			FovY:     55,
			Near:     0.1,
			Far:      300,
			Position: [3]float32{0, 6, 28},
			Target:   [3]float32{0, 2, 0},
			Sway:     core.CameraSway{Omega: 0.15, Amplitude: 1.5},
		},
		Lights: []LightDef{
			{Type: LightAmbient, Color: [3]float32{0.5, 0.55, 0.9}, Intensity: 0.15},
			{Type: LightDirectional, Position: [3]float32{-40, 60, -20}, Color: [3]float32{0.7, 0.75, 1}, Intensity: 0.35},
			{Type: LightPoint, Position: [3]float32{0, 3, 0}, Color: [3]float32{1, 0.8, 0.4}, Intensity: 1.2, Range: 25},
		},
		Fog:     FogDef{Mode: FogExp2, Color: sky, Density: 0.012},
		Terrain: ter,
		Groups: []GroupDef{
			terrainGroup(),
			{
				Name:      "grass",
				Shape:     geom.ShapeStalk,
				Params:    geom.Params{Radius: 0.03, RadiusTop: 0.005, Height: 1, RadialSegments: 4, HeightSegments: 3},
				Count:     1500,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 11, Extent: 48, OnTerrain: true, ScaleRange: [2]float32{0.6, 1.2}},
				Material:  MaterialDef{Color: [4]float32{0.1, 0.22, 0.16, 1}},
				Motion:    core.Motion{Kind: core.MotionSway, Amplitude: 0.6},
			},
			{
				Name:      "fireflies",
				Shape:     geom.ShapeIcosahedron,
				Params:    geom.Params{Radius: 0.08},
				Count:     80,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 29, Extent: 30, Y: 1.5, OnTerrain: true, ScaleRange: [2]float32{0.7, 1.3}},
				Material:  MaterialDef{Color: [4]float32{1, 0.9, 0.4, 1}, Emissive: [3]float32{1, 0.85, 0.3}},
				Motion:    core.Motion{Kind: core.MotionPulse, Amplitude: 0.5, Rate: 3},
			},
			{
				Name:      "stars",
				Shape:     geom.ShapePoints,
				Params:    geom.Params{Radius: 150, Count: 400, Seed: 7},
				Count:     1,
				Placement: PlacementDef{Rule: RuleFixed},
				Material:  MaterialDef{Color: [4]float32{0.9, 0.92, 1, 1}, Emissive: [3]float32{0.9, 0.92, 1}},
			},
		},
	}
}

// Harvest is furrowed farmland with dense ridge sprouts, hay bales on a grid
// and drifting dust.
func Harvest() Preset {
	sky := [3]float32{0.85, 0.74, 0.55}
	ter := geom.DefaultTerrain()
	ter.HillAmp = 1.2
	ter.FurrowFreq = 1.2
	ter.FurrowAmp = 0.6
	ter.LowColor = [3]float32{0.42, 0.28, 0.14}
	ter.HighColor = [3]float32{0.62, 0.47, 0.26}
	ter.VegetationColor = [3]float32{0.7, 0.6, 0.3}
	ter.VegetationThreshold = 0.7
	return Preset{
		Name:       "harvest",
		Seed:       3,
		Step:       0.004,
		Background: sky,
		Camera: CameraDef{
			FovY:     50,
			Near:     0.1,
			Far:      220,
			Position: [3]float32{-10, 10, 34},
			Target:   [3]float32{0, 0, 0},
			Sway:     core.CameraSway{Omega: 0.25, Amplitude: 3, BaseX: -10},
		},
		Lights: []LightDef{
			{Type: LightAmbient, Color: [3]float32{1, 0.9, 0.75}, Intensity: 0.4},
			{Type: LightDirectional, Position: [3]float32{50, 30, 10}, Color: [3]float32{1, 0.82, 0.6}, Intensity: 1.1},
		},
		Fog:     FogDef{Mode: FogLinear, Near: 40, Far: 150},
		Terrain: ter,
		Groups: []GroupDef{
			terrainGroup(),
			{
				Name:      "sprouts",
				Shape:     geom.ShapeCone,
				Params:    geom.Params{Radius: 0.1, Height: 0.5, RadialSegments: 5},
				Count:     1200,
				Placement: PlacementDef{Rule: RuleRidge, Seed: 23, Extent: 48, ScaleRange: [2]float32{0.7, 1.4}},
				Material:  MaterialDef{Color: [4]float32{0.78, 0.66, 0.3, 1}, Flat: true},
				Motion:    core.Motion{Kind: core.MotionSway, Amplitude: 0.5, LeanBias: 0.05},
			},
			{
				Name:      "bales",
				Shape:     geom.ShapeCylinder,
				Params:    geom.Params{Radius: 0.8, Height: 1.2, RadialSegments: 10},
				Count:     25,
				Placement: PlacementDef{Rule: RuleLattice, Seed: 31, Extent: 40, Step: 20, Jitter: 3, Y: 0.6, OnTerrain: true},
				Material:  MaterialDef{Color: [4]float32{0.86, 0.72, 0.38, 1}},
			},
			{
				Name:      "dust",
				Shape:     geom.ShapeIcosahedron,
				Params:    geom.Params{Radius: 0.04},
				Count:     120,
				Placement: PlacementDef{Rule: RuleScatter, Seed: 47, Extent: 30, Y: 1, OnTerrain: true, Palette: [][4]float32{{0.9, 0.8, 0.6, 0.6}, {0.8, 0.7, 0.5, 0.5}}},
				Material:  MaterialDef{Transparent: true},
				Motion:    core.Motion{Kind: core.MotionDrift, K1: 0.008, K2: 0.012},
			},
		},
	}
}
