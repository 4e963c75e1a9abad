package ambient

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/ambient/rt/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresetsValidate(t *testing.T) {
	assert.Equal(t, []string{"harvest", "meadow", "night"}, Presets())
	for _, name := range Presets() {
		p, err := LookupPreset(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		assert.NoError(t, p.Validate(), name)
		assert.GreaterOrEqual(t, p.Step, float32(0.002))
		assert.LessOrEqual(t, p.Step, float32(0.005))
	}
}

func TestLookupPreset_Unknown(t *testing.T) {
	_, err := LookupPreset("desert")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestLookupPreset_ReturnsFreshCopy(t *testing.T) {
	a, _ := LookupPreset("meadow")
	a.Groups[1].Count = 1
	b, _ := LookupPreset("meadow")
	assert.Equal(t, 2000, b.Groups[1].Count)
}

func TestPresetValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Preset)
	}{
		{"no name", func(p *Preset) { p.Name = "" }},
		{"zero step", func(p *Preset) { p.Step = 0 }},
		{"far before near", func(p *Preset) { p.Camera.Far = p.Camera.Near }},
		{"fov", func(p *Preset) { p.Camera.FovY = 180 }},
		{"light type", func(p *Preset) { p.Lights[0].Type = "spot" }},
		{"two suns", func(p *Preset) { p.Lights = append(p.Lights, p.Lights[1]) }},
		{"fog mode", func(p *Preset) { p.Fog.Mode = "volumetric" }},
		{"linear fog range", func(p *Preset) { p.Fog.Far = 0 }},
		{"duplicate group", func(p *Preset) { p.Groups[2].Name = p.Groups[1].Name }},
		{"count over capacity", func(p *Preset) { p.Groups[1].Capacity = 10 }},
		{"negative count", func(p *Preset) { p.Groups[1].Count = -1 }},
		{"rule", func(p *Preset) { p.Groups[1].Placement.Rule = "spiral" }},
		{"scatter extent", func(p *Preset) { p.Groups[1].Placement.Extent = 0 }},
		{"scale range", func(p *Preset) { p.Groups[1].Placement.ScaleRange = [2]float32{2, 1} }},
		{"motion", func(p *Preset) { p.Groups[1].Motion.Kind = "wobble" }},
		{"conveyor range", func(p *Preset) { p.Groups[5].Motion.MaxX = p.Groups[5].Motion.MinX }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Meadow()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParameter)
		})
	}
}

const fieldPreset = `
name = "field"
seed = 9
step = 0.004
background = [0.5, 0.6, 0.7]

[camera]
fov_y = 45.0
near = 0.5
far = 150.0
position = [0.0, 5.0, 20.0]
target = [0.0, 0.0, 0.0]

  [camera.sway]
  omega = 0.2
  amplitude = 1.0

[[lights]]
type = "ambient"
color = [1.0, 1.0, 1.0]
intensity = 0.5

[fog]
mode = "exp2"
density = 0.02

[terrain]
width = 40.0
depth = 40.0
segments_x = 20
segments_z = 20
hill_freq = 0.1
hill_amp = 1.0

[[groups]]
name = "grass"
shape = "stalk"
count = 300

  [groups.params]
  radius = 0.02
  height = 1.0

  [groups.placement]
  rule = "scatter"
  extent = 20.0
  on_terrain = true

  [groups.motion]
  kind = "sway"
  amplitude = 0.8
`

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset([]byte(fieldPreset))
	require.NoError(t, err)

	assert.Equal(t, "field", p.Name)
	assert.Equal(t, int64(9), p.Seed)
	assert.Equal(t, float32(45), p.Camera.FovY)
	assert.Equal(t, float32(0.2), p.Camera.Sway.Omega)
	assert.Equal(t, FogExp2, p.Fog.Mode)
	assert.Equal(t, 20, p.Terrain.SegmentsX)
	require.Len(t, p.Groups, 1)
	g := p.Groups[0]
	assert.Equal(t, 300, g.Count)
	assert.Equal(t, float32(0.02), g.Params.Radius)
	assert.True(t, g.Placement.OnTerrain)
	assert.Equal(t, core.MotionSway, g.Motion.Kind)
}

func TestParsePreset_RejectsUnknownKeys(t *testing.T) {
	_, err := ParsePreset([]byte(fieldPreset + "\nbogus_key = 1\n"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParsePreset_Validates(t *testing.T) {
	_, err := ParsePreset([]byte(`name = "x"`))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ParsePreset([]byte(`name = `))
	assert.Error(t, err)
}

func TestWriteAndLoadPreset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePreset(&buf, Harvest()))

	path := filepath.Join(t.TempDir(), "harvest.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	p, err := LoadPreset(path)
	require.NoError(t, err)
	want := Harvest()
	assert.Equal(t, want.Name, p.Name)
	require.Len(t, p.Groups, len(want.Groups))
	for i := range want.Groups {
		assert.Equal(t, want.Groups[i].Name, p.Groups[i].Name)
		assert.Equal(t, want.Groups[i].Count, p.Groups[i].Count)
		assert.Equal(t, want.Groups[i].Motion.Kind, p.Groups[i].Motion.Kind)
	}

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
