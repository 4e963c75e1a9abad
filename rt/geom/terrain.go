package geom

import (
	"math"
)

// Terrain describes the displaced ground grid. Heights are
//
//	hill(x,z) + detail(x,z) + furrow(x)
//
// with hill = sin(x*f1)*cos(z*f1)*A1, detail = sin(x*f2 + z*f2)*A2 and
// furrow = sin(x*f3)*A3.
type Terrain struct {
	Width     float32 `toml:"width"`
	Depth     float32 `toml:"depth"`
	SegmentsX int     `toml:"segments_x"`
	SegmentsZ int     `toml:"segments_z"`

	HillFreq   float32 `toml:"hill_freq"`
	HillAmp    float32 `toml:"hill_amp"`
	DetailFreq float32 `toml:"detail_freq"`
	DetailAmp  float32 `toml:"detail_amp"`
	FurrowFreq float32 `toml:"furrow_freq"`
	FurrowAmp  float32 `toml:"furrow_amp"`

	LowColor            [3]float32 `toml:"low_color"`
	HighColor           [3]float32 `toml:"high_color"`
	VegetationColor     [3]float32 `toml:"vegetation_color"`
	VegetationThreshold float32    `toml:"vegetation_threshold"`
}

// DefaultTerrain is a 100x100 field with gentle hills and furrow rows.
func DefaultTerrain() Terrain {
	return Terrain{
		Width:               100,
		Depth:               100,
		SegmentsX:           100,
		SegmentsZ:           100,
		HillFreq:            0.1,
		HillAmp:             2,
		DetailFreq:          0.3,
		DetailAmp:           0.5,
		FurrowFreq:          0.8,
		FurrowAmp:           0.3,
		LowColor:            [3]float32{0.36, 0.25, 0.13},
		HighColor:           [3]float32{0.55, 0.42, 0.24},
		VegetationColor:     [3]float32{0.24, 0.52, 0.18},
		VegetationThreshold: 0.6,
	}
}

// HeightAt evaluates the displacement at planar coordinates (x, z). It is a
// pure function of its inputs.
func (t Terrain) HeightAt(x, z float32) float32 {
	fx, fz := float64(x), float64(z)
	hill := math.Sin(fx*float64(t.HillFreq)) * math.Cos(fz*float64(t.HillFreq)) * float64(t.HillAmp)
	detail := math.Sin(fx*float64(t.DetailFreq)+fz*float64(t.DetailFreq)) * float64(t.DetailAmp)
	return float32(hill+detail) + t.furrow(x)
}

func (t Terrain) furrow(x float32) float32 {
	return float32(math.Sin(float64(x)*float64(t.FurrowFreq)) * float64(t.FurrowAmp))
}

// OnRidge reports whether x lies on the crest half of a furrow row.
func (t Terrain) OnRidge(x float32) bool {
	return math.Sin(float64(x)*float64(t.FurrowFreq)) > 0
}

// MaxAmplitude bounds |HeightAt| over the whole plane.
func (t Terrain) MaxAmplitude() float32 {
	return abs32(t.HillAmp) + abs32(t.DetailAmp) + abs32(t.FurrowAmp)
}

// NormalizedHeight maps a height onto [0, 1] across the terrain's amplitude
// range.
func (t Terrain) NormalizedHeight(h float32) float32 {
	amax := t.MaxAmplitude()
	if amax == 0 {
		return 0.5
	}
	return clamp01((h + amax) / (2 * amax))
}

// ColorAt blends LowColor to HighColor by normalized height, then toward
// VegetationColor above VegetationThreshold.
func (t Terrain) ColorAt(h float32) [3]float32 {
	n := t.NormalizedHeight(h)
	c := lerp3(t.LowColor, t.HighColor, n)
	if th := t.VegetationThreshold; n > th && th < 1 {
		c = lerp3(c, t.VegetationColor, (n-th)/(1-th))
	}
	return c
}

func (t Terrain) validate() error {
	if t.Width <= 0 {
		return paramErr("width", t.Width)
	}
	if t.Depth <= 0 {
		return paramErr("depth", t.Depth)
	}
	if t.SegmentsX < 1 {
		return paramErr("segments_x", t.SegmentsX)
	}
	if t.SegmentsZ < 1 {
		return paramErr("segments_z", t.SegmentsZ)
	}
	return nil
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
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

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
