package place

import (
	"math"

	"github.com/gekko3d/ambient/rt/core"
)

const (
	twoPi              = float32(2 * math.Pi)
	defaultMaxAttempts = 20
)

// Planner turns a Rule into spawn records. Every record gets a phase in
// [0, 2π) and a scale jitter drawn once here and never resampled.
type Planner struct {
	Seed        int64
	ScaleRange  [2]float32
	Palette     [][4]float32 // optional per-instance colors
	MaxAttempts int          // candidates tried per requested record
}

// Plan returns up to count records. It stops early when the rule's range is
// exhausted or the attempt budget runs out; a short result is not an error.
func (p Planner) Plan(count int, rule Rule) []core.InstanceRecord {
	if count <= 0 || rule == nil {
		return []core.InstanceRecord{}
	}
	perRecord := p.MaxAttempts
	if perRecord <= 0 {
		perRecord = defaultMaxAttempts
	}
	limit := count * perRecord

	rng := NewRNG(p.Seed)
	out := make([]core.InstanceRecord, 0, count)
	for attempt := 0; len(out) < count && attempt < limit; attempt++ {
		pos, ok := rule.Candidate(rng, attempt)
		if !ok {
			break
		}
		if !rule.Accept(pos) {
			continue
		}
		rec := core.InstanceRecord{
			Spawn: pos,
			Phase: p.phase(rng),
			Scale: p.scale(rng),
		}
		if len(p.Palette) > 0 {
			rec.Color = p.Palette[rng.IntN(len(p.Palette))]
			rec.HasColor = true
		}
		out = append(out, rec)
	}
	return out
}

func (p Planner) phase(rng *RNG) float32 {
	ph := float32(float64(rng.Float32()) * 2 * math.Pi)
	if ph >= twoPi {
		ph = 0
	}
	return ph
}

func (p Planner) scale(rng *RNG) float32 {
	lo, hi := p.ScaleRange[0], p.ScaleRange[1]
	u := rng.Float32()
	if lo == 0 && hi == 0 {
		return 1
	}
	return lo + (hi-lo)*u
}
