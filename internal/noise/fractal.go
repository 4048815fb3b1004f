package noise

import (
	"math"

	"overworld/internal/mathx"
)

// Params are the fractal parameters shared by FBM and Ridged.
type Params struct {
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	Amplitude   float64
}

// DefaultParams mirrors the tuned overworld defaults.
func DefaultParams() Params {
	return Params{
		Octaves:     5,
		Frequency:   2.5,
		Lacunarity:  0.7,
		Persistence: 2.0,
		Amplitude:   1.0,
	}
}

func (p Params) amplitude() float64 {
	if p.Amplitude == 0 {
		return 1
	}
	return p.Amplitude
}

func (p Params) octaves() int {
	if p.Octaves < 1 {
		return 1
	}
	return p.Octaves
}

// FBM sums octaves of Source, octave i at Frequency*Lacunarity^i with weight
// Persistence^i, normalized by the total weight and scaled by Amplitude.
type FBM struct {
	Source Source
	Params
}

func NewFBM(src Source, p Params) *FBM {
	return &FBM{Source: src, Params: p}
}

func (f *FBM) Sample(x, y float64) float64 {
	var total, norm float64
	freq := f.Frequency
	amp := 1.0
	for i := 0; i < f.octaves(); i++ {
		total += f.Source.Noise2D(x*freq, y*freq) * amp
		norm += amp
		amp *= f.Persistence
		freq *= f.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm * f.amplitude()
}

// Ridged is a ridged multifractal: each octave folds the signal around zero
// so that creases become sharp crests, and weights the next octave by the
// current one. Output is in [-1, 1].
type Ridged struct {
	Source Source
	Params
	Gain float64
}

func NewRidged(src Source, p Params) *Ridged {
	return &Ridged{Source: src, Params: p, Gain: 2}
}

func (r *Ridged) Sample(x, y float64) float64 {
	var total, norm float64
	freq := r.Frequency
	amp := 1.0
	weight := 1.0
	for i := 0; i < r.octaves(); i++ {
		signal := 1 - math.Abs(r.Source.Noise2D(x*freq, y*freq))
		signal *= signal
		signal *= weight
		weight = mathx.Clamp(signal*r.Gain, 0, 1)

		total += signal * amp
		norm += amp
		amp *= r.Persistence
		freq *= r.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return mathx.Clamp(total/norm*2-1, -1, 1) * r.amplitude()
}
