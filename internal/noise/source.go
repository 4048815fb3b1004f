// Package noise builds coherent noise fields: fractal sums, ridged
// multifractals, blends and domain warps over seeded Perlin and OpenSimplex
// sources. Every field is pure given its seed and parameters.
package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"overworld/internal/mathx"
)

// Source is a single octave of coherent noise, roughly in [-1, 1].
type Source interface {
	Noise2D(x, y float64) float64
}

// Field is anything that can be sampled in 2D.
type Field interface {
	Sample(x, y float64) float64
}

type perlinSource struct {
	p *perlin.Perlin
}

// NewPerlin returns a single-octave Perlin source. Octaves are summed by FBM,
// not by the generator itself.
func NewPerlin(seed int64) Source {
	return perlinSource{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (s perlinSource) Noise2D(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

type simplexSource struct {
	n opensimplex.Noise
}

func NewSimplex(seed int64) Source {
	return simplexSource{n: opensimplex.New(seed)}
}

func (s simplexSource) Noise2D(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// Raw adapts a Source to a Field at a fixed frequency.
type Raw struct {
	Source    Source
	Frequency float64
}

func (r Raw) Sample(x, y float64) float64 {
	f := r.Frequency
	if f == 0 {
		f = 1
	}
	return r.Source.Noise2D(x*f, y*f)
}

// Normalize maps [-1, 1] onto [0, 1], clamping anything outside.
func Normalize(v float64) float64 {
	return mathx.Clamp((v+1)/2, 0, 1)
}
