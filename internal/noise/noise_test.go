package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constField float64

func (c constField) Sample(x, y float64) float64 { return float64(c) }

type coordField struct{}

func (coordField) Sample(x, y float64) float64 { return x + 10*y }

func TestSourcesDeterministic(t *testing.T) {
	for name, mk := range map[string]func(int64) Source{
		"perlin":  NewPerlin,
		"simplex": NewSimplex,
	} {
		a, b := mk(42), mk(42)
		for i := 0; i < 50; i++ {
			x, y := float64(i)*0.173, float64(i)*-0.291
			require.Equal(t, a.Noise2D(x, y), b.Noise2D(x, y), "%s not deterministic at %d", name, i)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a, b := NewSimplex(1), NewSimplex(2)
	diff := 0
	for i := 0; i < 20; i++ {
		x := float64(i) * 0.37
		if a.Noise2D(x, x*0.5) != b.Noise2D(x, x*0.5) {
			diff++
		}
	}
	assert.Greater(t, diff, 10)
}

func TestFBMStaysInRange(t *testing.T) {
	f := NewFBM(NewSimplex(7), DefaultParams())
	for y := -1.0; y <= 1.0; y += 0.05 {
		for x := -1.0; x <= 1.0; x += 0.05 {
			v := f.Sample(x, y)
			if v < -1 || v > 1 {
				t.Fatalf("fbm at (%.2f,%.2f) = %f, out of [-1,1]", x, y, v)
			}
		}
	}
}

func TestFBMSingleOctaveMatchesSource(t *testing.T) {
	src := NewSimplex(3)
	f := NewFBM(src, Params{Octaves: 1, Frequency: 2, Lacunarity: 2, Persistence: 0.5})
	assert.Equal(t, src.Noise2D(0.6, 0.2), f.Sample(0.3, 0.1))
}

func TestRidgedRange(t *testing.T) {
	r := NewRidged(NewSimplex(11), DefaultParams())
	for y := -0.5; y <= 0.5; y += 0.02 {
		for x := -0.5; x <= 0.5; x += 0.02 {
			v := r.Sample(x, y)
			if v < -1 || v > 1 {
				t.Fatalf("ridged at (%.2f,%.2f) = %f", x, y, v)
			}
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a, b := constField(-0.5), constField(0.75)
	assert.Equal(t, -0.5, Blend{A: a, B: b, Control: constField(-1)}.Sample(0, 0))
	assert.Equal(t, 0.75, Blend{A: a, B: b, Control: constField(1)}.Sample(0, 0))
	assert.InDelta(t, 0.125, Blend{A: a, B: b, Control: constField(0)}.Sample(0, 0), 1e-12)
}

func TestWarpOffsets(t *testing.T) {
	w := Warp{Base: coordField{}, X: constField(1), Amplitude: 0.08}
	dx, dy := w.Offset(3, 4)
	assert.Equal(t, 0.08, dx)
	assert.Equal(t, 0.08, dy)
	assert.InDelta(t, 3.08+10*4.08, w.Sample(3, 4), 1e-9)

	w.Y = constField(-1)
	dx, dy = w.Offset(0, 0)
	assert.Equal(t, 0.08, dx)
	assert.Equal(t, -0.08, dy)

	still := Warp{Base: coordField{}, X: constField(1)}
	assert.Equal(t, 1.0+10*2, still.Sample(1, 2))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(-1))
	assert.Equal(t, 0.5, Normalize(0))
	assert.Equal(t, 1.0, Normalize(1))
	assert.Equal(t, 0.0, Normalize(-3))
	assert.Equal(t, 1.0, Normalize(2.5))
}
