package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overworld/internal/config"
)

func scenarioWorld() config.World {
	w := config.DefaultWorld()
	w.ElevationSeed = 42
	w.MoistureSeed = 7
	w.Frequency = 2.5
	w.Octaves = 5
	w.Persistence = 2.0
	w.Lacunarity = 0.7
	w.PowFactor = 1.75
	return w
}

func newSampler(t *testing.T, w config.World) *Sampler {
	t.Helper()
	s, err := New(w, config.Defaults().Layout)
	require.NoError(t, err)
	return s
}

func TestSampleDeterministic(t *testing.T) {
	s := newSampler(t, scenarioWorld())
	a := s.Sample(0, 0)
	b := s.Sample(0, 0)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, s.Sample(1, 0))

	// A second sampler from the same config agrees bit for bit.
	other := newSampler(t, scenarioWorld())
	for _, p := range [][2]float64{{0, 0}, {17, 3}, {512, 384}, {1023, 767}} {
		assert.Equal(t, s.Sample(p[0], p[1]), other.Sample(p[0], p[1]))
	}
}

func TestSampleRanges(t *testing.T) {
	s := newSampler(t, scenarioWorld())
	for y := 0; y < 768; y += 37 {
		for x := 0; x < 1024; x += 41 {
			got := s.Sample(float64(x), float64(y))
			assert.True(t, got.Elevation >= 0 && got.Elevation <= 1, "elevation %v", got.Elevation)
			assert.True(t, got.Moisture >= 0 && got.Moisture <= 1, "moisture %v", got.Moisture)
			assert.True(t, got.Temperature >= 0 && got.Temperature <= 1, "temperature %v", got.Temperature)
		}
	}
}

func TestSeedsChangeTerrain(t *testing.T) {
	a := newSampler(t, scenarioWorld())
	w := scenarioWorld()
	w.ElevationSeed = 43
	b := newSampler(t, w)

	differ := false
	for x := 0; x < 1024 && !differ; x += 64 {
		differ = a.Sample(float64(x), 100).Elevation != b.Sample(float64(x), 100).Elevation
	}
	assert.True(t, differ)
}

func TestEquatorWarmerThanPoles(t *testing.T) {
	s := newSampler(t, scenarioWorld())
	var equator, pole float64
	for x := 0; x < 1024; x += 16 {
		equator += s.Sample(float64(x), 384).Temperature
		pole += s.Sample(float64(x), 0).Temperature
	}
	assert.Greater(t, equator, pole)
}

func TestLatitude(t *testing.T) {
	assert.Equal(t, 1.0, Latitude(0))
	assert.Equal(t, 0.0, Latitude(-0.5))
	assert.Equal(t, 0.0, Latitude(0.5))
	assert.InDelta(t, 0.5, Latitude(0.25), 1e-12)
	assert.Equal(t, 0.0, Latitude(2))
}

func TestPowFactorFlattensLowlands(t *testing.T) {
	low := scenarioWorld()
	low.PowFactor = 1
	high := scenarioWorld()
	high.PowFactor = 2.8
	a, b := newSampler(t, low), newSampler(t, high)
	for x := 0; x < 1024; x += 97 {
		assert.LessOrEqual(t, b.Sample(float64(x), 200).Elevation, a.Sample(float64(x), 200).Elevation)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	layout := config.Defaults().Layout
	layout.WorldWidth = 0
	_, err := New(scenarioWorld(), layout)
	assert.ErrorIs(t, err, config.ErrInvalid)

	w := scenarioWorld()
	w.Octaves = 0
	_, err = New(w, config.Defaults().Layout)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
