// Package terrain turns world tile coordinates into elevation, moisture and
// temperature samples.
package terrain

import (
	"fmt"
	"math"

	"overworld/internal/config"
	"overworld/internal/mathx"
	"overworld/internal/noise"
)

// Weights of the 1x, 2x and 4x elevation octaves.
var scaleWeights = [...]struct{ scale, weight float64 }{
	{1, 1},
	{2, 0.5},
	{4, 0.25},
}

const (
	moistureScale    = 1.5
	moistureOwn      = 0.7
	moistureValley   = 0.3
	temperatureScale = 2
	temperatureNoise = 0.12
	elevationCooling = 0.5
	// Temperature noise is seeded off the moisture seed.
	temperatureSeedOffset = 12345
)

// Sample is one tile's climate. All fields are in [0, 1].
type Sample struct {
	Elevation   float64
	Moisture    float64
	Temperature float64
}

// Sampler is built once per world config and is safe for concurrent use.
type Sampler struct {
	world  config.World
	width  float64
	height float64

	elevation    noise.Field
	elevWarp     noise.Warp
	moisture     noise.Field
	moistureWarp noise.Warp
	temperature  noise.Field
}

func New(world config.World, layout config.Layout) (*Sampler, error) {
	if err := world.Validate(); err != nil {
		return nil, err
	}
	if layout.WorldWidth <= 0 || layout.WorldHeight <= 0 {
		return nil, fmt.Errorf("%w: world extent must be positive, got %dx%d",
			config.ErrInvalid, layout.WorldWidth, layout.WorldHeight)
	}

	p := noise.Params{
		Octaves:     world.Octaves,
		Frequency:   world.Frequency,
		Lacunarity:  world.Lacunarity,
		Persistence: world.Persistence,
		Amplitude:   world.Amplitude,
	}
	es := world.ElevationSeed
	ms := world.MoistureSeed

	s := &Sampler{
		world:  world,
		width:  float64(layout.WorldWidth),
		height: float64(layout.WorldHeight),
		elevation: noise.Blend{
			A:       noise.Raw{Source: noise.NewSimplex(es), Frequency: world.Frequency},
			B:       noise.NewRidged(noise.NewSimplex(mathx.SubSeed(es, 2)), p),
			Control: noise.NewFBM(noise.NewPerlin(mathx.SubSeed(es, 3)), p),
		},
		elevWarp: noise.Warp{
			X:         noise.Scaled{Field: noise.NewFBM(noise.NewPerlin(mathx.SubSeed(es, 1)), p), Scale: 2},
			Amplitude: world.WarpAmplitude,
		},
		moisture: noise.NewFBM(noise.NewSimplex(ms), p),
		moistureWarp: noise.Warp{
			X:         noise.Scaled{Field: noise.NewFBM(noise.NewPerlin(mathx.SubSeed(ms, 1)), p), Scale: 2},
			Amplitude: world.MoistureWarp,
		},
		temperature: noise.NewFBM(noise.NewPerlin(ms+temperatureSeedOffset), p),
	}
	return s, nil
}

// World returns the config the sampler was built from.
func (s *Sampler) World() config.World {
	return s.world
}

// Normalized maps a world tile coordinate into roughly [-0.5, 0.5].
func (s *Sampler) Normalized(wx, wy float64) (nx, ny float64) {
	return wx/s.width - 0.5, wy/s.height - 0.5
}

// Sample returns the climate at world tile (wx, wy). It is deterministic
// for a given config.
func (s *Sampler) Sample(wx, wy float64) Sample {
	nx, ny := s.Normalized(wx, wy)
	e := s.Elevation(nx, ny)
	return Sample{
		Elevation:   e,
		Moisture:    s.moistureAt(nx, ny, e),
		Temperature: s.temperatureAt(nx, ny, e),
	}
}

// Elevation is the redistributed elevation at a normalized coordinate.
func (s *Sampler) Elevation(nx, ny float64) float64 {
	dx, dy := s.elevWarp.Offset(nx, ny)
	x, y := nx+dx, ny+dy

	var sum, total float64
	for _, sw := range scaleWeights {
		sum += s.elevation.Sample(x*sw.scale, y*sw.scale) * sw.weight
		total += sw.weight
	}
	e := noise.Normalize(sum / total)
	return mathx.Clamp(math.Pow(e, s.world.PowFactor), 0, 1)
}

func (s *Sampler) moistureAt(nx, ny, e float64) float64 {
	dx, dy := s.moistureWarp.Offset(nx, ny)
	m := noise.Normalize(s.moisture.Sample((nx+dx)*moistureScale, (ny+dy)*moistureScale))
	return mathx.Clamp(m*moistureOwn+(1-e)*moistureValley, 0, 1)
}

// Latitude is 1 on the map's horizontal centre line and 0 at the top and
// bottom edges.
func Latitude(ny float64) float64 {
	return mathx.Clamp(1-math.Abs(2*ny), 0, 1)
}

func (s *Sampler) temperatureAt(nx, ny, e float64) float64 {
	n := noise.Normalize(s.temperature.Sample(nx*temperatureScale, ny*temperatureScale))
	return mathx.Clamp(Latitude(ny)+n*temperatureNoise-e*elevationCooling, 0, 1)
}
