// Package config holds the world generation and streaming configuration and
// loads it from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"overworld/internal/biome"
)

// ErrInvalid wraps every configuration error. These are fatal at startup.
var ErrInvalid = errors.New("invalid config")

// World is the noise configuration for one generation run. It is replaced
// wholesale on regenerate, never edited in place.
type World struct {
	ElevationSeed int64   `yaml:"elevation_seed"`
	MoistureSeed  int64   `yaml:"moisture_seed"`
	Frequency     float64 `yaml:"frequency"`
	Octaves       int     `yaml:"octaves"`
	Lacunarity    float64 `yaml:"lacunarity"`
	Persistence   float64 `yaml:"persistence"`
	Amplitude     float64 `yaml:"amplitude"`
	PowFactor     float64 `yaml:"pow_factor"`
	WarpAmplitude float64 `yaml:"warp_amplitude"`
	MoistureWarp  float64 `yaml:"moisture_warp"`
}

// Layout is the finite map geometry. Sizes are in tiles, TileSize in world
// units per tile.
type Layout struct {
	WorldWidth  int     `yaml:"world_width"`
	WorldHeight int     `yaml:"world_height"`
	ChunkWidth  int     `yaml:"chunk_width"`
	ChunkHeight int     `yaml:"chunk_height"`
	TileSize    float64 `yaml:"tile_size"`
}

// Streaming controls the chunk window around the viewpoint.
type Streaming struct {
	// Chunks on each side of the viewpoint chunk.
	SpawnRadius int `yaml:"spawn_radius"`
	// Distance from a chunk centre, in chunk widths, past which it is dropped.
	DespawnDistance float64 `yaml:"despawn_distance"`
	// Budget for live chunks; 0 means the whole map.
	MaxChunks int `yaml:"max_chunks"`
	// Goroutines per chunk generation; 1 generates inline.
	Workers int `yaml:"workers"`
}

type Config struct {
	World     World             `yaml:"world"`
	Layout    Layout            `yaml:"layout"`
	Streaming Streaming         `yaml:"streaming"`
	Biome     biome.Thresholds  `yaml:"biome"`
	Atlas     map[string]uint32 `yaml:"atlas"`
}

func DefaultWorld() World {
	return World{
		Frequency:     2.5,
		Octaves:       5,
		Lacunarity:    0.7,
		Persistence:   2.0,
		Amplitude:     1.0,
		PowFactor:     1.75,
		WarpAmplitude: 0.08,
	}
}

func Defaults() Config {
	return Config{
		World: DefaultWorld(),
		Layout: Layout{
			WorldWidth:  1024,
			WorldHeight: 768,
			ChunkWidth:  16,
			ChunkHeight: 16,
			TileSize:    32,
		},
		Streaming: Streaming{
			SpawnRadius:     2,
			DespawnDistance: 6.5,
			Workers:         1,
		},
		Biome: biome.DefaultThresholds(),
		Atlas: biome.DefaultAtlasNames(),
	}
}

// Reseed returns a copy of w with fresh seeds drawn from r.
func (w World) Reseed(r *rand.Rand) World {
	w.ElevationSeed = r.Int63()
	w.MoistureSeed = r.Int63()
	return w
}

// WithRandomSeeds fills any zero seed from r.
func (c Config) WithRandomSeeds(r *rand.Rand) Config {
	if c.World.ElevationSeed == 0 {
		c.World.ElevationSeed = r.Int63()
	}
	if c.World.MoistureSeed == 0 {
		c.World.MoistureSeed = r.Int63()
	}
	return c
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (w World) Validate() error {
	switch {
	case w.Octaves < 1:
		return invalid("octaves must be at least 1, got %d", w.Octaves)
	case !(w.Frequency > 0):
		return invalid("frequency must be positive, got %v", w.Frequency)
	case !(w.Lacunarity > 0):
		return invalid("lacunarity must be positive, got %v", w.Lacunarity)
	case !(w.Persistence > 0):
		return invalid("persistence must be positive, got %v", w.Persistence)
	case !(w.PowFactor > 0):
		return invalid("pow_factor must be positive, got %v", w.PowFactor)
	case w.Amplitude < 0:
		return invalid("amplitude must not be negative, got %v", w.Amplitude)
	case w.WarpAmplitude < 0 || w.MoistureWarp < 0:
		return invalid("warp amplitudes must not be negative")
	}
	return nil
}

func (l Layout) Validate() error {
	switch {
	case l.ChunkWidth <= 0 || l.ChunkHeight <= 0:
		return invalid("chunk size must be positive, got %dx%d", l.ChunkWidth, l.ChunkHeight)
	case l.WorldWidth <= 0 || l.WorldHeight <= 0:
		return invalid("world extent must be positive, got %dx%d", l.WorldWidth, l.WorldHeight)
	case !(l.TileSize > 0):
		return invalid("tile_size must be positive, got %v", l.TileSize)
	}
	return nil
}

// ChunksX is the number of chunk columns, rounded up.
func (l Layout) ChunksX() int {
	return (l.WorldWidth + l.ChunkWidth - 1) / l.ChunkWidth
}

func (l Layout) ChunksY() int {
	return (l.WorldHeight + l.ChunkHeight - 1) / l.ChunkHeight
}

// MaxChunks is the number of chunks the finite map can hold.
func (l Layout) MaxChunks() int {
	return l.ChunksX() * l.ChunksY()
}

// ChunkWorldSize is a chunk's extent in world units.
func (l Layout) ChunkWorldSize() (w, h float64) {
	return float64(l.ChunkWidth) * l.TileSize, float64(l.ChunkHeight) * l.TileSize
}

// DespawnWorldDistance converts the despawn distance to world units.
func (c Config) DespawnWorldDistance() float64 {
	w, h := c.Layout.ChunkWorldSize()
	return c.Streaming.DespawnDistance * math.Max(w, h)
}

// SpawnExtent is the farthest any chunk centre in the spawn window can be
// from the viewpoint, in world units.
func (c Config) SpawnExtent() float64 {
	w, h := c.Layout.ChunkWorldSize()
	r := float64(c.Streaming.SpawnRadius) + 0.5
	return math.Hypot(r*w, r*h)
}

// ChunkBudget is the effective cap on live chunks.
func (c Config) ChunkBudget() int {
	total := c.Layout.MaxChunks()
	if c.Streaming.MaxChunks > 0 && c.Streaming.MaxChunks < total {
		return c.Streaming.MaxChunks
	}
	return total
}

func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	s := c.Streaming
	switch {
	case s.SpawnRadius < 0:
		return invalid("spawn_radius must not be negative, got %d", s.SpawnRadius)
	case s.MaxChunks < 0:
		return invalid("max_chunks must not be negative, got %d", s.MaxChunks)
	case s.MaxChunks > c.Layout.MaxChunks():
		return invalid("max_chunks %d exceeds the %d chunks of the map", s.MaxChunks, c.Layout.MaxChunks())
	case s.Workers < 0:
		return invalid("workers must not be negative, got %d", s.Workers)
	case !(c.DespawnWorldDistance() > c.SpawnExtent()):
		return invalid("despawn distance %.1f must exceed the spawn extent %.1f", c.DespawnWorldDistance(), c.SpawnExtent())
	}
	if err := c.Biome.Validate(); err != nil {
		return fmt.Errorf("%w: biome: %v", ErrInvalid, err)
	}
	if _, err := c.TileAtlas(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := biome.ValidateTables(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// TileAtlas builds the display index table, falling back to the default.
func (c Config) TileAtlas() (*biome.Atlas, error) {
	if len(c.Atlas) == 0 {
		return biome.DefaultAtlas(), nil
	}
	return biome.NewAtlasFromNames(c.Atlas)
}
