package chunk

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"overworld/internal/biome"
	"overworld/internal/config"
	"overworld/internal/terrain"
)

// Generator produces chunks from a sampler and classification thresholds.
type Generator struct {
	sampler    *terrain.Sampler
	thresholds biome.Thresholds
	layout     config.Layout
	workers    int
}

// NewGenerator validates the layout and thresholds. workers <= 1 generates
// on the calling goroutine.
func NewGenerator(sampler *terrain.Sampler, thresholds biome.Thresholds, layout config.Layout, workers int) (*Generator, error) {
	if sampler == nil {
		return nil, fmt.Errorf("%w: nil sampler", config.ErrInvalid)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: biome: %v", config.ErrInvalid, err)
	}
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		sampler:    sampler,
		thresholds: thresholds,
		layout:     layout,
		workers:    workers,
	}, nil
}

// Sampler returns the terrain sampler backing g.
func (g *Generator) Sampler() *terrain.Sampler {
	return g.sampler
}

// TileKind classifies a single world tile. Tiles past the map's extent are
// biome.None.
func (g *Generator) TileKind(wx, wy int) biome.TileKind {
	if wx < 0 || wy < 0 || wx >= g.layout.WorldWidth || wy >= g.layout.WorldHeight {
		return biome.None
	}
	s := g.sampler.Sample(float64(wx), float64(wy))
	return g.thresholds.Classify(s.Elevation, s.Moisture, s.Temperature)
}

// Generate builds the chunk at coord. The chunk is returned only after every
// tile has been written.
func (g *Generator) Generate(coord Coord) *Chunk {
	w, h := g.layout.ChunkWidth, g.layout.ChunkHeight
	cw, ch := g.layout.ChunkWorldSize()
	c := &Chunk{
		Coord:  coord,
		Width:  w,
		Height: h,
		Origin: mgl64.Vec2{float64(coord.X) * cw, float64(coord.Y) * ch},
		Size:   mgl64.Vec2{cw, ch},
		tiles:  make([]biome.TileKind, w*h),
	}
	baseX, baseY := coord.X*w, coord.Y*h

	fillRow := func(y int) {
		row := c.tiles[y*w : (y+1)*w]
		for x := range row {
			row[x] = g.TileKind(baseX+x, baseY+y)
		}
	}

	if g.workers == 1 {
		for y := 0; y < h; y++ {
			fillRow(y)
		}
		return c
	}

	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for y := 0; y < h; y++ {
		y := y
		eg.Go(func() error {
			fillRow(y)
			return nil
		})
	}
	// Rows never fail; Wait is the join before publication.
	_ = eg.Wait()
	return c
}
