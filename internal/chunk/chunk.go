// Package chunk builds fixed-size tile grids for chunk coordinates.
package chunk

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"overworld/internal/biome"
)

// Coord is a position in the chunk grid, not in tiles or world units.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chunk is a fully generated grid of tiles. It is immutable once returned
// by a Generator.
type Chunk struct {
	Coord  Coord
	Width  int
	Height int
	// Origin is the world position of the chunk's top-left corner.
	Origin mgl64.Vec2
	// Size is the chunk's extent in world units.
	Size mgl64.Vec2

	tiles []biome.TileKind
}

// At returns the tile at local offset (x, y).
func (c *Chunk) At(x, y int) (biome.TileKind, bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return biome.None, false
	}
	return c.tiles[y*c.Width+x], true
}

// Len is the number of populated tiles.
func (c *Chunk) Len() int {
	return len(c.tiles)
}

// Complete reports whether every tile of the grid is populated.
func (c *Chunk) Complete() bool {
	return c.Width > 0 && c.Height > 0 && len(c.tiles) == c.Width*c.Height
}

// Center is the world position of the chunk's centre.
func (c *Chunk) Center() mgl64.Vec2 {
	return c.Origin.Add(c.Size.Mul(0.5))
}

// Counts tallies tiles per kind.
func (c *Chunk) Counts() map[biome.TileKind]int {
	out := make(map[biome.TileKind]int)
	for _, k := range c.tiles {
		out[k]++
	}
	return out
}

// DisplayIndices maps the grid through atlas, row-major.
func (c *Chunk) DisplayIndices(atlas *biome.Atlas) ([]uint32, error) {
	out := make([]uint32, len(c.tiles))
	for i, k := range c.tiles {
		idx, ok := atlas.Index(k)
		if !ok {
			return nil, fmt.Errorf("%w: no index for %s", biome.ErrAtlas, k)
		}
		out[i] = idx
	}
	return out, nil
}
