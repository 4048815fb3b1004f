package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"overworld/internal/biome"
	"overworld/internal/chunk"
	"overworld/internal/stream"
)

// Fallback colors when no tileset is loaded.
var tilePalette = map[biome.TileKind]color.RGBA{
	biome.None:            {0, 0, 0, 255},
	biome.DeepWater:       {18, 42, 110, 255},
	biome.MediumWater:     {30, 70, 160, 255},
	biome.ShallowWater:    {64, 120, 200, 255},
	biome.Beach:           {222, 204, 140, 255},
	biome.Rock:            {120, 112, 104, 255},
	biome.Mountain:        {86, 80, 76, 255},
	biome.Snow:            {238, 242, 248, 255},
	biome.PineForest:      {34, 84, 60, 255},
	biome.Desert:          {230, 190, 110, 255},
	biome.LushForest:      {26, 120, 48, 255},
	biome.DeciduousForest: {60, 140, 60, 255},
	biome.Savannah:        {176, 170, 80, 255},
	biome.Highland:        {120, 150, 90, 255},
	biome.Grass:           {100, 190, 90, 255},
}

// ChunkRenderer keeps one pre-rendered image per spawned chunk and follows
// the streamer's spawn and despawn events.
type ChunkRenderer struct {
	Tileset   *ebiten.Image
	TileCache map[uint32]*ebiten.Image
	Atlas     *biome.Atlas
	// Source pixels per tile in the chunk images.
	TilePx   int
	DrawOpts *ebiten.DrawImageOptions

	chunks map[chunk.Coord]*chunkImage
}

type chunkImage struct {
	img    *ebiten.Image
	origin [2]float64
	size   [2]float64
}

// NewChunkRenderer draws from tileset when given one, otherwise from the
// flat palette at one pixel per tile.
func NewChunkRenderer(tileset *ebiten.Image, atlas *biome.Atlas, tilePx int) *ChunkRenderer {
	r := &ChunkRenderer{
		Tileset:   tileset,
		TileCache: make(map[uint32]*ebiten.Image),
		Atlas:     atlas,
		TilePx:    1,
		DrawOpts:  &ebiten.DrawImageOptions{},
		chunks:    make(map[chunk.Coord]*chunkImage),
	}
	if tileset != nil && tilePx > 0 {
		r.TilePx = tilePx
	}
	return r
}

// Apply mirrors a batch of streamer events.
func (r *ChunkRenderer) Apply(events []stream.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case stream.Spawn:
			r.add(ev.Chunk)
		case stream.Despawn:
			r.remove(ev.Coord)
		}
	}
}

func (r *ChunkRenderer) Len() int {
	return len(r.chunks)
}

func (r *ChunkRenderer) add(c *chunk.Chunk) {
	r.remove(c.Coord)
	img := ebiten.NewImage(c.Width*r.TilePx, c.Height*r.TilePx)
	op := &ebiten.DrawImageOptions{}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			k, _ := c.At(x, y)
			tile := r.tileImage(k)
			if tile == nil {
				cell := image.Rect(x*r.TilePx, y*r.TilePx, (x+1)*r.TilePx, (y+1)*r.TilePx)
				img.SubImage(cell).(*ebiten.Image).Fill(tilePalette[k])
				continue
			}
			op.GeoM.Reset()
			op.GeoM.Translate(float64(x*r.TilePx), float64(y*r.TilePx))
			img.DrawImage(tile, op)
		}
	}
	r.chunks[c.Coord] = &chunkImage{
		img:    img,
		origin: [2]float64{c.Origin.X(), c.Origin.Y()},
		size:   [2]float64{c.Size.X(), c.Size.Y()},
	}
}

func (r *ChunkRenderer) remove(c chunk.Coord) {
	if ci, ok := r.chunks[c]; ok {
		ci.img.Deallocate()
		delete(r.chunks, c)
	}
}

// Clear drops every chunk image.
func (r *ChunkRenderer) Clear() {
	for c := range r.chunks {
		r.remove(c)
	}
}

// tileImage returns the tileset cell for k, or nil in palette mode.
func (r *ChunkRenderer) tileImage(k biome.TileKind) *ebiten.Image {
	if r.Tileset == nil || r.Atlas == nil {
		return nil
	}
	idx, ok := r.Atlas.Index(k)
	if !ok {
		return nil
	}
	if cached, ok := r.TileCache[idx]; ok {
		return cached
	}
	// Calculate position in tileset
	tilesetCols := r.Tileset.Bounds().Dx() / r.TilePx
	if tilesetCols == 0 {
		return nil
	}
	tsX := (int(idx) % tilesetCols) * r.TilePx
	tsY := (int(idx) / tilesetCols) * r.TilePx
	if tsX+r.TilePx > r.Tileset.Bounds().Dx() || tsY+r.TilePx > r.Tileset.Bounds().Dy() {
		return nil
	}
	img := r.Tileset.SubImage(image.Rect(tsX, tsY, tsX+r.TilePx, tsY+r.TilePx)).(*ebiten.Image)
	r.TileCache[idx] = img
	return img
}

// Draw renders every visible chunk. cam is the world position of the
// screen's top-left corner.
func (r *ChunkRenderer) Draw(screen *ebiten.Image, camX, camY, zoom float64) {
	viewW := float64(ScreenWidth) / zoom
	viewH := float64(ScreenHeight) / zoom
	for _, ci := range r.chunks {
		if ci.origin[0]+ci.size[0] < camX || ci.origin[0] > camX+viewW ||
			ci.origin[1]+ci.size[1] < camY || ci.origin[1] > camY+viewH {
			continue
		}
		sx := ci.size[0] / float64(ci.img.Bounds().Dx())
		sy := ci.size[1] / float64(ci.img.Bounds().Dy())

		r.DrawOpts.GeoM.Reset()
		r.DrawOpts.GeoM.Scale(sx*zoom, sy*zoom)
		r.DrawOpts.GeoM.Translate((ci.origin[0]-camX)*zoom, (ci.origin[1]-camY)*zoom)
		r.DrawOpts.Filter = ebiten.FilterNearest
		screen.DrawImage(ci.img, r.DrawOpts)
	}
}
