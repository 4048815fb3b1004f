package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"overworld/internal/biome"
	"overworld/internal/stream"
)

// Movement
const (
	// Tiles per second.
	MoveSpeedTiles = 20.0
	TicksPerSecond = 60.0
	FreeCamBoost   = 3.0

	// Camera follow smoothing, per second.
	CameraDecayRate = 2.0

	PlayerRadius = 6.0
)

type Facing int

const (
	FacingDown Facing = iota
	FacingLeft
	FacingRight
	FacingUp
)

// readMove returns the single axis the player is pushing toward. One axis at
// a time keeps movement on the tile grid's rows and columns.
func readMove() (mgl64.Vec2, Facing, bool) {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		return mgl64.Vec2{-1, 0}, FacingLeft, true
	case ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		return mgl64.Vec2{1, 0}, FacingRight, true
	case ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		return mgl64.Vec2{0, 1}, FacingDown, true
	case ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		return mgl64.Vec2{0, -1}, FacingUp, true
	}
	return mgl64.Vec2{}, 0, false
}

func (g *Game) updatePlayer() {
	dir, facing, moving := readMove()
	if !moving {
		return
	}
	g.facing = facing

	step := MoveSpeedTiles * g.cfg.Layout.TileSize / TicksPerSecond
	if g.freeCam {
		g.pos = g.clampToMap(g.pos.Add(dir.Mul(step * FreeCamBoost)))
		return
	}

	dest := g.pos.Add(dir.Mul(step))
	// Probe the leading edge so the marker never overlaps a blocked tile.
	probe := dest.Add(dir.Mul(PlayerRadius))
	switch res := g.streamer.CheckMove(probe); res {
	case stream.MoveLegal:
		g.pos = dest
		g.blockedBy = ""
	default:
		g.blockedBy = res.String()
		if k, ok := g.streamer.TileAt(probe); ok {
			g.blockedBy = biomeLabel(k)
		}
	}
}

// clampToMap keeps a position within the finite world.
func (g *Game) clampToMap(p mgl64.Vec2) mgl64.Vec2 {
	w, h := g.mapSize()
	return mgl64.Vec2{
		math.Max(0, math.Min(p.X(), w-1)),
		math.Max(0, math.Min(p.Y(), h-1)),
	}
}

func (g *Game) mapSize() (float64, float64) {
	l := g.cfg.Layout
	return float64(l.WorldWidth) * l.TileSize, float64(l.WorldHeight) * l.TileSize
}

// findSpawn moves the player to the walkable tile centre closest to its
// current position among the spawned chunks. It reports false when every
// loaded tile is blocked.
func (g *Game) findSpawn() bool {
	ts := g.cfg.Layout.TileSize
	best := math.Inf(1)
	var found mgl64.Vec2
	for _, c := range g.streamer.Spawned() {
		ch, _ := g.streamer.Chunk(c)
		for y := 0; y < ch.Height; y++ {
			for x := 0; x < ch.Width; x++ {
				k, _ := ch.At(x, y)
				if !biome.IsWalkable(k) {
					continue
				}
				p := ch.Origin.Add(mgl64.Vec2{(float64(x) + 0.5) * ts, (float64(y) + 0.5) * ts})
				if d := p.Sub(g.pos).LenSqr(); d < best {
					best, found = d, p
				}
			}
		}
	}
	if math.IsInf(best, 1) {
		return false
	}
	g.pos = found
	return true
}

// updateCamera eases the camera centre toward the player.
func (g *Game) updateCamera() {
	t := 1 - math.Exp(-CameraDecayRate/TicksPerSecond)
	if g.freeCam {
		t = 1
	}
	g.camCenter = g.camCenter.Add(g.pos.Sub(g.camCenter).Mul(t))
}

// cameraOrigin is the world position at the top-left of the screen.
func (g *Game) cameraOrigin() (float64, float64) {
	viewW := float64(ScreenWidth) / g.zoom
	viewH := float64(ScreenHeight) / g.zoom
	return g.camCenter.X() - viewW/2, g.camCenter.Y() - viewH/2
}

var facingTips = map[Facing][2]float32{
	FacingDown:  {0, 1},
	FacingLeft:  {-1, 0},
	FacingRight: {1, 0},
	FacingUp:    {0, -1},
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	camX, camY := g.cameraOrigin()
	sx := float32((g.pos.X() - camX) * g.zoom)
	sy := float32((g.pos.Y() - camY) * g.zoom)
	r := float32(PlayerRadius * g.zoom)
	if r < 3 {
		r = 3
	}

	body := color.RGBA{200, 100, 255, 255}
	if g.freeCam {
		body = color.RGBA{255, 220, 80, 255}
	}
	vector.DrawFilledCircle(screen, sx, sy, r+1, color.RGBA{0, 0, 0, 200}, false)
	vector.DrawFilledCircle(screen, sx, sy, r, body, false)

	tip := facingTips[g.facing]
	vector.StrokeLine(screen, sx, sy, sx+tip[0]*r*1.8, sy+tip[1]*r*1.8, 2, color.White, false)
}
