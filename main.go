package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"overworld/internal/config"
	"overworld/internal/mathx"
	"overworld/internal/stream"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	MinZoom = 0.05
	MaxZoom = 4.0
)

type Game struct {
	// Game state
	gameState   GameState
	introScreen *IntroScreen
	pauseScreen *PauseScreen

	// Pause buffer
	gameBuffer *ebiten.Image

	// Systems
	cfg      config.Config
	streamer *stream.Streamer
	renderer *ChunkRenderer
	ui       *UI
	rng      *rand.Rand
	logger   *log.Logger

	// Viewpoint
	pos       mgl64.Vec2
	facing    Facing
	blockedBy string
	needSpawn bool

	// Camera
	camCenter mgl64.Vec2
	zoom      float64
	freeCam   bool

	// Debug
	showDebug  bool
	showConfig bool
	lastEvents int
}

// Update game logic
func (g *Game) Update() error {
	switch g.gameState {
	case StateIntro:
		// Stream behind the intro so the first frame has terrain.
		g.tick()
		if newState := g.introScreen.Update(); newState != StateIntro {
			g.gameState = newState
		}

	case StateExploring:
		g.updateExploring()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.gameState = StatePaused
			g.pauseScreen = NewPauseScreen()
		}

	case StatePaused:
		switch g.pauseScreen.Update() {
		case PauseResume:
			g.gameState = StateExploring
		case PauseRegenerate:
			g.regenerate()
			g.gameState = StateExploring
		case PauseQuit:
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) updateExploring() {
	g.handleDebugInputs()
	g.updatePlayer()
	g.updateCamera()
	g.tick()

	k, ok := g.streamer.TileAt(g.pos)
	g.ui.Update(k, ok)
}

// tick advances the streamer from the current viewpoint and keeps the
// renderer in step.
func (g *Game) tick() {
	events := g.streamer.Tick(g.pos)
	g.lastEvents = len(events)
	g.renderer.Apply(events)

	if g.needSpawn && g.streamer.Mode() == stream.Streaming && g.streamer.Len() > 0 {
		g.needSpawn = false
		if !g.freeCam && !g.findSpawn() {
			g.ui.AddNotification("No walkable ground nearby, press Tab for free camera")
		}
		g.camCenter = g.pos
	}
}

// regenerate draws fresh seeds and asks the streamer to rebuild.
func (g *Game) regenerate() {
	world := g.cfg.World.Reseed(g.rng)
	if err := g.streamer.Regenerate(world); err != nil {
		g.logger.Printf("regenerate failed: %v", err)
		g.ui.AddNotification("Regenerate failed: " + err.Error())
		return
	}
	g.cfg = g.streamer.Config()
	g.needSpawn = true
	g.ui.AddNotification(fmt.Sprintf("New world, seeds %d / %d", world.ElevationSeed, world.MoistureSeed))
}

// Toggle debug modes
func (g *Game) handleDebugInputs() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.showConfig = !g.showConfig
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.freeCam = !g.freeCam
		if g.freeCam {
			g.ui.AddNotification("Free camera: walkability ignored")
		} else {
			g.needSpawn = g.streamer.CheckMove(g.pos) != stream.MoveLegal
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.regenerate()
	}

	zoom := g.zoom
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		zoom *= 1.02
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		zoom /= 1.02
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		zoom *= math.Pow(1.1, wy)
	}
	g.zoom = mathx.Clamp(zoom, MinZoom, MaxZoom)
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.gameState {
	case StateIntro:
		g.introScreen.Draw(screen)

	case StateExploring:
		g.drawWorld(screen)

	case StatePaused:
		if g.gameBuffer == nil {
			g.gameBuffer = ebiten.NewImage(ScreenWidth, ScreenHeight)
		}
		g.gameBuffer.Clear()
		g.drawWorld(g.gameBuffer)
		g.pauseScreen.Draw(screen, g.gameBuffer)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	camX, camY := g.cameraOrigin()
	g.renderer.Draw(screen, camX, camY, g.zoom)
	g.drawPlayer(screen)
	g.ui.Draw(screen)

	if g.showConfig {
		drawConfigPanel(screen, g.cfg, g.streamer.Stats())
	}
	if g.showDebug {
		g.drawDebug(screen)
	}
}

func (g *Game) Layout(w, h int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	c := g.streamer.ViewpointChunk(g.pos)
	k, ok := g.streamer.TileAt(g.pos)
	tile := "no chunk"
	if ok {
		tile = k.String()
	}
	l := g.cfg.Layout
	s := g.cfg.World
	sample := g.streamer.Sampler().Sample(math.Floor(g.pos.X()/l.TileSize), math.Floor(g.pos.Y()/l.TileSize))
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %0.2f\nTPS: %0.2f\nX: %0.1f\nY: %0.1f\nChunk: %v\nTile: %s\nE/M/T: %.3f %.3f %.3f\nBlocked: %s\nChunks: %d/%d (drawn %d)\nEvents: %d\nMode: %s\nGeneration: %s\nSeeds: %d / %d\nZoom: %.2f\nFree camera: %v",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.pos.X(), g.pos.Y(), c, tile,
		sample.Elevation, sample.Moisture, sample.Temperature, g.blockedBy,
		g.streamer.Len(), g.streamer.MaxChunks(), g.renderer.Len(), g.lastEvents,
		g.streamer.Mode(), g.streamer.Generation(), s.ElevationSeed, s.MoistureSeed, g.zoom, g.freeCam))
}

func main() {
	configPath := flag.String("config", "", "world config YAML (default: bundled configs/world.yaml)")
	seed := flag.Int64("seed", 0, "override both noise seeds (0 keeps the config's)")
	tilesetPath := flag.String("tileset", "", "optional tileset PNG, cells indexed by the config atlas")
	flag.Parse()

	logger := log.New(os.Stdout, "[overworld] ", log.LstdFlags|log.Lmicroseconds)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if *seed != 0 {
		cfg.World.ElevationSeed = *seed
		cfg.World.MoistureSeed = mathx.SubSeed(*seed, 1)
	}
	cfg = cfg.WithRandomSeeds(rng)

	var tileset *ebiten.Image
	if *tilesetPath != "" {
		tileset = loadImage(*tilesetPath)
	}

	game, err := NewGame(cfg, tileset, rng, logger)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Overworld")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		if err != ebiten.Termination {
			logger.Fatal(err)
		}
	}
}
