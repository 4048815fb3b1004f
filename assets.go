package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"overworld/internal/config"
	"overworld/internal/stream"
)

//go:embed configs/world.yaml
var defaultWorldYAML []byte

func loadImage(path string) *ebiten.Image {
	if IsEmbedded() {
		embeddedFS := GetEmbeddedFS()
		if embeddedFS != nil {
			data, err := fs.ReadFile(embeddedFS, path)
			if err != nil {
				log.Printf("Warning: Failed to load embedded image %s: %v", path, err)
				return nil
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				log.Printf("Warning: Failed to decode embedded image %s: %v", path, err)
				return nil
			}
			return ebiten.NewImageFromImage(img)
		}
	}
	// Fallback to filesystem
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		log.Printf("Warning: Failed to load image %s: %v", path, err)
		return nil
	}
	return img
}

// loadConfig reads path, or the bundled config when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Parse(defaultWorldYAML)
	}
	if IsEmbedded() {
		if embeddedFS := GetEmbeddedFS(); embeddedFS != nil {
			data, err := fs.ReadFile(embeddedFS, path)
			if err != nil {
				return config.Config{}, err
			}
			cfg, err := config.Parse(data)
			if err != nil {
				return config.Config{}, fmt.Errorf("%s: %w", path, err)
			}
			return cfg, nil
		}
	}
	return config.Load(path)
}

// NewGame builds the streamer for cfg and places the viewpoint at the map
// centre. tileset may be nil.
func NewGame(cfg config.Config, tileset *ebiten.Image, rng *rand.Rand, logger *log.Logger) (*Game, error) {
	s, err := stream.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	atlas, err := cfg.TileAtlas()
	if err != nil {
		return nil, err
	}

	g := &Game{
		gameState: StateIntro,
		introScreen: NewIntroScreen(fmt.Sprintf("seeds %d / %d",
			cfg.World.ElevationSeed, cfg.World.MoistureSeed)),

		cfg:      cfg,
		streamer: s,
		renderer: NewChunkRenderer(tileset, atlas, int(cfg.Layout.TileSize)),
		ui:       NewUI(),
		rng:      rng,
		logger:   logger,

		zoom:      1,
		needSpawn: true,
	}
	w, h := g.mapSize()
	g.pos = mgl64.Vec2{w / 2, h / 2}
	g.camCenter = g.pos

	if tileset == nil {
		logger.Println("no tileset loaded, drawing with the flat palette")
	}
	logger.Printf("world %dx%d tiles, %d chunks max, seeds %d / %d",
		cfg.Layout.WorldWidth, cfg.Layout.WorldHeight, s.MaxChunks(),
		cfg.World.ElevationSeed, cfg.World.MoistureSeed)
	return g, nil
}
