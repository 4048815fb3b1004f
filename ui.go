package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"overworld/internal/biome"
	"overworld/internal/config"
	"overworld/internal/stream"
)

// Pool sizes
const MaxNotifications = 8

// UI HUD
type UI struct {
	// Biome display
	currentBiome     biome.TileKind
	biomeKnown       bool
	biomeChangeTimer int

	notifications     [MaxNotifications]Notification
	activeNotifyCount int
}

type Notification struct {
	Text   string
	Timer  int
	Active bool // Pool
}

func NewUI() *UI {
	return &UI{}
}

// Update tracks the tile under the viewpoint; ok is false while no chunk
// covers it.
func (ui *UI) Update(k biome.TileKind, ok bool) {
	if ok && (!ui.biomeKnown || k != ui.currentBiome) {
		ui.currentBiome = k
		ui.biomeKnown = true
		ui.biomeChangeTimer = 180 // 3 seconds
	}
	if ui.biomeChangeTimer > 0 {
		ui.biomeChangeTimer--
	}

	// In-place, no allocations
	for i := 0; i < ui.activeNotifyCount; i++ {
		n := &ui.notifications[i]
		if !n.Active {
			continue
		}
		n.Timer--
		if n.Timer <= 0 {
			n.Active = false
		}
	}
}

func (ui *UI) AddNotification(notificationText string) {
	n := Notification{Text: notificationText, Timer: 180, Active: true}
	if ui.activeNotifyCount < MaxNotifications {
		ui.notifications[ui.activeNotifyCount] = n
		ui.activeNotifyCount++
		return
	}
	// Overwrite oldest
	copy(ui.notifications[:], ui.notifications[1:])
	ui.notifications[MaxNotifications-1] = n
}

func (ui *UI) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13

	if ui.biomeChangeTimer > 0 {
		ui.drawBiomeIndicator(screen, face)
	}
	ui.drawNotifications(screen, face)
	ui.drawControlsHint(screen, face)
}

func (ui *UI) drawBiomeIndicator(screen *ebiten.Image, face font.Face) {
	// Fade in/out
	alpha := 255
	if ui.biomeChangeTimer > 150 {
		alpha = int((180 - float64(ui.biomeChangeTimer)) / 30 * 255)
	} else if ui.biomeChangeTimer < 30 {
		alpha = int(float64(ui.biomeChangeTimer) / 30 * 255)
	}
	alpha = max(0, min(alpha, 255))

	biomeText := "~ " + biomeLabel(ui.currentBiome) + " ~"
	textWidth := len(biomeText) * 7
	x := ScreenWidth/2 - textWidth/2
	y := 80

	vector.DrawFilledRect(screen, float32(x-20), float32(y-15), float32(textWidth+40), 25, color.RGBA{0, 0, 0, uint8(alpha / 2)}, false)

	biomeColor := lighten(tilePalette[ui.currentBiome])
	biomeColor.A = uint8(alpha)
	text.Draw(screen, biomeText, face, x, y, biomeColor)
}

func (ui *UI) drawNotifications(screen *ebiten.Image, face font.Face) {
	startY := ScreenHeight - 100
	drawnCount := 0
	for i := ui.activeNotifyCount - 1; i >= 0; i-- {
		n := &ui.notifications[i]
		if !n.Active {
			continue
		}

		y := startY - drawnCount*25
		drawnCount++

		alpha := 255
		if n.Timer < 30 {
			alpha = int(float64(n.Timer) / 30 * 255)
		}

		x := ScreenWidth/2 - len(n.Text)*7/2
		text.Draw(screen, n.Text, face, x, y, color.RGBA{255, 255, 200, uint8(alpha)})
	}
}

func (ui *UI) drawControlsHint(screen *ebiten.Image, face font.Face) {
	hints := "WASD: Move | R: Regenerate | Tab: Free Camera | Z/X: Zoom | F1: Debug | F2: Config | ESC: Pause"
	x := ScreenWidth/2 - len(hints)*7/2
	text.Draw(screen, hints, face, x, ScreenHeight-20, color.RGBA{100, 100, 100, 150})
}

// drawConfigPanel lists the active world and streaming settings.
func drawConfigPanel(screen *ebiten.Image, cfg config.Config, stats stream.Stats) {
	face := basicfont.Face7x13
	w := cfg.World
	l := cfg.Layout
	lines := []string{
		"WORLD",
		fmt.Sprintf("  elevation seed  %d", w.ElevationSeed),
		fmt.Sprintf("  moisture seed   %d", w.MoistureSeed),
		fmt.Sprintf("  frequency       %.3f", w.Frequency),
		fmt.Sprintf("  octaves         %d", w.Octaves),
		fmt.Sprintf("  lacunarity      %.3f", w.Lacunarity),
		fmt.Sprintf("  persistence     %.3f", w.Persistence),
		fmt.Sprintf("  amplitude       %.3f", w.Amplitude),
		fmt.Sprintf("  pow factor      %.3f", w.PowFactor),
		fmt.Sprintf("  warp            %.3f / %.3f", w.WarpAmplitude, w.MoistureWarp),
		"LAYOUT",
		fmt.Sprintf("  world           %dx%d tiles", l.WorldWidth, l.WorldHeight),
		fmt.Sprintf("  chunk           %dx%d tiles", l.ChunkWidth, l.ChunkHeight),
		fmt.Sprintf("  chunks          %dx%d (%d)", l.ChunksX(), l.ChunksY(), l.MaxChunks()),
		"STREAMING",
		fmt.Sprintf("  spawn radius    %d", cfg.Streaming.SpawnRadius),
		fmt.Sprintf("  despawn         %.1f chunks", cfg.Streaming.DespawnDistance),
		fmt.Sprintf("  budget          %d", cfg.ChunkBudget()),
		fmt.Sprintf("  spawned/evicted %d/%d", stats.Spawned, stats.Evicted),
		fmt.Sprintf("  resets          %d", stats.Resets),
	}

	x, y := ScreenWidth-300, 20
	h := len(lines)*16 + 16
	vector.DrawFilledRect(screen, float32(x-10), float32(y-4), 290, float32(h), color.RGBA{0, 0, 0, 190}, false)
	vector.StrokeRect(screen, float32(x-10), float32(y-4), 290, float32(h), 1, color.RGBA{100, 100, 100, 200}, false)
	for i, line := range lines {
		clr := color.RGBA{220, 220, 220, 255}
		if !strings.HasPrefix(line, " ") {
			clr = color.RGBA{120, 220, 140, 255}
		}
		text.Draw(screen, line, face, x, y+14+i*16, clr)
	}

	// Legend
	ly := y + h + 10
	for i, k := range biome.Kinds() {
		if k == biome.None {
			continue
		}
		row := ly + (i-1)*16
		vector.DrawFilledRect(screen, float32(x), float32(row), 12, 12, tilePalette[k], false)
		text.Draw(screen, biomeLabel(k), face, x+20, row+11, color.RGBA{200, 200, 200, 255})
	}
}

// biomeLabel turns a kind name like "deciduous_forest" into "Deciduous Forest".
func biomeLabel(k biome.TileKind) string {
	words := strings.Split(k.String(), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func lighten(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(c.R) + 255) / 2),
		G: uint8((int(c.G) + 255) / 2),
		B: uint8((int(c.B) + 255) / 2),
		A: c.A,
	}
}

// paletteCycle walks the land and water colors.
func paletteCycle(i int) color.RGBA {
	kinds := biome.Kinds()
	return tilePalette[kinds[1+i%(len(kinds)-1)]]
}
