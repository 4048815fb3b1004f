package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type GameState int

const (
	StateIntro GameState = iota
	StateExploring
	StatePaused
)

// PauseAction is what the pause menu asked for on leaving.
type PauseAction int

const (
	PauseNone PauseAction = iota
	PauseResume
	PauseRegenerate
	PauseQuit
)

// Intro
type IntroScreen struct {
	timer           int
	titleY          float64
	pressStartBlink int
	fadeAlpha       float64
	seedLine        string
}

func NewIntroScreen(seedLine string) *IntroScreen {
	return &IntroScreen{
		titleY:    -100,
		fadeAlpha: 1.0,
		seedLine:  seedLine,
	}
}

func (is *IntroScreen) Update() GameState {
	is.timer++

	// Animate title dropping in
	targetY := float64(ScreenHeight) / 3
	is.titleY += (targetY - is.titleY) * 0.05

	if is.fadeAlpha > 0 {
		is.fadeAlpha -= 0.02
		if is.fadeAlpha < 0 {
			is.fadeAlpha = 0
		}
	}
	is.pressStartBlink++

	// Allow skip
	if is.timer > 30 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			return StateExploring
		}
	}
	return StateIntro
}

func (is *IntroScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{10, 20, 30, 255})

	// Drifting contour dots
	for i := 0; i < 50; i++ {
		x := float32((i*73 + is.timer/2) % ScreenWidth)
		y := float32((i*47 + is.timer/3) % ScreenHeight)
		shade := paletteCycle(i)
		shade.A = 160
		vector.DrawFilledRect(screen, x, y, 4, 4, shade, false)
	}

	face := basicfont.Face7x13
	drawScaledText(screen, "OVERWORLD", ScreenWidth/2, int(is.titleY), 4, face, color.RGBA{120, 220, 140, 255})

	subtitle := "Procedural terrain, streamed in chunks"
	text.Draw(screen, subtitle, face, ScreenWidth/2-len(subtitle)*7/2, int(is.titleY)+50, color.RGBA{150, 180, 200, 255})
	text.Draw(screen, is.seedLine, face, ScreenWidth/2-len(is.seedLine)*7/2, int(is.titleY)+75, color.RGBA{110, 130, 150, 255})

	if is.timer > 60 && (is.pressStartBlink/30)%2 == 0 {
		prompt := "Press ENTER to explore"
		text.Draw(screen, prompt, face, ScreenWidth/2-len(prompt)*7/2, ScreenHeight*2/3, color.White)
	}

	credits := "Made with Ebitengine"
	text.Draw(screen, credits, face, ScreenWidth/2-len(credits)*7/2, ScreenHeight-30, color.RGBA{100, 100, 100, 255})

	if is.fadeAlpha > 0 {
		vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, color.RGBA{0, 0, 0, uint8(is.fadeAlpha * 255)}, false)
	}
}

// Pause menu
type PauseScreen struct {
	selectedOption int
	options        []string
}

func NewPauseScreen() *PauseScreen {
	return &PauseScreen{
		options: []string{"Resume", "Regenerate World", "Quit"},
	}
}

func (ps *PauseScreen) Update() PauseAction {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return PauseResume
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		ps.selectedOption--
		if ps.selectedOption < 0 {
			ps.selectedOption = len(ps.options) - 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		ps.selectedOption++
		if ps.selectedOption >= len(ps.options) {
			ps.selectedOption = 0
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		switch ps.selectedOption {
		case 0:
			return PauseResume
		case 1:
			return PauseRegenerate
		case 2:
			return PauseQuit
		}
	}
	return PauseNone
}

func (ps *PauseScreen) Draw(screen *ebiten.Image, gameScreen *ebiten.Image) {
	// Dimmed world
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.Scale(0.3, 0.3, 0.3, 1)
	screen.DrawImage(gameScreen, op)

	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, color.RGBA{0, 0, 0, 150}, false)

	face := basicfont.Face7x13
	drawScaledText(screen, "PAUSED", ScreenWidth/2, ScreenHeight/3, 2, face, color.White)

	startY := ScreenHeight / 2
	for i, option := range ps.options {
		y := startY + i*40
		optionWidth := len(option) * 7
		x := ScreenWidth/2 - optionWidth/2

		if i == ps.selectedOption {
			vector.DrawFilledRect(screen, float32(x-10), float32(y-15), float32(optionWidth+20), 25, color.RGBA{40, 100, 60, 200}, false)
			text.Draw(screen, ">", face, x-15, y, color.RGBA{255, 200, 100, 255})
			text.Draw(screen, option, face, x, y, color.White)
		} else {
			text.Draw(screen, option, face, x, y, color.RGBA{150, 150, 150, 255})
		}
	}
}

// Draw scaled text
func drawScaledText(screen *ebiten.Image, s string, cx, y int, scale float64, face font.Face, clr color.Color) {
	if scale <= 0 {
		return
	}

	charWidth := 7   // basicfont character width
	charHeight := 13 // basicfont character height
	textWidth := len(s) * charWidth

	textImg := ebiten.NewImage(textWidth+4, charHeight+4)
	text.Draw(textImg, s, face, 2, charHeight, clr)

	scaledWidth := float64(textWidth) * scale
	scaledHeight := float64(charHeight) * scale

	// Shadow
	shadowOp := &ebiten.DrawImageOptions{}
	shadowOp.GeoM.Scale(scale, scale)
	shadowOp.GeoM.Translate(float64(cx)-scaledWidth/2+3, float64(y)-scaledHeight+3)
	shadowOp.ColorScale.Scale(0, 0, 0, 0.5)
	shadowOp.Filter = ebiten.FilterLinear
	screen.DrawImage(textImg, shadowOp)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(cx)-scaledWidth/2, float64(y)-scaledHeight)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(textImg, op)
}
