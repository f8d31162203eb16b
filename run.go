package rowan

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Scene to the ebiten.Game interface.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window per cfg and drives the scene until the window closes.
// Zero config fields fall back to DefaultConfig values; a ClearColor with
// zero alpha leaves the scene's own clear color untouched. ShowFPS spawns
// an FPSOverlay entity under the root.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		return fmt.Errorf("run: nil scene")
	}

	def := DefaultConfig()
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.TPS <= 0 {
		cfg.TPS = def.TPS
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Debug {
		SetDebugMode(true)
	}
	if cfg.ClearColor[3] > 0 {
		scene.SetClearColor(cfg.BackgroundColor())
	}
	if cfg.ShowFPS {
		overlay := NewEntity("fps-overlay")
		overlay.AddComponent(NewFPSOverlay(4, 4))
		scene.Root().AddChild(overlay)
	}

	if err := ebiten.RunGame(&game{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
