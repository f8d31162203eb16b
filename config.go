package rowan

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// RunConfig controls window setup and the loop started by Run. Zero fields
// fall back to DefaultConfig values.
type RunConfig struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	TPS        int        `toml:"tps"`
	Fullscreen bool       `toml:"fullscreen"`
	Resizable  bool       `toml:"resizable"`
	ShowFPS    bool       `toml:"show_fps"`
	Debug      bool       `toml:"debug"`
	ClearColor [4]float64 `toml:"clear_color"` // r, g, b, a in 0..1
}

// DefaultConfig returns the baseline window configuration.
func DefaultConfig() RunConfig {
	return RunConfig{
		Title:      "rowan",
		Width:      800,
		Height:     600,
		TPS:        60,
		ClearColor: [4]float64{0.1, 0.1, 0.12, 1},
	}
}

// BackgroundColor returns ClearColor as a Color.
func (c RunConfig) BackgroundColor() Color {
	return Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig. Unknown
// keys log a warning rather than failing, so configs survive engine
// upgrades. A missing or unparseable file is returned as an error.
func LoadConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return RunConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		logger.Warn("unknown config key",
			zap.String("key", key.String()),
			zap.String("file", path))
	}
	return cfg, nil
}
