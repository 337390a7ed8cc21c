package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/chart"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/layout"
)

// FileConfig is the on-disk configuration surface: one TOML file overriding
// the canvas geometry and the layout ladders.
//
//	[canvas]
//	width = 1280
//	height = 720
//
//	[tiles]
//	max_tiles = 6
//
//	[text]
//	columns = 2
//
//	[chart]
//	kind = "line"
type FileConfig struct {
	Canvas canvas.Spec        `toml:"canvas"`
	Tiles  layout.TileOptions `toml:"tiles"`
	Text   layout.TextOptions `toml:"text"`
	Chart  chart.Options      `toml:"chart"`
}

// DefaultFileConfig returns the compiled-in configuration.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Canvas: canvas.DefaultSpec(),
		Tiles:  layout.DefaultTileOptions(),
		Text:   layout.DefaultTextOptions(),
		Chart:  chart.DefaultOptions(),
	}
}

// LoadConfig reads a TOML file over the defaults, so a config file only
// needs the values it changes. The canvas geometry is validated after
// merging.
func LoadConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()

	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %q not readable", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config file %q", path)
	}
	if err := cfg.Canvas.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Apply copies the configuration into pipeline options.
func (c FileConfig) Apply(opts *Options) {
	spec, tiles, text, chartOpts := c.Canvas, c.Tiles, c.Text, c.Chart
	opts.Canvas = &spec
	opts.Tiles = &tiles
	opts.Text = &text
	opts.Chart = &chartOpts
}
