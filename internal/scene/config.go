// Package scene holds the isometric scene's pure logic: projection, scroll
// phase, input handling and the per-frame draw list. Nothing in here talks to
// a window, so all of it runs headless in tests.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
)

// Config holds every tunable of the scene.
type Config struct {
	// Window
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
	Title        string `json:"title"`
	ClearColor   RGB    `json:"clear_color"`

	// Grid
	GridSize   int `json:"grid_size"`   // Cells per side
	TileWidth  int `json:"tile_width"`  // Diamond width
	TileHeight int `json:"tile_height"` // Diamond height
	OriginX    int `json:"origin_x"`    // Screen X of cell (0,0)
	OriginY    int `json:"origin_y"`    // Screen Y of cell (0,0)

	// Blits
	SourceSize  int `json:"source_size"`  // Side of the sampled source square
	BlockHeight int `json:"block_height"` // Drawn height of tile and sprite blocks
	SpriteLift  int `json:"sprite_lift"`  // Pixels the sprite is raised above its cell

	// Background
	BackgroundTile int `json:"background_tile"` // Side of one background tile; also the scroll period
	ScrollSpeed    int `json:"scroll_speed"`    // Pixels per second

	// Presentation extras
	GlideSeconds float64 `json:"glide_seconds"` // Sprite slide duration, 0 snaps
}

// RGB is an opaque colour that reads from JSON as [r, g, b].
type RGB [3]uint8

// Color converts to a color.Color.
func (c RGB) Color() color.Color {
	return color.RGBA{c[0], c[1], c[2], 255}
}

// DefaultConfig returns the stock 800x600 scene with a 6x6 grid.
func DefaultConfig() Config {
	const (
		width     = 800
		height    = 600
		tileWidth = 96
	)
	return Config{
		ScreenWidth:    width,
		ScreenHeight:   height,
		Title:          "iso",
		ClearColor:     RGB{3, 182, 252},
		GridSize:       6,
		TileWidth:      tileWidth,
		TileHeight:     48,
		OriginX:        width/2 - tileWidth/2,
		OriginY:        120,
		SourceSize:     32,
		BlockHeight:    96,
		SpriteLift:     48,
		BackgroundTile: 96,
		ScrollSpeed:    100,
		GlideSeconds:   0.12,
	}
}

// LoadConfig loads a scene config from a JSON file layered over the
// defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read scene config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid scene config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects sizes the scene cannot draw with.
func (c Config) Validate() error {
	var errs []error
	positive := []struct {
		name string
		v    int
	}{
		{"screen_width", c.ScreenWidth},
		{"screen_height", c.ScreenHeight},
		{"grid_size", c.GridSize},
		{"tile_width", c.TileWidth},
		{"tile_height", c.TileHeight},
		{"source_size", c.SourceSize},
		{"block_height", c.BlockHeight},
		{"background_tile", c.BackgroundTile},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.v))
		}
	}
	if c.ScrollSpeed < 0 {
		errs = append(errs, fmt.Errorf("scroll_speed must not be negative, got %d", c.ScrollSpeed))
	}
	if c.GlideSeconds < 0 {
		errs = append(errs, fmt.Errorf("glide_seconds must not be negative, got %g", c.GlideSeconds))
	}
	return errors.Join(errs...)
}

// MaxCell is the largest valid grid coordinate on either axis.
func (c Config) MaxCell() int {
	return c.GridSize - 1
}
