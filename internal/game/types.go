package game

import (
	"chosenoffset.com/isoscene/internal/render"
	"chosenoffset.com/isoscene/internal/scene"
)

// Images resolves asset IDs to loaded images.
type Images interface {
	Image(id scene.AssetID) render.Image
}

// Options configures a Manager.
type Options struct {
	Config   scene.Config
	AssetDir string // Directory holding the four PNGs
	ShowHUD  bool
}
