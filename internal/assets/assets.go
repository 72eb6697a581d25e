// Package assets owns the scene's four image handles from load to release.
package assets

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"chosenoffset.com/isoscene/internal/render"
	"chosenoffset.com/isoscene/internal/scene"
)

// DirName is the asset directory name looked up next to the executable.
const DirName = "assets"

// Files maps each asset to its file name, in load order.
var Files = [scene.AssetCount]string{
	scene.AssetBackground: "background.png",
	scene.AssetTileA:      "greencube.png",
	scene.AssetTileB:      "purplecube.png",
	scene.AssetSprite:     "greycube.png",
}

// LoadError reports which asset failed to load.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load asset %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Set holds the loaded images indexed by scene.AssetID.
type Set struct {
	images [scene.AssetCount]render.Image
	loaded int
}

// Load reads every asset from dir. On failure the images already acquired
// are released and a *LoadError is returned.
func Load(loader render.ResourceLoader, dir string) (*Set, error) {
	s := &Set{}
	for id, name := range Files {
		path := filepath.Join(dir, name)
		img, err := loader.LoadImage(path)
		if err != nil {
			s.Release()
			return nil, &LoadError{Name: name, Path: path, Err: err}
		}
		s.images[id] = img
		s.loaded++
	}
	log.Printf("Loaded %d assets from %s", s.loaded, dir)
	return s, nil
}

// Image returns the handle for id.
func (s *Set) Image(id scene.AssetID) render.Image {
	return s.images[id]
}

// Release disposes the images in reverse load order. It is safe to call twice.
func (s *Set) Release() {
	for i := s.loaded - 1; i >= 0; i-- {
		if s.images[i] != nil {
			s.images[i].Dispose()
			s.images[i] = nil
		}
	}
	s.loaded = 0
}

// ResolveDir picks the asset directory: an explicit path wins, then the
// directory next to the executable, then ./assets.
func ResolveDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), DirName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return DirName
}
