// Package terminal renders scenes into a character terminal through tcell.
// Frames are composed at full logical resolution and each terminal cell
// shows the pixel under its centre as a background colour.
package terminal

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"chosenoffset.com/isoscene/internal/render"
)

type label struct {
	x, y int
	text string
	clr  color.Color
}

// Picture is an in-memory RGBA image implementing render.Image.
type Picture struct {
	rgba   *image.RGBA
	labels []label
}

// NewPicture allocates a transparent picture.
func NewPicture(width, height int) *Picture {
	return &Picture{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies any image into a Picture.
func FromImage(src image.Image) *Picture {
	b := src.Bounds()
	p := NewPicture(b.Dx(), b.Dy())
	draw.Draw(p.rgba, p.rgba.Bounds(), src, b.Min, draw.Src)
	return p
}

// Bounds returns the bounds of the picture.
func (p *Picture) Bounds() image.Rectangle {
	return p.rgba.Bounds()
}

// Size returns the width and height of the picture.
func (p *Picture) Size() (width, height int) {
	return p.rgba.Bounds().Dx(), p.rgba.Bounds().Dy()
}

// Fill fills the picture and drops any text.
func (p *Picture) Fill(clr color.Color) {
	draw.Draw(p.rgba, p.rgba.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
	p.labels = p.labels[:0]
}

// Clear clears the picture to transparent.
func (p *Picture) Clear() {
	p.Fill(color.Transparent)
}

// DrawRect blends the srcRect region of src, scaled nearest-neighbour, into dstRect.
func (p *Picture) DrawRect(src render.Image, srcRect, dstRect image.Rectangle) {
	sp, ok := src.(*Picture)
	if !ok {
		return
	}
	xdraw.NearestNeighbor.Scale(p.rgba, dstRect, sp.rgba, srcRect, xdraw.Over, nil)
}

// Dispose drops the pixel buffer.
func (p *Picture) Dispose() {
	p.rgba = image.NewRGBA(image.Rectangle{})
	p.labels = nil
}

// At returns the colour at logical pixel (x, y).
func (p *Picture) At(x, y int) color.RGBA {
	return p.rgba.RGBAAt(x, y)
}

func (p *Picture) resize(width, height int) {
	if p.rgba.Bounds().Dx() != width || p.rgba.Bounds().Dy() != height {
		p.rgba = image.NewRGBA(image.Rect(0, 0, width, height))
	}
}

// TerminalRenderer implements render.Renderer by queueing text for the next flush.
type TerminalRenderer struct{}

// NewRenderer creates a terminal renderer.
func NewRenderer() render.Renderer {
	return &TerminalRenderer{}
}

// DrawText places text at logical pixel (x, y); it is written over the cells on flush.
func (r *TerminalRenderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	p, ok := dst.(*Picture)
	if !ok {
		return
	}
	p.labels = append(p.labels, label{x: x, y: y, text: text, clr: clr})
}

// ResourceLoader decodes images from disk into Pictures.
type ResourceLoader struct{}

// NewResourceLoader creates a terminal resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &ResourceLoader{}
}

// LoadImage loads and decodes the image at path.
func (l *ResourceLoader) LoadImage(path string) (render.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img), nil
}
