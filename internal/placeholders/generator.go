package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// TileSize is the standard size for placeholder tiles
const TileSize = 32

// ColorPalette defines colors for the placeholder blocks and backdrop
var ColorPalette = struct {
	// Blocks (top face colour; sides are shaded from it)
	Green  color.RGBA
	Purple color.RGBA
	Grey   color.RGBA

	// Backdrop
	Sky     color.RGBA
	SkyDots color.RGBA
}{
	Green:  color.RGBA{90, 200, 90, 255},
	Purple: color.RGBA{160, 90, 200, 255},
	Grey:   color.RGBA{170, 170, 175, 255},

	Sky:     color.RGBA{3, 182, 252, 255},
	SkyDots: color.RGBA{120, 215, 255, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// diamondEdge is the lower edge y of a TileSize-wide diamond centred at cy.
func diamondEdge(x, cy int) float64 {
	half := float64(TileSize) / 2
	dx := float64(x) + 0.5 - half
	if dx < 0 {
		dx = -dx
	}
	return float64(cy) + half/2*(1-dx/half)
}

// CreateCube draws an isometric block whose top face is a TileSize x
// TileSize/2 diamond, with the left and right faces shaded darker.
// Everything outside the block stays transparent.
func CreateCube(top color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	left := Darken(top, 0.75)
	right := Darken(top, 0.55)
	topCY := TileSize / 4
	bottomCY := 3 * TileSize / 4
	half := float64(TileSize) / 2

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			dx := fx - half
			if dx < 0 {
				dx = -dx
			}
			dy := fy - float64(topCY)
			if dy < 0 {
				dy = -dy
			}
			switch {
			case dx/half+dy/(half/2) <= 1:
				img.SetRGBA(x, y, top)
			case fy > diamondEdge(x, topCY) && fy <= diamondEdge(x, bottomCY):
				if fx < half {
					img.SetRGBA(x, y, left)
				} else {
					img.SetRGBA(x, y, right)
				}
			}
		}
	}

	return img
}

// CreateBackdrop creates the repeating background tile: sky with two 2x2
// dots on the diagonal.
func CreateBackdrop() *image.RGBA {
	img := CreateSolidTile(ColorPalette.Sky)

	quarter := TileSize / 4
	threeQuarter := 3 * TileSize / 4
	dots := []image.Point{{quarter, quarter}, {threeQuarter, threeQuarter}}
	for _, p := range dots {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				img.SetRGBA(p.X+dx, p.Y+dy, ColorPalette.SkyDots)
			}
		}
	}
	return img
}

// Generate builds every placeholder keyed by file name.
func Generate() map[string]*image.RGBA {
	return map[string]*image.RGBA{
		"background.png": CreateBackdrop(),
		"greencube.png":  CreateCube(ColorPalette.Green),
		"purplecube.png": CreateCube(ColorPalette.Purple),
		"greycube.png":   CreateCube(Lighten(ColorPalette.Grey, 0.2)),
	}
}

// GenerateAndSave writes every placeholder into dir, creating it if needed.
func GenerateAndSave(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for name, img := range Generate() {
		path := filepath.Join(dir, name)
		if err := SavePNG(img, path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("  -> %s\n", path)
	}
	return nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
