package game

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"chosenoffset.com/isoscene/internal/scene"
)

// Glide eases the drawn sprite between screen points so a move reads as a
// short slide instead of a jump. The grid position itself changes at once.
type Glide struct {
	duration float32 // seconds; 0 snaps

	tweenX, tweenY *gween.Tween
	curX, curY     float32
	target         scene.ScreenPoint
}

// NewGlide starts at p, idle.
func NewGlide(p scene.ScreenPoint, seconds float64) *Glide {
	return &Glide{
		duration: float32(seconds),
		curX:     float32(p.X),
		curY:     float32(p.Y),
		target:   p,
	}
}

// MoveTo retargets the glide from wherever the sprite is drawn now.
func (g *Glide) MoveTo(p scene.ScreenPoint) {
	g.target = p
	if g.duration <= 0 {
		g.snap()
		return
	}
	g.tweenX = gween.New(g.curX, float32(p.X), g.duration, ease.OutQuad)
	g.tweenY = gween.New(g.curY, float32(p.Y), g.duration, ease.OutQuad)
}

// Update advances the slide by dt.
func (g *Glide) Update(dt time.Duration) {
	if g.tweenX == nil || dt <= 0 {
		return
	}
	s := float32(dt.Seconds())
	x, doneX := g.tweenX.Update(s)
	y, doneY := g.tweenY.Update(s)
	g.curX, g.curY = x, y
	if doneX && doneY {
		g.snap()
	}
}

// Moving reports whether a slide is in progress.
func (g *Glide) Moving() bool {
	return g.tweenX != nil
}

// Position returns the pixel the sprite should be drawn at.
func (g *Glide) Position() scene.ScreenPoint {
	return scene.ScreenPoint{
		X: int(math.Round(float64(g.curX))),
		Y: int(math.Round(float64(g.curY))),
	}
}

func (g *Glide) snap() {
	g.tweenX, g.tweenY = nil, nil
	g.curX, g.curY = float32(g.target.X), float32(g.target.Y)
}
