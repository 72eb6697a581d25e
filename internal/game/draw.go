package game

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/isoscene/internal/render"
	"chosenoffset.com/isoscene/internal/scene"
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(g.Config.ClearColor.Color())

	frame := scene.BuildFrame(g.Config, g.State)
	if sprite := frame.Sprite(); sprite != nil {
		p := g.glide.Position()
		sprite.Dst = sprite.Dst.Sub(sprite.Dst.Min).Add(image.Pt(p.X, p.Y))
	}

	for _, cmd := range frame.Cmds {
		screen.DrawRect(g.Assets.Image(cmd.Asset), cmd.Src, cmd.Dst)
	}

	g.drawHUD(screen)
	g.FrameCount++
}

func (g *Game) drawHUD(screen render.Image) {
	if !g.ShowHUD || g.Renderer == nil {
		return
	}
	text := fmt.Sprintf("grid %d,%d  scroll %d", g.State.Pos.X, g.State.Pos.Y, g.State.Scroll.Phase())
	g.Renderer.DrawText(screen, text, 8, 8, color.White)
}
