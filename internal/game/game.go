package game

import (
	"log"
	"time"

	"chosenoffset.com/isoscene/internal/render"
	"chosenoffset.com/isoscene/internal/scene"
	"chosenoffset.com/isoscene/internal/sfx"
)

// Game holds the loop state and the collaborators it draws and polls through.
type Game struct {
	Config   scene.Config
	State    scene.State
	Renderer render.Renderer
	Input    render.EventSource
	Assets   Images
	Sounds   sfx.Sounds

	// ShowHUD draws the grid position and scroll phase in the corner.
	ShowHUD bool

	// Clock is the wall clock; tests replace it.
	Clock func() time.Time

	glide    *Glide
	lastTick time.Time

	// Debug
	FrameCount int
}

// New creates a game with the sprite on (0,0).
func New(cfg scene.Config, r render.Renderer, input render.EventSource, images Images) *Game {
	st := scene.NewState()
	return &Game{
		Config:   cfg,
		State:    st,
		Renderer: r,
		Input:    input,
		Assets:   images,
		Sounds:   sfx.Silent{},
		Clock:    time.Now,
		glide:    NewGlide(cfg.SpritePoint(st.Pos), cfg.GlideSeconds),
	}
}

// Update handles one tick: measure elapsed time, apply input, advance the
// scroll and sprite glide. It returns render.ErrTerminated once quit is seen.
func (g *Game) Update() error {
	now := g.Clock()
	var dt time.Duration
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick)
	}
	g.lastTick = now

	prev := g.State
	g.State = scene.Update(g.Config, g.State, dt, g.Input.PollEvents())

	if g.State.Steps > prev.Steps {
		g.Sounds.PlayStep()
	}
	if g.State.Bumps > prev.Bumps {
		g.Sounds.PlayBump()
	}
	// Advance the running slide before a move retargets it.
	g.glide.Update(dt)
	if g.State.Pos != prev.Pos {
		g.glide.MoveTo(g.Config.SpritePoint(g.State.Pos))
	}

	if !g.State.Running {
		log.Printf("Quit at grid %d,%d after %d frames", g.State.Pos.X, g.State.Pos.Y, g.FrameCount)
		return render.ErrTerminated
	}
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Config.ScreenWidth, g.Config.ScreenHeight
}
