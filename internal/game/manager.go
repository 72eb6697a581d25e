package game

import (
	"fmt"
	"log"

	"chosenoffset.com/isoscene/internal/assets"
	"chosenoffset.com/isoscene/internal/render"
	"chosenoffset.com/isoscene/internal/sfx"
)

// Manager runs the scene's lifecycle: load assets, run the loop until quit,
// release in reverse order.
type Manager struct {
	Options  Options
	Engine   render.Engine
	Renderer render.Renderer
	Input    render.EventSource
	Loader   render.ResourceLoader
	Sounds   sfx.Sounds

	Assets *assets.Set
	Game   *Game
}

// NewManager creates a new game manager.
func NewManager(opts Options, engine render.Engine, r render.Renderer, input render.EventSource, loader render.ResourceLoader) *Manager {
	return &Manager{
		Options:  opts,
		Engine:   engine,
		Renderer: r,
		Input:    input,
		Loader:   loader,
		Sounds:   sfx.Silent{},
	}
}

// Load acquires the assets and builds the game. Nothing is held on failure.
func (m *Manager) Load() error {
	if err := m.Options.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	set, err := assets.Load(m.Loader, m.Options.AssetDir)
	if err != nil {
		return err
	}
	m.Assets = set

	m.Game = New(m.Options.Config, m.Renderer, m.Input, set)
	m.Game.Sounds = m.Sounds
	m.Game.ShowHUD = m.Options.ShowHUD
	return nil
}

// Run opens the window and blocks until the game quits.
func (m *Manager) Run() error {
	if m.Game == nil {
		return fmt.Errorf("run: assets not loaded")
	}
	cfg := m.Options.Config
	m.Engine.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	m.Engine.SetWindowTitle(cfg.Title)
	m.Engine.SetWindowResizable(false)

	log.Println("Starting scene...")
	if err := m.Engine.RunGame(m.Game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Close releases everything Load acquired.
func (m *Manager) Close() {
	if m.Assets != nil {
		m.Assets.Release()
		m.Assets = nil
	}
	m.Game = nil
}
