package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/isoscene/internal/assets"
	"chosenoffset.com/isoscene/internal/game"
	"chosenoffset.com/isoscene/internal/render"
	ebitenrender "chosenoffset.com/isoscene/internal/render/ebiten"
	"chosenoffset.com/isoscene/internal/render/terminal"
	"chosenoffset.com/isoscene/internal/scene"
	"chosenoffset.com/isoscene/internal/sfx"
)

type backend struct {
	renderer render.Renderer
	input    render.EventSource
	loader   render.ResourceLoader
	engine   render.Engine
	close    func()
}

func main() {
	configPath := flag.String("config", "scene.json", "scene config file (defaults apply when missing)")
	assetDir := flag.String("assets", "", "directory holding the scene PNGs")
	backendName := flag.String("backend", "ebiten", "render backend: ebiten or terminal")
	mute := flag.Bool("mute", false, "disable step and bump sounds")
	hud := flag.Bool("hud", false, "show grid position and scroll phase")
	flag.Parse()

	if err := run(*configPath, *assetDir, *backendName, *mute, *hud); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, assetDir, backendName string, mute, hud bool) error {
	cfg, err := scene.LoadConfig(configPath)
	if err != nil {
		return err
	}

	b, err := openBackend(backendName)
	if err != nil {
		return err
	}
	defer b.close()

	var sounds sfx.Sounds = sfx.Silent{}
	if !mute {
		player := sfx.NewPlayer(0.3)
		if err := player.Initialize(); err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		} else {
			defer player.Close()
			sounds = player
		}
	}

	m := game.NewManager(game.Options{
		Config:   cfg,
		AssetDir: assets.ResolveDir(assetDir),
		ShowHUD:  hud,
	}, b.engine, b.renderer, b.input, b.loader)
	m.Sounds = sounds

	if err := m.Load(); err != nil {
		return err
	}
	defer m.Close()

	return m.Run()
}

func openBackend(name string) (*backend, error) {
	switch name {
	case "ebiten":
		return &backend{
			renderer: ebitenrender.NewRenderer(),
			input:    ebitenrender.NewInput(),
			loader:   ebitenrender.NewResourceLoader(),
			engine:   ebitenrender.NewEngine(),
			close:    func() {},
		}, nil
	case "terminal":
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		term := terminal.New(screen)
		if err := term.Start(); err != nil {
			return nil, fmt.Errorf("start terminal: %w", err)
		}
		return &backend{
			renderer: terminal.NewRenderer(),
			input:    term,
			loader:   terminal.NewResourceLoader(),
			engine:   term,
			close:    term.Fini,
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want ebiten or terminal)", name)
	}
}
