package game

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chosenoffset.com/isoscene/internal/assets"
	"chosenoffset.com/isoscene/internal/render"
	"chosenoffset.com/isoscene/internal/scene"
)

// --- fakes ---

type blit struct {
	src     render.Image
	srcRect image.Rectangle
	dstRect image.Rectangle
}

type fakeImage struct {
	name     string
	fills    int
	blits    []blit
	disposed bool
}

func (f *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 32, 32) }
func (f *fakeImage) Size() (int, int) { return 32, 32 }
func (f *fakeImage) Fill(color.Color) { f.fills++ }
func (f *fakeImage) Clear() {}
func (f *fakeImage) Dispose() { f.disposed = true }

func (f *fakeImage) DrawRect(src render.Image, srcRect, dstRect image.Rectangle) {
	f.blits = append(f.blits, blit{src: src, srcRect: srcRect, dstRect: dstRect})
}

type fakeImages map[scene.AssetID]*fakeImage

func newFakeImages() fakeImages {
	return fakeImages{
		scene.AssetBackground: {name: "background"},
		scene.AssetTileA:      {name: "green"},
		scene.AssetTileB:      {name: "purple"},
		scene.AssetSprite:     {name: "grey"},
	}
}

func (f fakeImages) Image(id scene.AssetID) render.Image { return f[id] }

type fakeInput struct {
	batches [][]render.Event
}

func (f *fakeInput) PollEvents() []render.Event {
	if len(f.batches) == 0 {
		return nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b
}

func (f *fakeInput) push(keys ...render.Key) {
	batch := make([]render.Event, len(keys))
	for i, k := range keys {
		batch[i] = render.KeyEvent(k)
	}
	f.batches = append(f.batches, batch)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeSounds struct {
	steps, bumps int
}

func (s *fakeSounds) PlayStep() { s.steps++ }
func (s *fakeSounds) PlayBump() { s.bumps++ }

type fakeRenderer struct {
	texts []string
}

func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	r.texts = append(r.texts, text)
}

func newTestGame(cfg scene.Config) (*Game, *fakeInput, *fakeClock, fakeImages) {
	input := &fakeInput{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	images := newFakeImages()
	g := New(cfg, &fakeRenderer{}, input, images)
	g.Clock = clock.Now
	return g, input, clock, images
}

func snapConfig() scene.Config {
	cfg := scene.DefaultConfig()
	cfg.GlideSeconds = 0
	return cfg
}

// --- tests ---

func TestMoveSequenceThenQuit(t *testing.T) {
	g, input, clock, _ := newTestGame(snapConfig())
	input.push(render.KeyRight)
	input.push(render.KeyRight)
	input.push(render.KeyDown)
	input.push(render.KeyQuit)

	screen := &fakeImage{name: "screen"}
	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update %d: unexpected error %v", i, err)
		}
		g.Draw(screen)
		clock.advance(16 * time.Millisecond)
	}
	if g.State.Pos != (scene.GridPos{X: 2, Y: 1}) {
		t.Fatalf("Expected (2,1), got %v", g.State.Pos)
	}

	err := g.Update()
	if !errors.Is(err, render.ErrTerminated) {
		t.Fatalf("Expected ErrTerminated, got %v", err)
	}
	if g.State.Running {
		t.Error("Expected state to be stopped")
	}
	if g.FrameCount != 3 {
		t.Errorf("Expected 3 frames drawn, got %d", g.FrameCount)
	}
}

func TestDrawOrder(t *testing.T) {
	cfg := snapConfig()
	g, _, _, images := newTestGame(cfg)
	screen := &fakeImage{name: "screen"}
	g.Draw(screen)

	if screen.fills != 1 {
		t.Errorf("Expected screen cleared once, got %d", screen.fills)
	}
	cols, rows := cfg.BackgroundDims()
	bg := cols * rows
	grid := cfg.GridSize * cfg.GridSize
	if len(screen.blits) != bg+grid+1 {
		t.Fatalf("Expected %d blits, got %d", bg+grid+1, len(screen.blits))
	}
	for i := 0; i < bg; i++ {
		if screen.blits[i].src != images[scene.AssetBackground] {
			t.Fatalf("Blit %d is not background", i)
		}
	}
	corners := []struct {
		gx, gy int
		want   *fakeImage
	}{
		{0, 0, images[scene.AssetTileA]},
		{5, 0, images[scene.AssetTileB]},
		{0, 5, images[scene.AssetTileB]},
		{5, 5, images[scene.AssetTileA]},
	}
	for _, c := range corners {
		b := screen.blits[bg+c.gy*cfg.GridSize+c.gx]
		if b.src != c.want {
			t.Errorf("Cell (%d,%d) drawn with %s, want %s", c.gx, c.gy, b.src.(*fakeImage).name, c.want.name)
		}
	}
	last := screen.blits[len(screen.blits)-1]
	if last.src != images[scene.AssetSprite] {
		t.Fatalf("Expected sprite last, got %s", last.src.(*fakeImage).name)
	}
	sp := cfg.SpritePoint(scene.GridPos{})
	if last.dstRect.Min != image.Pt(sp.X, sp.Y) {
		t.Errorf("Sprite at %v, want %v", last.dstRect.Min, sp)
	}
}

func TestUpdateUsesWallClockDelta(t *testing.T) {
	g, _, clock, _ := newTestGame(snapConfig())

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if p := g.State.Scroll.Phase(); p != 0 {
		t.Errorf("First tick should not scroll, got phase %d", p)
	}

	clock.advance(500 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if p := g.State.Scroll.Phase(); p != 50 {
		t.Errorf("Expected phase 50 after 0.5s, got %d", p)
	}

	// A clock step backwards is ignored.
	clock.advance(-time.Second)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if p := g.State.Scroll.Phase(); p != 50 {
		t.Errorf("Expected phase to hold at 50, got %d", p)
	}
}

func TestSoundsFollowMoves(t *testing.T) {
	g, input, _, _ := newTestGame(snapConfig())
	sounds := &fakeSounds{}
	g.Sounds = sounds

	input.push(render.KeyLeft)
	input.push(render.KeyRight, render.KeyDown)
	for i := 0; i < 2; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if sounds.bumps != 1 {
		t.Errorf("Expected 1 bump sound, got %d", sounds.bumps)
	}
	if sounds.steps != 1 {
		t.Errorf("Expected one step sound per tick with moves, got %d", sounds.steps)
	}
}

func TestSpriteGlidesToNewCell(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.GlideSeconds = 0.1
	g, input, clock, images := newTestGame(cfg)

	from := cfg.SpritePoint(scene.GridPos{})
	to := cfg.SpritePoint(scene.GridPos{X: 1})

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	input.push(render.KeyRight)
	clock.advance(10 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	clock.advance(40 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}

	screen := &fakeImage{}
	g.Draw(screen)
	mid := screen.blits[len(screen.blits)-1]
	if mid.src != images[scene.AssetSprite] {
		t.Fatal("Expected sprite last")
	}
	if mid.dstRect.Min.X <= from.X || mid.dstRect.Min.X >= to.X {
		t.Errorf("Mid-glide sprite x %d not between %d and %d", mid.dstRect.Min.X, from.X, to.X)
	}
	if mid.dstRect.Dx() != cfg.TileWidth || mid.dstRect.Dy() != cfg.BlockHeight {
		t.Errorf("Glide changed sprite size to %v", mid.dstRect.Size())
	}

	clock.advance(200 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	screen = &fakeImage{}
	g.Draw(screen)
	end := screen.blits[len(screen.blits)-1]
	if end.dstRect.Min != image.Pt(to.X, to.Y) {
		t.Errorf("Glide ended at %v, want %v", end.dstRect.Min, to)
	}
}

func TestGlideStartsFromOldCell(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.GlideSeconds = 0.1
	g, input, clock, _ := newTestGame(cfg)

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	input.push(render.KeyRight)
	clock.advance(90 * time.Millisecond)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}

	screen := &fakeImage{}
	g.Draw(screen)
	sprite := screen.blits[len(screen.blits)-1]
	from := cfg.SpritePoint(scene.GridPos{})
	if sprite.dstRect.Min != image.Pt(from.X, from.Y) {
		t.Errorf("Expected glide to start at %v on the move tick, got %v", from, sprite.dstRect.Min)
	}
}

func TestHUD(t *testing.T) {
	g, input, _, _ := newTestGame(snapConfig())
	r := &fakeRenderer{}
	g.Renderer = r

	g.Draw(&fakeImage{})
	if len(r.texts) != 0 {
		t.Errorf("Expected no HUD by default, got %v", r.texts)
	}

	g.ShowHUD = true
	input.push(render.KeyDown)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	g.Draw(&fakeImage{})
	if len(r.texts) != 1 || !strings.HasPrefix(r.texts[0], "grid 0,1") {
		t.Errorf("Expected HUD with grid 0,1, got %v", r.texts)
	}
}

func TestLayoutIsFixed(t *testing.T) {
	g, _, _, _ := newTestGame(snapConfig())
	w, h := g.Layout(1920, 1080)
	if w != 800 || h != 600 {
		t.Errorf("Expected 800x600, got %dx%d", w, h)
	}
}

// --- manager ---

type fakeLoader struct {
	failOn string
	images []*fakeImage
}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	if filepath.Base(path) == l.failOn {
		return nil, errors.New("no such file")
	}
	img := &fakeImage{name: filepath.Base(path)}
	l.images = append(l.images, img)
	return img, nil
}

type fakeEngine struct {
	title  string
	w, h   int
	frames int
}

func (e *fakeEngine) SetWindowSize(w, h int) { e.w, e.h = w, h }
func (e *fakeEngine) SetWindowTitle(s string) { e.title = s }
func (e *fakeEngine) SetWindowResizable(bool) {}

func (e *fakeEngine) RunGame(g render.Game) error {
	screen := &fakeImage{name: "screen"}
	for {
		if err := g.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}
		g.Draw(screen)
		e.frames++
	}
}

func TestManagerLifecycle(t *testing.T) {
	input := &fakeInput{}
	input.push(render.KeyRight)
	input.push(render.KeyRight)
	input.push(render.KeyDown)
	input.push(render.KeyQuit)

	loader := &fakeLoader{}
	engine := &fakeEngine{}
	m := NewManager(Options{Config: snapConfig(), AssetDir: "assets"}, engine, &fakeRenderer{}, input, loader)

	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if engine.title != "iso" || engine.w != 800 || engine.h != 600 {
		t.Errorf("Window set to %q %dx%d", engine.title, engine.w, engine.h)
	}
	if engine.frames != 3 {
		t.Errorf("Expected 3 frames before quit, got %d", engine.frames)
	}
	if m.Game.State.Pos != (scene.GridPos{X: 2, Y: 1}) {
		t.Errorf("Expected (2,1), got %v", m.Game.State.Pos)
	}

	m.Close()
	for _, img := range loader.images {
		if !img.disposed {
			t.Errorf("%s not released", img.name)
		}
	}
}

func TestManagerLoadFailure(t *testing.T) {
	loader := &fakeLoader{failOn: "greycube.png"}
	m := NewManager(Options{Config: snapConfig(), AssetDir: "assets"}, &fakeEngine{}, &fakeRenderer{}, &fakeInput{}, loader)

	err := m.Load()
	var loadErr *assets.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *assets.LoadError, got %v", err)
	}
	if len(loader.images) != 3 {
		t.Fatalf("Expected 3 images acquired before failure, got %d", len(loader.images))
	}
	for _, img := range loader.images {
		if !img.disposed {
			t.Errorf("%s not released after failure", img.name)
		}
	}
	if err := m.Run(); err == nil {
		t.Error("Expected Run to refuse without assets")
	}
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	cfg := snapConfig()
	cfg.GridSize = 0
	loader := &fakeLoader{}
	m := NewManager(Options{Config: cfg}, &fakeEngine{}, &fakeRenderer{}, &fakeInput{}, loader)
	if err := m.Load(); err == nil {
		t.Fatal("Expected invalid config error")
	}
	if len(loader.images) != 0 {
		t.Errorf("Expected no assets loaded, got %d", len(loader.images))
	}
}
