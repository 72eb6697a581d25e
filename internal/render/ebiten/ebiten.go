package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/isoscene/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct{}

// NewRenderer creates a new Ebiten-based render.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

// DrawText draws text on the destination image using the debug font.
// The debug font is always white, so the color is ignored.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color) {
	ebitenutil.DebugPrintAt(dst.(*EbitenImage).img, str, x, y)
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Deallocate()
	}
}

// DrawRect draws the srcRect region of src scaled into dstRect.
func (i *EbitenImage) DrawRect(src render.Image, srcRect, dstRect image.Rectangle) {
	srcImg := src.(*EbitenImage).img
	srcRect = srcRect.Add(srcImg.Bounds().Min).Intersect(srcImg.Bounds())
	if srcRect.Empty() || dstRect.Empty() {
		return
	}
	sub := srcImg.SubImage(srcRect).(*ebiten.Image)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM = blitGeoM(srcRect, dstRect)
	i.img.DrawImage(sub, opts)
}

// blitGeoM scales a srcRect-sized image to dstRect's size and moves it to
// dstRect's origin.
func blitGeoM(srcRect, dstRect image.Rectangle) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(
		float64(dstRect.Dx())/float64(srcRect.Dx()),
		float64(dstRect.Dy())/float64(srcRect.Dy()),
	)
	g.Translate(float64(dstRect.Min.X), float64(dstRect.Min.Y))
	return g
}

// EbitenInput implements the EventSource interface using Ebiten.
type EbitenInput struct {
	keys []ebiten.Key
}

// NewInput creates a new Ebiten-based event source.
func NewInput() render.EventSource {
	return &EbitenInput{}
}

// PollEvents returns keys pressed this tick, plus a quit event when the
// window is being closed. Keys pressed within the same tick come out in
// key-code order, not arrival order.
func (m *EbitenInput) PollEvents() []render.Event {
	var events []render.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, render.QuitEvent())
	}
	m.keys = inpututil.AppendJustPressedKeys(m.keys[:0])
	for _, k := range m.keys {
		if key := TranslateKey(k); key != render.KeyNone {
			events = append(events, render.KeyEvent(key))
		}
	}
	return events
}

// TranslateKey converts an ebiten.Key to a logical render.Key.
func TranslateKey(key ebiten.Key) render.Key {
	switch key {
	case ebiten.KeyArrowUp, ebiten.KeyW:
		return render.KeyUp
	case ebiten.KeyArrowDown, ebiten.KeyS:
		return render.KeyDown
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		return render.KeyLeft
	case ebiten.KeyArrowRight, ebiten.KeyD:
		return render.KeyRight
	case ebiten.KeyQ, ebiten.KeyEscape:
		return render.KeyQuit
	default:
		return render.KeyNone
	}
}

// EbitenResourceLoader implements the ResourceLoader interface using Ebiten.
type EbitenResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &EbitenResourceLoader{}
}

// LoadImage loads an image from the specified file path.
func (l *EbitenResourceLoader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &EbitenImage{img: img}, nil
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop with the provided game. Window close is routed
// through the game's input so it can shut down in order.
func (e *EbitenEngine) RunGame(game render.Game) error {
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(true)
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return translateErr(a.game.Update())
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}

// translateErr maps render.ErrTerminated onto ebiten's clean-exit sentinel.
func translateErr(err error) error {
	if errors.Is(err, render.ErrTerminated) {
		return ebiten.Termination
	}
	return err
}
