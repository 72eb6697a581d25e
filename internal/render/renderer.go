package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrTerminated is returned by Game.Update once the game wants the loop to
// stop. Engines treat it as a clean exit and never draw another frame.
var ErrTerminated = errors.New("render: game terminated")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// DrawText draws a single line of debug text at (x, y).
	DrawText(dst Image, text string, x, y int, clr color.Color)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// DrawRect blits the srcRect region of src into dstRect, scaling it to fit.
	DrawRect(src Image, srcRect, dstRect image.Rectangle)

	// Resource management
	Dispose()
}

// Key represents a logical input key. Backends map physical keys onto these.
type Key int

// Logical keys understood by the scene.
const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// EventKind distinguishes polled input events.
type EventKind int

const (
	// EventKey is a key-down of a logical key.
	EventKey EventKind = iota
	// EventQuit is a window-close (or terminal hangup) request.
	EventQuit
)

// Event is a single polled input event.
type Event struct {
	Kind EventKind
	Key  Key
}

// KeyEvent returns a key-down event for k.
func KeyEvent(k Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// QuitEvent returns a window-close event.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// EventSource yields input events. PollEvents never blocks and returns the
// events received since the previous call, oldest first.
type EventSource interface {
	PollEvents() []Event
}

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick. Returning
	// ErrTerminated ends the loop without error.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
