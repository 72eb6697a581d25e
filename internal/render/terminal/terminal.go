package terminal

import (
	"errors"
	"image/color"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/isoscene/internal/render"
)

const eventBuffer = 64

// Terminal owns a tcell screen and acts as both the Engine and the
// EventSource for the terminal backend.
type Terminal struct {
	screen tcell.Screen

	// FrameRate caps how often RunGame ticks.
	FrameRate int

	width, height int // logical size requested by SetWindowSize
	title         string

	events chan tcell.Event
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once

	started bool
	logOut  io.Writer // restored by Fini

	canvas *Picture
}

// New wraps screen. Call Start before use and Fini when done.
func New(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen:    screen,
		FrameRate: 30,
		width:     800,
		height:    600,
		events:    make(chan tcell.Event, eventBuffer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		canvas:    NewPicture(800, 600),
	}
}

// Start initializes the screen and begins pumping its events. The standard
// logger is silenced until Fini so log lines do not overwrite the cells.
func (t *Terminal) Start() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.logOut = log.Writer()
	log.SetOutput(io.Discard)
	t.started = true
	go t.pump()
	return nil
}

// pump forwards tcell's blocking PollEvent into the buffered channel.
func (t *Terminal) pump() {
	defer close(t.doneCh)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.stopCh:
			return
		}
	}
}

// Fini stops the event pump and restores the terminal.
func (t *Terminal) Fini() {
	t.once.Do(func() {
		close(t.stopCh)
		t.screen.Fini()
		if t.started {
			<-t.doneCh
			log.SetOutput(t.logOut)
		}
	})
}

// PollEvents drains pending terminal events without blocking.
func (t *Terminal) PollEvents() []render.Event {
	var out []render.Event
	for {
		select {
		case ev := <-t.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if key := TranslateKey(ev); key != render.KeyNone {
					out = append(out, render.KeyEvent(key))
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		default:
			return out
		}
	}
}

// TranslateKey converts a tcell key event to a logical render.Key.
func TranslateKey(ev *tcell.EventKey) render.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp
	case tcell.KeyDown:
		return render.KeyDown
	case tcell.KeyLeft:
		return render.KeyLeft
	case tcell.KeyRight:
		return render.KeyRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.KeyQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return render.KeyUp
		case 's', 'S':
			return render.KeyDown
		case 'a', 'A':
			return render.KeyLeft
		case 'd', 'D':
			return render.KeyRight
		case 'q', 'Q':
			return render.KeyQuit
		}
	}
	return render.KeyNone
}

// SetWindowSize sets the logical frame size that gets sampled onto cells.
func (t *Terminal) SetWindowSize(width, height int) {
	t.width, t.height = width, height
}

// SetWindowTitle records the title; it is drawn on the top row.
func (t *Terminal) SetWindowTitle(title string) {
	t.title = title
}

// SetWindowResizable is a no-op; the terminal decides its own size.
func (t *Terminal) SetWindowResizable(bool) {}

// RunGame ticks game at FrameRate until Update returns an error.
// render.ErrTerminated ends the loop cleanly.
func (t *Terminal) RunGame(game render.Game) error {
	rate := t.FrameRate
	if rate <= 0 {
		rate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}

		cols, rows := t.screen.Size()
		w, h := game.Layout(t.width, t.height)
		t.canvas.resize(w, h)
		t.canvas.Clear()
		game.Draw(t.canvas)
		t.flush(t.canvas, cols, rows)
		t.screen.Show()

		<-ticker.C
	}
}

// flush samples the canvas at each cell centre and writes text labels on top.
func (t *Terminal) flush(p *Picture, cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	w, h := p.Size()
	for cy := 0; cy < rows; cy++ {
		py := (2*cy + 1) * h / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			px := (2*cx + 1) * w / (2 * cols)
			c := p.At(px, py)
			style := tcell.StyleDefault.Background(rgb(c))
			t.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}

	for _, l := range p.labels {
		cx := l.x * cols / max(w, 1)
		cy := l.y * rows / max(h, 1)
		t.writeText(cx, cy, l.text, l.clr)
	}
	if t.title != "" {
		t.writeText(0, 0, t.title, color.White)
	}
}

func (t *Terminal) writeText(cx, cy int, text string, clr color.Color) {
	cols, rows := t.screen.Size()
	if cy < 0 || cy >= rows {
		return
	}
	r, g, b, _ := clr.RGBA()
	fg := tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
	for i, ch := range []rune(text) {
		x := cx + i
		if x < 0 || x >= cols {
			continue
		}
		_, _, style, _ := t.screen.GetContent(x, cy)
		t.screen.SetContent(x, cy, ch, nil, style.Foreground(fg))
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
