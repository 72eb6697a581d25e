package scene

import (
	"time"

	"chosenoffset.com/isoscene/internal/render"
)

// State is everything the frame loop mutates.
type State struct {
	Pos     GridPos
	Scroll  Scroll
	Running bool

	// Steps and Bumps count accepted and dropped moves since start.
	Steps int
	Bumps int
}

// NewState returns a running state with the sprite on cell (0,0).
func NewState() State {
	return State{Running: true}
}

// Update advances one tick: the scroll phase moves by dt and the polled
// events are applied in order. Nothing is applied once the state has stopped.
func Update(cfg Config, st State, dt time.Duration, events []render.Event) State {
	if !st.Running {
		return st
	}
	st.Scroll = st.Scroll.Advance(cfg.ScrollSpeed, cfg.BackgroundTile, dt)

	for _, ev := range events {
		if ev.Kind == render.EventQuit || ev.Key == render.KeyQuit {
			st.Running = false
			return st
		}
		dx, dy, ok := keyDelta(ev.Key)
		if !ok {
			continue
		}
		next := GridPos{X: st.Pos.X + dx, Y: st.Pos.Y + dy}
		if !cfg.Contains(next) {
			st.Bumps++
			continue
		}
		st.Pos = next
		st.Steps++
	}
	return st
}

func keyDelta(k render.Key) (dx, dy int, ok bool) {
	switch k {
	case render.KeyRight:
		return 1, 0, true
	case render.KeyLeft:
		return -1, 0, true
	case render.KeyDown:
		return 0, 1, true
	case render.KeyUp:
		return 0, -1, true
	default:
		return 0, 0, false
	}
}
