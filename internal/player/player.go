// Package player drives a loaded movie through time, rendering each
// composed frame to a sink and holding its exact display duration.
package player

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ivlev/ascii2telnet/internal/movie"
)

// RenderFunc receives one wire-ready screen buffer per frame. A
// returned error means the peer is gone and stops playback at once.
type RenderFunc func(screen []byte) error

// Player plays one movie for one connection. The movie itself is
// shared read-only; all mutable state lives here.
type Player struct {
	movie   *movie.Movie
	timebar *movie.TimeBar
	stopped atomic.Bool
}

// New builds a player with a progress bar sized to the movie's screen.
func New(m *movie.Movie) (*Player, error) {
	tb, err := movie.NewTimeBar(len(m.Frames), m.ScreenWidth)
	if err != nil {
		return nil, err
	}
	return &Player{movie: m, timebar: tb}, nil
}

// Stop aborts playback: no further renders or sleeps happen.
func (p *Player) Stop() {
	p.stopped.Store(true)
}

// Play renders every frame in order. Each frame's deadline is computed
// from a single start instant plus the cumulative tick count, and only
// the remaining delta is slept, so rounding never compounds into drift
// over a ~20 minute movie. The returned error is the sink's: the caller
// treats it as a normal disconnect, not a failure.
func (p *Player) Play(ctx context.Context, render RenderFunc) error {
	start := time.Now()
	elapsedTicks := 0

	for i, frame := range p.movie.Frames {
		if p.stopped.Load() || ctx.Err() != nil {
			return nil
		}

		if err := render(p.compose(i, frame)); err != nil {
			return err
		}

		elapsedTicks += frame.DisplayTime
		deadline := start.Add(time.Duration(elapsedTicks) * time.Second / movie.TicksPerSecond)
		if wait := time.Until(deadline); wait > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
		}
	}
	return nil
}
