package movie

import (
	"errors"
	"strings"
)

// ErrAlreadyLoaded is returned by Load on a movie that has content.
// A movie is loaded exactly once and never silently replaced.
var ErrAlreadyLoaded = errors.New("фильм уже загружен")

// DefaultFrameWidth and DefaultFrameHeight are the classic asciimation
// frame geometry (67x13 effective lines, see
// http://www.asciimation.co.nz/asciimation/ascii_faq.html).
const (
	DefaultFrameWidth  = 67
	DefaultFrameHeight = 13
)

// Movie is an ordered, immutable-after-load sequence of frames plus the
// screen geometry they are centered in. One instance is shared
// read-only across all connections.
type Movie struct {
	Frames []*Frame

	ScreenWidth  int
	ScreenHeight int
	FrameWidth   int
	FrameHeight  int
	LeftMargin   int
	TopMargin    int

	loaded bool
}

// New returns an empty movie with a single placeholder frame.
func New(width, height int) *Movie {
	m := &Movie{}
	placeholder := NewFrame(1)
	placeholder.Data = append(placeholder.Data, "No movie yet loaded.")
	m.Frames = append(m.Frames, placeholder)

	m.ScreenWidth = width
	m.ScreenHeight = height
	m.setFrameDimensions(DefaultFrameWidth, DefaultFrameHeight)
	return m
}

// setFrameDimensions fixes the frame geometry and recomputes the
// centering margins. The screen grows if the frame does not fit.
func (m *Movie) setFrameDimensions(width, height int) {
	m.FrameWidth = width
	if width > m.ScreenWidth {
		m.ScreenWidth = width
	}
	if height+TimeBarHeight > m.ScreenHeight {
		m.ScreenHeight = height + TimeBarHeight
	}
	m.FrameHeight = height

	m.LeftMargin = (m.ScreenWidth - m.FrameWidth) / 2
	m.TopMargin = (m.ScreenHeight - m.FrameHeight - TimeBarHeight) / 2
}

// FromFrames builds a loaded movie directly from prepared frames.
// The first frame establishes the frame geometry.
func FromFrames(frames []*Frame, screenWidth, screenHeight int) *Movie {
	m := New(screenWidth, screenHeight)
	m.Frames = frames
	if len(frames) > 0 {
		w, h := frames[0].Dimensions()
		m.setFrameDimensions(w, h)
	}
	m.loaded = true
	return m
}

// Loaded reports whether the movie already has content.
func (m *Movie) Loaded() bool { return m.loaded }

// Duration returns the total display time of the movie in ticks.
func (m *Movie) Duration() int {
	total := 0
	for _, f := range m.Frames {
		total += f.DisplayTime
	}
	return total
}

// Compress merges consecutive identical frames into one frame with the
// summed display time. Idempotent: compressing twice changes nothing.
func (m *Movie) Compress() {
	var out []*Frame
	var current *Frame
	for _, f := range m.Frames {
		if current != nil && f.Equal(current) {
			current.DisplayTime += f.DisplayTime
			continue
		}
		current = f
		out = append(out, current)
	}
	m.Frames = out
}

// Concat appends the frames of other to this movie. The identity of the
// receiver is preserved; geometry grows to fit the larger frames and
// margins are recomputed.
func (m *Movie) Concat(other *Movie) {
	m.Frames = append(m.Frames, other.Frames...)

	w, h := m.FrameWidth, m.FrameHeight
	if other.FrameWidth > w {
		w = other.FrameWidth
	}
	if other.FrameHeight > h {
		h = other.FrameHeight
	}
	m.setFrameDimensions(w, h)
}

// fixLine normalizes a raw content line: trailing whitespace dropped,
// then padded out to the frame width so stale characters from the
// previous frame are overwritten.
func (m *Movie) fixLine(line string) string {
	line = strings.TrimRight(line, " \t\r\n")
	if pad := m.FrameWidth - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}
