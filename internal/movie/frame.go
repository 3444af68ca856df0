package movie

// TicksPerSecond is the canonical frame clock: display times are
// expressed in ticks of 1/15 second.
const TicksPerSecond = 15

// Frame is a single timed screen image: a block of text lines plus the
// number of ticks it stays on screen.
type Frame struct {
	DisplayTime int // ticks
	Data        []string
}

// NewFrame returns an empty frame shown for the given number of ticks.
func NewFrame(displayTime int) *Frame {
	return &Frame{DisplayTime: displayTime}
}

// Dimensions returns the rendered width and height of the frame.
// Inline ANSI sequences do not count towards the width.
func (f *Frame) Dimensions() (width, height int) {
	height = len(f.Data)
	for _, line := range f.Data {
		if w := DisplayWidth(line); w > width {
			width = w
		}
	}
	return width, height
}

// Seconds converts the display time to wall-clock seconds.
func (f *Frame) Seconds() float64 {
	return float64(f.DisplayTime) / TicksPerSecond
}

// Equal reports whether both frames show the same lines. Display time
// is deliberately ignored: equal neighbours are merged by compression.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || len(f.Data) != len(other.Data) {
		return false
	}
	for i := range f.Data {
		if f.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// SetBackground paints every line of the frame on the given style.
func (f *Frame) SetBackground() {
	for i, line := range f.Data {
		f.Data[i] = backgroundStyle.Render(line)
	}
}
