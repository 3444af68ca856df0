package movie

import (
	"fmt"
	"math"
	"strings"
)

// TimeBarHeight is the number of screen rows the bar occupies.
const TimeBarHeight = 1

// TimeBar renders the playback progress strip shown below the frame,
// e.g. "<    o               >".
type TimeBar struct {
	Duration int // total frame count being tracked
	Length   int // full on-screen length in characters

	LeftDecorator  string
	RightDecorator string
	Spacer         string
	Marker         string

	internalLength int
}

// NewTimeBar builds a bar of the given length tracking duration frames.
// A bar too short to hold its decorators plus the marker is a
// configuration error.
func NewTimeBar(duration, length int) (*TimeBar, error) {
	tb := &TimeBar{
		Duration:       duration,
		Length:         length,
		LeftDecorator:  "<",
		RightDecorator: ">",
		Spacer:         " ",
		Marker:         "o",
	}
	tb.internalLength = length - len(tb.LeftDecorator) - len(tb.RightDecorator)

	if len(tb.LeftDecorator)+len(tb.RightDecorator)+len(tb.Marker) > length {
		return nil, fmt.Errorf("этот TimeBar слишком короткий для декораторов: %q %q %q",
			tb.LeftDecorator, tb.Marker, tb.RightDecorator)
	}
	return tb, nil
}

// MarkerPosition returns the marker index on the bar's internal length
// for the given frame number, clamped so the marker never overwrites
// the right decorator.
func (tb *TimeBar) MarkerPosition(frameNum int) int {
	pos := int(math.Round(float64(tb.internalLength) / float64(tb.Duration) * float64(frameNum)))
	if pos >= tb.internalLength {
		pos = tb.internalLength - 1
	}
	return pos
}

// Render returns the bar with the marker placed for frameNum.
func (tb *TimeBar) Render(frameNum int) string {
	pos := tb.MarkerPosition(frameNum)
	var b strings.Builder
	b.WriteString(tb.LeftDecorator)
	b.WriteString(strings.Repeat(tb.Spacer, pos))
	b.WriteString(tb.Marker)
	b.WriteString(strings.Repeat(tb.Spacer, tb.internalLength-pos-1))
	b.WriteString(tb.RightDecorator)
	return b.String()
}
