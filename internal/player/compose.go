package player

import (
	"bytes"
	"strings"

	"github.com/ivlev/ascii2telnet/internal/movie"
)

// VT100 cursor control. The first frame clears the screen; every frame
// homes the cursor so the new image overwrites the old in place.
const (
	clearScreen = "\x1b[2J"
	homeCursor  = "\x1b[H"
)

const crlf = "\r\n"

// compose builds the wire-ready screen buffer for one frame: top
// margin, left-padded frame lines, bottom padding and the timebar
// strip, every line CRLF-terminated.
func (p *Player) compose(frameNum int, frame *movie.Frame) []byte {
	m := p.movie
	leftPad := strings.Repeat(" ", m.LeftMargin)

	var buf bytes.Buffer
	if frameNum == 0 {
		buf.WriteString(clearScreen)
	}
	buf.WriteString(homeCursor)

	for i := 0; i < m.TopMargin; i++ {
		buf.WriteString(crlf)
	}
	for _, line := range frame.Data {
		buf.WriteString(leftPad)
		buf.WriteString(line)
		buf.WriteString(crlf)
	}
	// Кадры с субтитрами бывают выше базовой высоты; добиваем пустыми
	// строками только недостающее.
	for i := len(frame.Data); i < m.FrameHeight; i++ {
		buf.WriteString(crlf)
	}
	for i := m.TopMargin + m.FrameHeight; i < m.ScreenHeight-movie.TimeBarHeight; i++ {
		buf.WriteString(crlf)
	}

	buf.WriteString(p.timebar.Render(frameNum))
	buf.WriteString(crlf)
	return buf.Bytes()
}
