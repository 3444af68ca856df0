package movie

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// SpliceSubtitles overlays a subtitle file onto the movie: one slide of
// text per input line, appended below the frames that play while the
// slide is up. A "SECONDS|" prefix on a line overrides the default
// slide duration for that line only. Subtitles that outlast the movie
// are a configuration error.
func (m *Movie) SpliceSubtitles(path string, secondsPerSlide int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	next := m.frameIterator()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := m.spliceLine(scanner.Text(), next, secondsPerSlide); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// frameIterator yields the movie's frames in order, nil when exhausted.
func (m *Movie) frameIterator() func() *Frame {
	i := 0
	return func() *Frame {
		if i >= len(m.Frames) {
			return nil
		}
		f := m.Frames[i]
		i++
		return f
	}
}

func (m *Movie) spliceLine(line string, next func() *Frame, secondsPerSlide int) error {
	if idx := strings.Index(line, "|"); idx >= 0 {
		seconds, err := strconv.Atoi(strings.TrimSpace(line[:idx]))
		if err != nil {
			return fmt.Errorf("неверный префикс длительности субтитра: %q", line[:idx])
		}
		secondsPerSlide = seconds
		line = line[idx+1:]
	}

	formatted := m.formatSlide(line)

	// Слайд висит на экране, пока кадры под ним не накопят его длительность.
	accumulated := 0.0
	for accumulated < float64(secondsPerSlide) {
		frame := next()
		if frame == nil {
			return fmt.Errorf("субтитры длиннее фильма")
		}
		frame.Data = append(frame.Data, formatted...)
		if _, h := frame.Dimensions(); h > m.FrameHeight {
			m.setFrameDimensions(m.FrameWidth, h)
		}
		accumulated += frame.Seconds()
	}
	return nil
}

// formatSlide wraps a slide to the frame width and styles each line
// inverted so it reads over the animation.
func (m *Movie) formatSlide(line string) []string {
	line = strings.TrimSpace(line)

	var lines []string
	if len(line) > m.FrameWidth {
		lines = strings.Split(wordwrap.String(line, m.FrameWidth), "\n")
	} else {
		lines = []string{line}
	}

	formatted := make([]string, 0, len(lines))
	for _, l := range lines {
		formatted = append(formatted, SubtitleLine(strings.TrimSpace(l), m.FrameWidth))
	}
	return formatted
}
