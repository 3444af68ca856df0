package movie

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Open loads a movie from any of the three supported on-disk formats,
// picked by extension: .txt (classic asciimation), .yaml (transcoder
// output) or .gob (binary snapshot of a previously loaded movie).
func Open(path string) (*Movie, error) {
	if strings.HasSuffix(path, ".gob") {
		return LoadSnapshot(path)
	}
	m := New(80, 24)
	if err := m.Load(path); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the movie content from a text or yaml file, then
// compresses it. A second call on the same movie fails with
// ErrAlreadyLoaded.
func (m *Movie) Load(path string) error {
	if m.loaded {
		return ErrAlreadyLoaded
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".txt"):
		err = m.loadText(f)
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		err = m.loadYAML(f)
	default:
		err = fmt.Errorf("неизвестный формат фильма: %s", path)
	}
	if err != nil {
		return err
	}

	m.Compress()
	m.loaded = true
	return nil
}

// loadText parses the classic line-oriented format: a metadata line
// holding the tick count followed by FrameHeight content lines,
// repeating until EOF.
func (m *Movie) loadText(f *os.File) error {
	linesPerFrame := m.FrameHeight + 1 // вместе со строкой метаданных

	var frames []*Frame
	var current *Frame

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		if lineNum%linesPerFrame == 0 {
			ticks, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return fmt.Errorf("строка %d: ожидалось число тиков: %w", lineNum+1, err)
			}
			current = NewFrame(ticks)
			frames = append(frames, current)
		} else {
			current.Data = append(current.Data, m.fixLine(line))
		}
		lineNum++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("файл фильма пуст")
	}

	m.Frames = frames
	return nil
}

// SaveYAML writes the movie in the yaml frame format loadYAML reads:
// one scalar block per tick, closed by a separator line. Frames held
// for several ticks are emitted that many times, so the round trip
// preserves total duration at the cost of re-compression on load.
func (m *Movie) SaveYAML(path string) (string, error) {
	separator := strings.Repeat("-", m.FrameWidth)

	var blocks []string
	for _, frame := range m.Frames {
		block := strings.Join(frame.Data, "\n") + "\n" + separator + "\n"
		for i := 0; i < frame.DisplayTime; i++ {
			blocks = append(blocks, block)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := yaml.NewEncoder(f).Encode(blocks); err != nil {
		return "", fmt.Errorf("ошибка записи yaml-фильма: %w", err)
	}
	return path, nil
}

// loadYAML parses the transcoder output: a yaml sequence of multi-line
// scalar blocks, one block per frame. The last line of each block is a
// separator and is discarded; the first block fixes the frame geometry
// for the whole movie.
func (m *Movie) loadYAML(f *os.File) error {
	var blocks []string
	if err := yaml.NewDecoder(f).Decode(&blocks); err != nil {
		return fmt.Errorf("ошибка разбора yaml-фильма: %w", err)
	}
	if len(blocks) == 0 {
		return fmt.Errorf("yaml-фильм не содержит кадров")
	}

	var frames []*Frame
	dimensionsEvaluated := false
	for _, block := range blocks {
		// Последняя строка блока — разделитель, в кадр не входит.
		lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
		if len(lines) > 0 {
			lines = lines[:len(lines)-1]
		}

		frame := NewFrame(1)
		frame.Data = lines
		if !dimensionsEvaluated {
			w, h := frame.Dimensions()
			m.setFrameDimensions(w, h)
			dimensionsEvaluated = true
		}
		for i, line := range frame.Data {
			frame.Data[i] = m.fixLine(line)
		}
		frame.SetBackground()
		frames = append(frames, frame)
	}

	m.Frames = frames
	return nil
}
