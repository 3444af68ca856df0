// Package maker transcodes a video file into an ascii movie: ffmpeg
// extracts frames at the canonical tick rate, a worker pool downscales
// and maps them to a character ramp, and the result is compressed and
// snapshotted. Results are cached by content hash, so re-making the
// same video is instant.
package maker

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/ascii2telnet/internal/config"
	"github.com/ivlev/ascii2telnet/internal/movie"
	"github.com/ivlev/ascii2telnet/internal/system"
)

type Maker struct {
	cfg     config.Make
	tempDir string
}

func New(cfg config.Make) *Maker {
	if cfg.FrameWidth <= 0 {
		cfg.FrameWidth = movie.DefaultFrameWidth
	}
	if cfg.FrameHeight <= 0 {
		cfg.FrameHeight = movie.DefaultFrameHeight
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Maker{cfg: cfg}
}

// Run produces the output movie snapshot and returns its path.
func (mk *Maker) Run() (string, error) {
	ffmpeg, err := system.ResolveFFmpeg(mk.cfg.FFmpegPath)
	if err != nil {
		return "", err
	}

	if duration, err := system.ProbeDuration(mk.cfg.InputVideo); err == nil {
		fmt.Printf("[*] Источник: %s (%.1fs)\n", mk.cfg.InputVideo, duration)
	}

	m, err := mk.cachedMovie()
	if err != nil {
		return "", err
	}
	if m == nil {
		m, err = mk.transcode(ffmpeg)
		if err != nil {
			return "", err
		}
		if err := mk.storeCache(m); err != nil {
			// Кеш — ускорение, а не обязанность: предупреждаем и едем дальше.
			fmt.Printf("[!] Не удалось сохранить кеш: %v\n", err)
		}
	} else {
		fmt.Println("[*] Кадры взяты из кеша")
	}

	if mk.cfg.SubtitleFile != "" {
		fmt.Printf("[*] Вклеиваем субтитры: %s\n", mk.cfg.SubtitleFile)
		if err := m.SpliceSubtitles(mk.cfg.SubtitleFile, mk.cfg.SecondsPerSlide); err != nil {
			return "", err
		}
	}

	if strings.HasSuffix(mk.cfg.OutputMovie, ".yaml") || strings.HasSuffix(mk.cfg.OutputMovie, ".yml") {
		return m.SaveYAML(mk.cfg.OutputMovie)
	}
	path, err := m.SaveSnapshot(mk.cfg.OutputMovie)
	if err != nil {
		return "", err
	}
	return path, nil
}

// transcode runs the full extract+convert pipeline.
func (mk *Maker) transcode(ffmpeg string) (*movie.Movie, error) {
	var err error
	mk.tempDir, err = os.MkdirTemp("", "ascii2telnet_")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(mk.tempDir)

	fmt.Println("[*] Извлечение кадров (ffmpeg)...")
	if err := mk.extractFrames(ffmpeg); err != nil {
		return nil, err
	}

	pngs, err := mk.listFrameFiles()
	if err != nil {
		return nil, err
	}
	fmt.Printf("[*] Кадров извлечено: %d | Потоки: %d\n", len(pngs), mk.cfg.Workers)

	frames := make([]*movie.Frame, len(pngs))

	// Пул конвертеров: CPU-bound, по ядру на воркера.
	var g errgroup.Group
	g.SetLimit(mk.cfg.Workers)
	for i, path := range pngs {
		i, path := i, path
		g.Go(func() error {
			frame, err := convertFrame(path, mk.cfg.FrameWidth, mk.cfg.FrameHeight)
			if err != nil {
				return fmt.Errorf("кадр %d: %w", i, err)
			}
			frames[i] = frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := movie.FromFrames(frames, 80, 24)
	before := len(m.Frames)
	m.Compress()
	if before > 0 {
		fmt.Printf("[*] Сжатие одинаковых кадров: %d -> %d (%.0f%%)\n",
			before, len(m.Frames), float64(before-len(m.Frames))/float64(before)*100)
	}
	return m, nil
}

// extractFrames dumps the video as numbered PNGs at the tick rate.
func (mk *Maker) extractFrames(ffmpeg string) error {
	pattern := filepath.Join(mk.tempDir, "f%06d.png")
	cmd := exec.Command(ffmpeg,
		"-i", mk.cfg.InputVideo,
		"-vf", fmt.Sprintf("fps=%d", movie.TicksPerSecond),
		pattern,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract error: %v, output: %s", err, string(out))
	}
	return nil
}

func (mk *Maker) listFrameFiles() ([]string, error) {
	entries, err := os.ReadDir(mk.tempDir)
	if err != nil {
		return nil, err
	}
	var pngs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			pngs = append(pngs, filepath.Join(mk.tempDir, e.Name()))
		}
	}
	if len(pngs) == 0 {
		return nil, fmt.Errorf("ffmpeg не извлёк ни одного кадра")
	}
	sort.Strings(pngs)
	return pngs, nil
}

// cachePath keys the cache on the input file's content, not its name.
func (mk *Maker) cachePath() (string, error) {
	f, err := os.Open(mk.cfg.InputVideo)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "ascii2telnet")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%x_%dx%d.gob", h.Sum(nil), mk.cfg.FrameWidth, mk.cfg.FrameHeight)), nil
}

func (mk *Maker) cachedMovie() (*movie.Movie, error) {
	path, err := mk.cachePath()
	if err != nil {
		return nil, nil // кеш недоступен — просто конвертируем заново
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return movie.LoadSnapshot(path)
}

func (mk *Maker) storeCache(m *movie.Movie) error {
	path, err := mk.cachePath()
	if err != nil {
		return err
	}
	_, err = m.SaveSnapshot(path)
	return err
}
