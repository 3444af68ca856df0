package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logrus.Warnf("не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logrus.Warnf("не удалось установить лимит файлов: %v", err)
	} else {
		logrus.Infof("системный лимит открытых файлов увеличен до %d", rLimit.Cur)
	}
}

// LogHostInfo prints a one-line host report at startup so long-running
// servers leave a record of what they started on.
func LogHostInfo() {
	fields := logrus.Fields{}
	if n, err := cpu.Counts(true); err == nil {
		fields["cpus"] = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fields["mem_total_mb"] = vm.Total / 1024 / 1024
		fields["mem_used_pct"] = fmt.Sprintf("%.1f", vm.UsedPercent)
	}
	logrus.WithFields(fields).Info("host")
}

// ResolveFFmpeg locates the external transcoder: an explicit path is
// verified, an empty one is looked up on PATH.
func ResolveFFmpeg(path string) (string, error) {
	if path == "" {
		found, err := exec.LookPath("ffmpeg")
		if err != nil {
			return "", fmt.Errorf("ffmpeg не найден в PATH: %w", err)
		}
		return found, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("ffmpeg не найден: %w", err)
	}
	return path, nil
}

// ProbeDuration returns the duration of a media file in seconds via
// ffprobe.
func ProbeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// FindLatestMovie returns the newest movie file in dir; .gob, .yaml and
// .txt all count.
func FindLatestMovie(dir string) (string, error) {
	return findLatest(dir, []string{".gob", ".yaml", ".yml", ".txt"}, "фильмов")
}

// FindLatestVideo returns the newest source video in dir.
func FindLatestVideo(dir string) (string, error) {
	return findLatest(dir, []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}, "видео")
}

func findLatest(dir string, extensions []string, kind string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено %s", dir, kind)
	}

	return latestFile, nil
}
