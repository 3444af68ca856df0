package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/ascii2telnet/internal/config"
	"github.com/ivlev/ascii2telnet/internal/dialogue"
	"github.com/ivlev/ascii2telnet/internal/maker"
	"github.com/ivlev/ascii2telnet/internal/movie"
	"github.com/ivlev/ascii2telnet/internal/notify"
	"github.com/ivlev/ascii2telnet/internal/player"
	"github.com/ivlev/ascii2telnet/internal/server"
	"github.com/ivlev/ascii2telnet/internal/system"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)

	// Создаем нужные директории, если их нет
	for _, d := range []string{"movies", "input/video"} {
		os.MkdirAll(d, 0755)
	}

	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "run":
		runCmd(os.Args[2:])
	case "make":
		makeCmd(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "использование: ascii2telnet run|make [флаги]")
	os.Exit(2)
}

func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	stdout := fs.Bool("stdout", false, "Писать в STDOUT (режим xinetd) вместо TCP-сервера")
	file := fs.String("f", "", "Файл фильма: .txt, .yaml или .gob (по умолчанию: самый свежий в movies/)")
	dialoguePath := fs.String("d", "", "YAML-сценарий диалога (опционально)")
	iface := fs.String("i", "0.0.0.0", "Слушать на этом интерфейсе")
	port := fs.Int("p", 23, "Порт (по умолчанию 23, telnet)")
	noHumanCheck := fs.Bool("no-human-check", false, "Пропустить проверку на человечность")
	primeSeconds := fs.Int("prime-seconds", 15, "Отсчёт на заставке перед показом, секунд")
	publicURL := fs.String("url", "", "Публичный URL для QR-кода на заставке")
	fs.Parse(args)

	system.InitResourceLimits()
	system.LogHostInfo()

	moviePath := *file
	if moviePath == "" {
		latest, err := system.FindLatestMovie("movies")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите фильм в movies/", err)
		}
		moviePath = latest
		fmt.Printf("[*] Выбран фильм: %s\n", moviePath)
	}

	fmt.Println("[*] Загрузка фильма...")
	m, err := movie.Open(moviePath)
	if err != nil {
		log.Fatalf("[-] Ошибка загрузки фильма: %v", err)
	}

	var d *dialogue.Dialogue
	if *dialoguePath != "" {
		d, err = dialogue.Load(*dialoguePath)
		if err != nil {
			log.Fatalf("[-] Ошибка сценария диалога: %v", err)
		}
		// Неизвестный разговор — ошибка конфигурации, падаем до
		// первого соединения, а не на нём.
		if err := d.Validate("visitor", "parting_message"); err != nil {
			log.Fatalf("[-] Ошибка сценария диалога: %v", err)
		}
	}

	if *stdout {
		runStdout(m)
		return
	}

	if err := notify.RefreshDynDNS(); err != nil {
		logrus.WithError(err).Warn("dyndns refresh failed")
	}

	cfg := config.Run{
		Interface:    *iface,
		Port:         *port,
		MoviePath:    moviePath,
		DialoguePath: *dialoguePath,
		HumanCheck:   !*noHumanCheck,
		PrimeSeconds: *primeSeconds,
		PublicURL:    *publicURL,
	}

	fmt.Printf("[*] Сервер на %s:%d | Фильм: %s\n", cfg.Interface, cfg.Port, moviePath)
	if err := server.New(cfg, m, d).ListenAndServe(); err != nil {
		log.Fatalf("[-] Ошибка сервера: %v", err)
	}
}

// runStdout streams the playback to STDOUT, e.g. under xinetd.
func runStdout(m *movie.Movie) {
	p, err := player.New(m)
	if err != nil {
		log.Fatalf("[-] Ошибка плеера: %v", err)
	}
	p.Play(context.Background(), func(buf []byte) error {
		_, err := os.Stdout.Write(buf)
		return err
	})
}

func makeCmd(args []string) {
	fs := flag.NewFlagSet("make", flag.ExitOnError)
	input := fs.String("i", "", "Видео на входе (по умолчанию: самое свежее в input/video/)")
	output := fs.String("o", "", "Фильм на выходе (.gob или .yaml; если пусто, генерируется в movies/)")
	ffmpegPath := fs.String("ffmpeg", "", "Путь к ffmpeg (по умолчанию из PATH)")
	subtitles := fs.String("subtitles", "", "Файл субтитров: один слайд на строку, префикс 'N|' меняет длительность")
	secondsPerSlide := fs.Int("seconds-per-slide", 4, "Длительность слайда субтитров по умолчанию, секунд")
	width := fs.Int("width", movie.DefaultFrameWidth, "Ширина кадра в символах")
	height := fs.Int("height", movie.DefaultFrameHeight, "Высота кадра в строках")
	workers := fs.Int("workers", runtime.NumCPU(), "Потоки")
	fs.Parse(args)

	inputPath := *input
	if inputPath == "" {
		latest, err := system.FindLatestVideo("input/video")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите видео в input/video/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Выбрано видео: %s\n", inputPath)
	}

	outputPath := *output
	if outputPath == "" {
		baseName := filepath.Base(inputPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = filepath.Join("movies", fmt.Sprintf("%s_%s.gob", cleanName, timestamp))
	}

	mk := maker.New(config.Make{
		InputVideo:      inputPath,
		OutputMovie:     outputPath,
		FFmpegPath:      *ffmpegPath,
		FrameWidth:      *width,
		FrameHeight:     *height,
		Workers:         *workers,
		SubtitleFile:    *subtitles,
		SecondsPerSlide: *secondsPerSlide,
	})

	path, err := mk.Run()
	if err != nil {
		log.Fatalf("[-] Ошибка конвертации: %v", err)
	}
	fmt.Printf("[+++] Успех! Результат: %s\n", path)
}
