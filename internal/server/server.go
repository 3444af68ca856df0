// Package server accepts telnet-style connections and walks each one
// through the session state machine: humanity check, visitor dialogue,
// screen-size priming, playback, parting dialogue.
package server

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/ascii2telnet/internal/config"
	"github.com/ivlev/ascii2telnet/internal/dialogue"
	"github.com/ivlev/ascii2telnet/internal/movie"
)

// Server owns the listener plus the process-wide read-only state: the
// loaded movie and the parsed dialogue script. Both are established
// before Accept and never mutated, so workers share them without locks.
type Server struct {
	cfg      config.Run
	movie    *movie.Movie
	dialogue *dialogue.Dialogue // nil когда сценарий не задан
}

func New(cfg config.Run, m *movie.Movie, d *dialogue.Dialogue) *Server {
	return &Server{cfg: cfg, movie: m, dialogue: d}
}

// ListenAndServe blocks accepting connections, one goroutine per
// visitor. Workers never block each other: all their I/O is private to
// the connection.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Interface, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("не удалось открыть порт %s: %w", addr, err)
	}
	logrus.WithField("addr", addr).Info("server listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	log := logrus.WithField("remote", conn.RemoteAddr().String())
	log.Info("client connected")

	sess := newSession(conn, s.cfg, s.movie, s.dialogue, log)
	sess.run()

	// Обрыв соединения — штатный выход, а не ошибка приложения.
	log.Info("client disconnected")
}
