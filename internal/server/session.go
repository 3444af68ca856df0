package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/ascii2telnet/internal/config"
	"github.com/ivlev/ascii2telnet/internal/dialogue"
	"github.com/ivlev/ascii2telnet/internal/movie"
	"github.com/ivlev/ascii2telnet/internal/notify"
	"github.com/ivlev/ascii2telnet/internal/player"
	"github.com/ivlev/ascii2telnet/internal/telnet"
)

// Verdict is the explicit result of the humanity check.
type Verdict int

const (
	Accepted Verdict = iota
	Rejected
)

// Answers that pass the humanity check, matched as case-insensitive
// substrings of the reply.
var affirmatives = []string{"yes", "yeah", "yep", "sure", "da", "si", "affirmative"}

const rejectionMessage = "Bots are not welcome here. Goodbye."

// session is the per-connection context: the live channel, the
// visitor's declared name and whether they passed the humanity check.
// Owned exclusively by its goroutine, never shared.
type session struct {
	screen   *telnet.Screen
	cfg      config.Run
	movie    *movie.Movie
	dialogue *dialogue.Dialogue
	log      *logrus.Entry

	visitorName string
	human       bool
}

func newSession(conn io.ReadWriter, cfg config.Run, m *movie.Movie, d *dialogue.Dialogue, log *logrus.Entry) *session {
	return &session{
		screen:   telnet.NewScreen(conn, m.ScreenWidth, m.ScreenHeight),
		cfg:      cfg,
		movie:    m,
		dialogue: d,
		log:      log,
	}
}

// run walks the session states in order. Every state may end the
// session: a failed write means the peer is gone and the worker simply
// tears down.
func (s *session) run() {
	if s.cfg.HumanCheck {
		verdict, err := s.checkHuman()
		if err != nil {
			return
		}
		if verdict == Rejected {
			s.screen.Println(rejectionStyle.Render(rejectionMessage))
			return
		}
		s.human = true
	}

	if err := s.greet(); err != nil {
		return
	}
	s.notifyVisit()

	if err := s.prime(); err != nil {
		return
	}

	if err := s.playback(); err != nil {
		s.log.WithError(err).Info("playback stopped: peer gone")
		return
	}

	if s.dialogue != nil {
		s.runConversation("parting_message")
	}
}

// checkHuman asks once; there is no retry.
func (s *session) checkHuman() (Verdict, error) {
	reply, err := s.screen.Prompt("Are you a human?")
	if err != nil {
		return Rejected, err
	}
	reply = strings.ToLower(reply)
	if reply == "y" {
		return Accepted, nil
	}
	for _, a := range affirmatives {
		if strings.Contains(reply, a) {
			return Accepted, nil
		}
	}
	return Rejected, nil
}

// greet learns the visitor's name: through the scripted visitor
// conversation when a dialogue is loaded, or the bare classic prompt
// otherwise.
func (s *session) greet() error {
	if s.dialogue == nil {
		raw, err := s.screen.Prompt("Who dis?")
		if err != nil {
			return err
		}
		// Некоторые клиенты шлют мусор до имени, отделённый решёткой.
		parts := strings.Split(raw, "#")
		s.visitorName = strings.TrimSpace(parts[len(parts)-1])
		return nil
	}

	trace, err := s.runConversation("visitor")
	if err != nil {
		return err
	}
	if trace != nil {
		s.visitorName = trace.Input
		// Разговор, упёршийся в терминальный ответ, предлагаем один раз
		// пройти заново.
		if trace.Terminal() {
			if retry, err := s.runConversation("visitor"); err != nil {
				return err
			} else if retry != nil && retry.Input != "" {
				s.visitorName = retry.Input
			}
		}
	}
	return nil
}

func (s *session) runConversation(name string) (*dialogue.Trace, error) {
	node, err := s.dialogue.Conversation(name)
	if err != nil {
		// Валидация при старте делает это недостижимым.
		s.log.WithError(err).Error("conversation lookup")
		return nil, err
	}
	return dialogue.Resolve(node, s.screen.Prompt, s.screen.Println)
}

func (s *session) notifyVisit() {
	name := s.visitorName
	if name == "" {
		name = "an unnamed visitor"
	}
	err := notify.Send(fmt.Sprintf("Server has been visited by %s!", name))
	if err != nil && !errors.Is(err, notify.ErrMisconfigured) {
		s.log.WithError(err).Warn("notification failed")
	}
}

// prime shows the resize splash and counts down a mandatory wait so the
// visitor can adjust their terminal. Not skippable.
func (s *session) prime() error {
	if err := s.screen.WriteRaw([]byte(splash(s.movie.ScreenWidth, s.movie.ScreenHeight, s.cfg.PublicURL))); err != nil {
		return err
	}
	for i := s.cfg.PrimeSeconds; i > 0; i-- {
		if err := s.screen.Print(fmt.Sprintf("\rThe show starts in %2d...", i)); err != nil {
			return err
		}
		time.Sleep(time.Second)
	}
	return nil
}

func (s *session) playback() error {
	p, err := player.New(s.movie)
	if err != nil {
		return err
	}
	return p.Play(context.Background(), s.screen.WriteRaw)
}
