package telnet

import (
	"bufio"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// CRLF is the line ending the wire protocol requires on every output
// line regardless of platform.
const CRLF = "\r\n"

// pagerReserve is how many screen rows the pager keeps free for the
// scroll prompt and breathing room.
const pagerReserve = 4

// Screen is the per-session text channel: it word-wraps and paginates
// outbound text to a fixed terminal geometry and recovers clean typed
// lines from the raw inbound stream.
type Screen struct {
	Width  int
	Height int

	out io.Writer
	in  *bufio.Reader
}

// NewScreen wraps a connection in a fixed-geometry text channel.
func NewScreen(conn io.ReadWriter, width, height int) *Screen {
	return &Screen{
		Width:  width,
		Height: height,
		out:    conn,
		in:     bufio.NewReader(conn),
	}
}

// WriteRaw sends bytes as-is, bypassing wrapping. Used for composed
// frame buffers which are already wire-ready.
func (s *Screen) WriteRaw(p []byte) error {
	_, err := s.out.Write(p)
	return err
}

// Print formats and sends text without forcing a trailing newline, so
// an inline prompt keeps the cursor on its own line.
func (s *Screen) Print(text string) error {
	return s.send(text, false)
}

// Println formats and sends text, ensuring it ends with a newline.
func (s *Screen) Println(text string) error {
	return s.send(text, true)
}

func (s *Screen) send(text string, ensureNewline bool) error {
	lines := s.format(text)

	if len(lines) > s.Height {
		return s.writePaged(lines)
	}

	out := strings.Join(lines, CRLF)
	if ensureNewline && !strings.HasSuffix(out, CRLF) {
		out += CRLF
	}
	return s.WriteRaw([]byte(out))
}

// format splits text into wire lines wrapped to the screen width.
// Blank lines and a trailing inline-prompt space survive untouched.
func (s *Screen) format(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, CRLF, "\n"), "\n") {
		if len(line) <= s.Width {
			out = append(out, line)
			continue
		}
		out = append(out, strings.Split(wordwrap.String(line, s.Width), "\n")...)
	}
	return out
}

// writePaged shows the text a window at a time: screen height minus
// pagerReserve rows, "enter" scrolls one line, "bottom" jumps to the
// final page. Paging ends once the window reaches the last line.
func (s *Screen) writePaged(lines []string) error {
	window := s.Height - pagerReserve
	if window < 1 {
		window = 1
	}

	idx := 0
	for {
		end := idx + window
		if end > len(lines) {
			end = len(lines)
		}
		if err := s.WriteRaw([]byte(strings.Join(lines[idx:end], CRLF) + CRLF)); err != nil {
			return err
		}
		if end >= len(lines) {
			return nil
		}

		resp, err := s.Prompt("press enter to scroll or 'bottom'")
		if err != nil {
			return err
		}
		if strings.EqualFold(resp, "bottom") {
			idx = len(lines) - window
		} else {
			idx++
		}
	}
}

// ReadLine blocks for one line of input and returns it with all
// negotiation bytes stripped and whitespace trimmed.
func (s *Screen) ReadLine() (string, error) {
	raw, err := s.in.ReadBytes('\n')
	if err != nil && len(raw) == 0 {
		return "", err
	}
	return DecodeInput(raw), nil
}

// Prompt writes the question inline and waits for the reply.
func (s *Screen) Prompt(question string) (string, error) {
	if err := s.Print(question + " "); err != nil {
		return "", err
	}
	return s.ReadLine()
}
