package telnet

import (
	"bytes"
	"strings"
	"testing"
)

type stubConn struct {
	in  *bytes.Buffer
	out *bytes.Buffer
}

func newStubConn(input string) *stubConn {
	return &stubConn{in: bytes.NewBufferString(input), out: &bytes.Buffer{}}
}

func (c *stubConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *stubConn) Write(p []byte) (int, error) { return c.out.Write(p) }

func TestPrintlnUsesCRLF(t *testing.T) {
	conn := newStubConn("")
	s := NewScreen(conn, 40, 10)

	if err := s.Println("one\ntwo"); err != nil {
		t.Fatalf("Println failed: %v", err)
	}

	got := conn.out.String()
	if got != "one\r\ntwo\r\n" {
		t.Errorf("Expected CRLF endings, got %q", got)
	}
}

func TestPrintKeepsInlinePrompt(t *testing.T) {
	conn := newStubConn("")
	s := NewScreen(conn, 40, 10)

	if err := s.Print("Who dis? "); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	got := conn.out.String()
	if strings.HasSuffix(got, CRLF) {
		t.Errorf("Inline prompt must not end with a newline: %q", got)
	}
	if !strings.HasSuffix(got, " ") {
		t.Errorf("Trailing prompt space lost: %q", got)
	}
}

func TestFormatWrapsLongLines(t *testing.T) {
	conn := newStubConn("")
	s := NewScreen(conn, 10, 20)

	lines := s.format("aaa bbb ccc ddd")
	if len(lines) < 2 {
		t.Fatalf("Expected wrapping, got %v", lines)
	}
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("Line exceeds screen width: %q", l)
		}
	}
}

func TestFormatPreservesBlankLines(t *testing.T) {
	conn := newStubConn("")
	s := NewScreen(conn, 40, 10)

	lines := s.format("a\n\nb")
	if len(lines) != 3 || lines[1] != "" {
		t.Errorf("Blank line lost: %v", lines)
	}
}

func TestPagerScrollsOneLinePerEnter(t *testing.T) {
	// 9 строк при высоте 8: окно в 4 строки, пять подсказок до конца.
	text := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9"
	conn := newStubConn("\r\n\r\n\r\n\r\n\r\n")
	s := NewScreen(conn, 40, 8)

	if err := s.Println(text); err != nil {
		t.Fatalf("paged write failed: %v", err)
	}

	got := conn.out.String()
	if strings.Count(got, "press enter to scroll or 'bottom'") != 5 {
		t.Errorf("Expected 5 scroll prompts: %q", got)
	}
	if !strings.Contains(got, "l9") {
		t.Errorf("Paging never reached the last line: %q", got)
	}
}

func TestPagerJumpsToBottom(t *testing.T) {
	text := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10"
	conn := newStubConn("bottom\r\n")
	s := NewScreen(conn, 40, 8)

	if err := s.Println(text); err != nil {
		t.Fatalf("paged write failed: %v", err)
	}

	got := conn.out.String()
	if strings.Count(got, "press enter to scroll or 'bottom'") != 1 {
		t.Errorf("'bottom' should finish paging with a single prompt: %q", got)
	}
	if !strings.Contains(got, "l10") {
		t.Errorf("Final page missing: %q", got)
	}
}

func TestReadLineFiltersNegotiation(t *testing.T) {
	conn := newStubConn(string([]byte{IAC, DO, 1}) + "hello\r\n")
	s := NewScreen(conn, 40, 10)

	got, err := s.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Expected %q, got %q", "hello", got)
	}
}

func TestPromptWritesQuestionInline(t *testing.T) {
	conn := newStubConn("martin\r\n")
	s := NewScreen(conn, 40, 10)

	got, err := s.Prompt("Who dis?")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if got != "martin" {
		t.Errorf("Expected %q, got %q", "martin", got)
	}
	if !strings.HasPrefix(conn.out.String(), "Who dis? ") {
		t.Errorf("Question not written inline: %q", conn.out.String())
	}
}
