package movie

import (
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Кадры уходят в сырой сокет, а не в TTY, поэтому профиль цвета
// фиксируем вручную: автоопределение termenv срезало бы все коды.
var renderer = lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI))

var (
	backgroundStyle = renderer.NewStyle().Background(lipgloss.Color("0"))
	subtitleStyle   = renderer.NewStyle().
			Background(lipgloss.Color("0")).
			Foreground(lipgloss.Color("7"))
)

var ansiEscape = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// DisplayWidth returns the rendered width of a line with all ANSI
// escape sequences stripped.
func DisplayWidth(line string) int {
	return len(ansiEscape.ReplaceAllString(line, ""))
}

// SubtitleLine renders a subtitle slide line: centered on the frame
// width, white on black.
func SubtitleLine(text string, width int) string {
	pad := width - len(text)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left
	return subtitleStyle.Render(spaces(left) + text + spaces(right))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
