package server

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	qrcode "github.com/skip2/go-qrcode"
)

// Профиль цвета фиксирован: стили уходят в сокет, не в TTY.
var styleRenderer = lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI))

var (
	rejectionStyle = styleRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	bannerStyle    = styleRenderer.NewStyle().Bold(true)
)

const splashTitle = "ADJUST YOUR TERMINAL UNTIL THIS BOX FITS"

// splash draws a reference box the size of the movie screen so the
// visitor can resize their terminal before playback. When a public URL
// is configured its QR code sits in the middle of the box.
func splash(width, height int, publicURL string) string {
	interior := make([]string, 0, height)

	if qr, err := qrASCII(publicURL); err == nil {
		interior = append(interior, qr...)
		interior = append(interior, "", publicURL)
	}

	inner := width - 2
	body := height - 4 // рамка сверху и снизу плюс строка отсчёта

	lines := make([]string, 0, height)
	lines = append(lines, "+"+strings.Repeat("-", inner)+"+")
	lines = append(lines, "|"+center(bannerStyle.Render(splashTitle), inner, len(splashTitle))+"|")

	topPad := (body - 2 - len(interior)) / 2
	row := 0
	for i := 0; i < body-2; i++ {
		content := ""
		if i >= topPad && row < len(interior) {
			content = interior[row]
			row++
		}
		lines = append(lines, "|"+center(content, inner, displayCells(content))+"|")
	}
	lines = append(lines, "+"+strings.Repeat("-", inner)+"+")

	return "\x1b[2J\x1b[H" + strings.Join(lines, "\r\n") + "\r\n"
}

// center pads text to width using its visible cell count, which may
// differ from len() for styled or multibyte content.
func center(text string, width, cells int) string {
	pad := width - cells
	if pad < 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

func displayCells(s string) int {
	return len([]rune(s))
}

// qrASCII renders the URL as a half-block QR code, two modules per
// terminal row.
func qrASCII(url string) ([]string, error) {
	if url == "" {
		return nil, os.ErrNotExist
	}

	q, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	lines := make([]string, 0, (len(bitmap)+1)/2)
	for y := 0; y < len(bitmap); y += 2 {
		var b strings.Builder
		for x := 0; x < len(bitmap[y]); x++ {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}
