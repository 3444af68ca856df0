// Package telnet implements the byte-level wire conventions of the
// player: stripping negotiation sequences from inbound chunks and
// formatting outbound text for a fixed-size terminal.
package telnet

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Telnet command bytes. Everything in [240..255] is a command; bytes
// below are payload.
const (
	SE   = 240 // конец субпереговоров
	SB   = 250 // начало субпереговоров
	WILL = 251
	WONT = 252
	DO   = 253
	DONT = 254
	IAC  = 255 // Interpret As Command

	commandRangeStart = 240
)

// Filter returns the subsequence of chunk that is genuine user-typed
// text, with all negotiation sequences removed. Unexpected command
// ordering never fails: the ambiguous byte is dropped and scanning
// continues.
//
// Known limitation: no command state survives across chunks, so a
// command split over two reads leaks its tail into the next scan.
func Filter(chunk []byte) []byte {
	out := make([]byte, 0, len(chunk))
	var prev byte
	insub := false

	for _, b := range chunk {
		switch {
		case insub:
			// Внутри субпереговоров всё отбрасываем до SE включительно.
			if b == SE {
				insub = false
			}
		case b == SB:
			insub = true
		case prev == IAC || prev == WILL || prev == WONT || prev == DO || prev == DONT:
			// Байт-аргумент двухбайтовой команды.
		case b >= commandRangeStart:
			// Сам командный байт.
		default:
			out = append(out, b)
		}
		prev = b
	}
	return out
}

// DecodeInput filters a raw inbound chunk and decodes the remaining
// bytes as ISO-8859-15 (single byte per character), trimmed of
// surrounding whitespace.
func DecodeInput(chunk []byte) string {
	clean, err := charmap.ISO8859_15.NewDecoder().Bytes(Filter(chunk))
	if err != nil {
		// Однобайтовая декодировка не может не разобрать байт; на
		// всякий случай отдаём латиницу как есть.
		clean = Filter(chunk)
	}
	return strings.TrimSpace(string(clean))
}
