package maker

import (
	"image"
	"image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/ascii2telnet/internal/movie"
)

// ramp maps luminance to ink, darkest to brightest. Terminals are dark,
// so bright pixels get the heavy characters.
const ramp = " .:-=+*#%@"

// convertFrame reads one extracted PNG, downscales it to the ascii grid
// and maps each cell's luminance onto the ramp.
func convertFrame(path string, width, height int) (*movie.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	// Одна ячейка сетки — один символ; билинейного приближения
	// достаточно, детали всё равно уходят в один глиф.
	grid := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	frame := movie.NewFrame(1)
	var line strings.Builder
	for y := 0; y < height; y++ {
		line.Reset()
		for x := 0; x < width; x++ {
			lum := grid.GrayAt(x, y).Y
			line.WriteByte(ramp[int(lum)*(len(ramp)-1)/255])
		}
		frame.Data = append(frame.Data, line.String())
	}
	return frame, nil
}
