package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// BoxOverlay draws each box outline onto a copy of img, one distinct colour
// per box, for eyeballing segmentation. With showPositions set the left edge
// x-coordinate is printed above each box.
func BoxOverlay(img image.Image, boxes []image.Rectangle, showPositions bool) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	if len(boxes) == 0 {
		return result
	}

	palette := colorful.FastHappyPalette(len(boxes))
	labelColor := color.RGBA{255, 255, 255, 255}
	bgColor := color.RGBA{0, 0, 0, 180}

	for i, box := range boxes {
		r, g, b := palette[i].RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		drawRect(result, box, c)

		if showPositions {
			drawLabel(result, box.Min.X, box.Min.Y-8, strconv.Itoa(box.Min.X), labelColor, bgColor)
		}
	}

	return result
}

// drawRect draws the one-pixel outline of r, clipped to img.
func drawRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel draws a short run of digits at the given position using a
// built-in 3x5 pixel font.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if (image.Point{px, py}).In(bounds) {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if (image.Point{px, py}).In(bounds) {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
