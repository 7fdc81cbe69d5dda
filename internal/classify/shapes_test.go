package classify

import (
	"image"

	"github.com/ironsheep/glyph-ocr/internal/detection"
	"github.com/ironsheep/glyph-ocr/internal/imaging"
	"github.com/ironsheep/glyph-ocr/internal/templates"
)

func fill(m *imaging.Mask, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, imaging.Foreground)
		}
	}
}

// Blocky 20x30 test glyphs.

func shapeL() *imaging.Mask {
	m := imaging.NewMask(20, 30)
	fill(m, image.Rect(0, 0, 5, 30))
	fill(m, image.Rect(0, 25, 20, 30))
	return m
}

func shapeT() *imaging.Mask {
	m := imaging.NewMask(20, 30)
	fill(m, image.Rect(0, 0, 20, 5))
	fill(m, image.Rect(7, 0, 13, 30))
	return m
}

func shapeO() *imaging.Mask {
	m := imaging.NewMask(20, 30)
	fill(m, image.Rect(0, 0, 20, 30))
	for y := 5; y < 25; y++ {
		for x := 5; x < 15; x++ {
			m.Set(x, y, imaging.Background)
		}
	}
	return m
}

// shapeI is a narrow 10x30 bar.
func shapeI() *imaging.Mask {
	m := imaging.NewMask(10, 30)
	fill(m, m.Bounds())
	return m
}

// glyphAt wraps mask as a crop whose left edge is x.
func glyphAt(x int, mask *imaging.Mask) detection.GlyphCrop {
	return detection.GlyphCrop{
		X:      x,
		Bounds: image.Rect(x, 0, x+mask.Width(), mask.Height()),
		Mask:   mask,
	}
}

// shapeLibrary normalizes the test glyphs into a 30px library.
func shapeLibrary() *templates.Library {
	n := imaging.NewNormalizer()
	lib, err := templates.NewLibrary(n.Size,
		templates.Entry{Label: "L", Class: templates.Uppercase, Mask: n.Normalize(shapeL())},
		templates.Entry{Label: "T", Class: templates.Uppercase, Mask: n.Normalize(shapeT())},
		templates.Entry{Label: "O", Class: templates.Uppercase, Mask: n.Normalize(shapeO())},
	)
	if err != nil {
		panic(err)
	}
	return lib
}
