package imaging

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// DefaultCanvasSize is the side of the square canvas glyphs are compared on.
const DefaultCanvasSize = 30

// Normalizer maps a glyph mask onto a fixed Size x Size canvas.
//
// Templates and live glyphs must both pass through the same Normalizer or
// their similarity scores are meaningless.
type Normalizer struct {
	Size int
}

// NewNormalizer returns a Normalizer for the default canvas size.
func NewNormalizer() Normalizer {
	return Normalizer{Size: DefaultCanvasSize}
}

// Validate checks that the canvas size is usable.
func (n Normalizer) Validate() error {
	if n.Size < 1 {
		return fmt.Errorf("canvas size %d must be positive", n.Size)
	}
	return nil
}

// TightCrop crops m to the bounding box of its largest external region,
// dropping stray specks outside the main glyph. Pixels of other regions that
// fall inside that box are kept. A mask without foreground yields an empty
// mask.
func TightCrop(m *Mask) *Mask {
	region, ok := LargestRegion(m)
	if !ok {
		return NewMask(0, 0)
	}
	return m.Crop(region.Bounds)
}

// Normalize returns a new Size x Size mask holding the glyph of m.
//
// The glyph is tight-cropped, scaled by a single factor Size/max(w,h) so its
// aspect ratio is preserved, and centred with the offset (Size-dim)/2 on each
// axis (integer division, rounding toward the origin). Width and height are
// never scaled independently. A mask with no foreground produces a blank
// canvas.
func (n Normalizer) Normalize(m *Mask) *Mask {
	canvas := NewMask(n.Size, n.Size)

	glyph := TightCrop(m)
	w, h := glyph.Width(), glyph.Height()
	if w == 0 || h == 0 {
		return canvas
	}

	// Integer form of int(dim * Size/max(w,h)); the long side lands on Size
	// exactly, with no float rounding.
	longest := max(w, h)
	newW := max(w*n.Size/longest, 1)
	newH := max(h*n.Size/longest, 1)

	var scaled image.Image = glyph.gray
	if newW != w || newH != h {
		scaled = imaging.Resize(glyph.gray, newW, newH, imaging.Linear)
	}

	offX := (n.Size - newW) / 2
	offY := (n.Size - newH) / 2
	dst := image.Rect(offX, offY, offX+newW, offY+newH)
	draw.Draw(canvas.gray, dst, scaled, scaled.Bounds().Min, draw.Src)

	return canvas
}
