package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// Default binarization parameters.
const (
	// DefaultThreshold is the global intensity cut for live input. Pixels at
	// or below it become foreground.
	DefaultThreshold = 180

	// DefaultTemplateThreshold is the cut used when building the template
	// library from reference bitmaps.
	DefaultTemplateThreshold = 150

	// DefaultKernelSize is the side of the square dilation element.
	DefaultKernelSize = 3
)

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Binarizer converts a source image into a foreground-high Mask.
//
// The pipeline is:
//
//  1. Grayscale conversion with BT.601 weights. Single-channel input is
//     used as is.
//  2. Global threshold: intensity <= Threshold is text, everything else is
//     paper. There is no adaptive or per-region thresholding, so results are
//     only reliable on high-contrast, evenly lit scans.
//  3. Polarity inversion so strokes carry the high value.
//  4. One dilation pass with a KernelSize x KernelSize square element, which
//     thickens thin strokes and closes small breaks before region extraction.
//
// The same type serves live input (Threshold 180) and the template library
// (Threshold 150); sharing the dilation keeps stroke thickness comparable
// between the two.
type Binarizer struct {
	Threshold  int
	KernelSize int
}

// NewBinarizer returns a Binarizer with the live-input defaults.
func NewBinarizer() Binarizer {
	return Binarizer{Threshold: DefaultThreshold, KernelSize: DefaultKernelSize}
}

// Validate checks that the parameters are usable.
func (b Binarizer) Validate() error {
	if b.Threshold < 0 || b.Threshold > 254 {
		return fmt.Errorf("threshold %d outside [0,254]", b.Threshold)
	}
	if b.KernelSize < 1 || b.KernelSize%2 == 0 {
		return fmt.Errorf("kernel size %d must be a positive odd number", b.KernelSize)
	}
	return nil
}

// Binarize produces the stroke mask for img. The result has the same size as
// img, translated to the origin.
func (b Binarizer) Binarize(img image.Image) *Mask {
	var gray image.Image = img
	if _, ok := img.(*image.Gray); !ok {
		gray = effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	}

	// Compare the stored byte directly; paper goes white, ink black.
	limit := uint8(b.Threshold)
	paper := adjust.Apply(gray, func(c color.RGBA) color.RGBA {
		if c.R <= limit {
			return color.RGBA{A: 255}
		}
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	})

	var strokes image.Image = effect.Invert(paper)
	if radius := (b.KernelSize - 1) / 2; radius > 0 {
		strokes = effect.Dilate(strokes, float64(radius))
	}
	return maskFromImage(strokes)
}

// BinarizeFile loads and binarizes an image file. Decode failures are
// returned as *LoadError.
func (b Binarizer) BinarizeFile(path string) (*Mask, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return b.Binarize(img), nil
}
