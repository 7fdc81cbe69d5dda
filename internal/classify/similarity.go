package classify

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/glyph-ocr/internal/imaging"
)

// ErrShapeMismatch is returned when two masks of different sizes are compared.
var ErrShapeMismatch = errors.New("mask dimensions differ")

// Correlate returns the normalized cross-correlation of two equally sized
// masks: the Pearson correlation of their pixel intensities, in [-1, 1].
//
// A mask with no intensity variation (blank or completely filled) has no
// defined correlation; the score is 0 in that case.
func Correlate(a, b *imaging.Mask) (float64, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch,
			a.Width(), a.Height(), b.Width(), b.Height())
	}
	if a.Empty() {
		return 0, nil
	}

	score := stat.Correlation(a.Pixels(), b.Pixels(), nil)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, nil
	}
	return score, nil
}
