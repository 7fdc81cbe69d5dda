package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Foreground and Background are the two canonical mask intensities.
const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// Mask is a single-channel glyph image with foreground = high intensity.
//
// A Mask always has its origin at (0,0). Pixels are not required to be
// strictly binary: resized masks carry interpolated edge values. Any
// non-zero pixel counts as foreground for region extraction.
//
// Masks are only produced by this package's constructors (Binarizer,
// Normalizer, MaskFromGray, NewMask), so every Mask shares the same
// polarity. Operations that return a Mask never alias their input.
type Mask struct {
	gray *image.Gray
}

// NewMask returns an all-background mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{gray: image.NewGray(image.Rect(0, 0, width, height))}
}

// MaskFromGray copies a grayscale image whose strokes are already the high
// intensity into a Mask, translating its bounds to the origin.
func MaskFromGray(src *image.Gray) *Mask {
	b := src.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	draw.Draw(m.gray, m.gray.Bounds(), src, b.Min, draw.Src)
	return m
}

// maskFromImage converts any image to a Mask by luminance. Callers must
// already have established foreground-high polarity.
func maskFromImage(src image.Image) *Mask {
	b := src.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	draw.Draw(m.gray, m.gray.Bounds(), src, b.Min, draw.Src)
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.gray.Rect.Dx() }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.gray.Rect.Dy() }

// Bounds returns the mask rectangle, always anchored at the origin.
func (m *Mask) Bounds() image.Rectangle { return m.gray.Rect }

// Empty reports whether the mask has zero area.
func (m *Mask) Empty() bool { return m.gray.Rect.Empty() }

// At returns the intensity at (x, y), or Background outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if !(image.Point{x, y}.In(m.gray.Rect)) {
		return Background
	}
	return m.gray.Pix[y*m.gray.Stride+x]
}

// Set writes an intensity at (x, y). Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if !(image.Point{x, y}.In(m.gray.Rect)) {
		return
	}
	m.gray.Pix[y*m.gray.Stride+x] = v
}

// IsForeground reports whether the pixel at (x, y) is non-zero.
func (m *Mask) IsForeground(x, y int) bool {
	return m.At(x, y) != Background
}

// ForegroundCount returns the number of non-zero pixels.
func (m *Mask) ForegroundCount() int {
	n := 0
	for _, v := range m.gray.Pix {
		if v != Background {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	return MaskFromGray(m.gray)
}

// Crop copies the given rectangle (clipped to the mask) into a new Mask.
func (m *Mask) Crop(r image.Rectangle) *Mask {
	r = r.Intersect(m.gray.Rect)
	if r.Empty() {
		return NewMask(0, 0)
	}
	return maskFromImage(imaging.Crop(m.gray, r))
}

// Gray returns a copy of the underlying grayscale image.
func (m *Mask) Gray() *image.Gray {
	return m.Clone().gray
}

// Pixels returns the intensities in row-major order as float64 values.
func (m *Mask) Pixels() []float64 {
	w, h := m.Width(), m.Height()
	out := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		row := m.gray.Pix[y*m.gray.Stride : y*m.gray.Stride+w]
		for _, v := range row {
			out = append(out, float64(v))
		}
	}
	return out
}

// Equal reports whether both masks have identical size and pixels.
func (m *Mask) Equal(o *Mask) bool {
	if m.Width() != o.Width() || m.Height() != o.Height() {
		return false
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}

// Image exposes the mask read-only for encoders and overlays.
func (m *Mask) Image() image.Image { return m.gray }

// MaskImageResult contains a mask encoded as base64 PNG.
type MaskImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes any image as a base64 PNG result.
func EncodePNG(img image.Image) (*MaskImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &MaskImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
