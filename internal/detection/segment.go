package detection

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/glyph-ocr/internal/imaging"
)

// Default glyph size filter. Regions must be strictly larger than both.
const (
	DefaultMinWidth  = 8
	DefaultMinHeight = 15
)

// GlyphCrop is one segmented glyph of the source line.
type GlyphCrop struct {
	// X is the left edge of the glyph in the source image. It drives reading
	// order and space inference.
	X int `json:"x"`

	// Bounds is the glyph's bounding box in source coordinates.
	Bounds image.Rectangle `json:"bounds"`

	// Mask is the source mask cropped to Bounds. It is a copy and may be
	// consumed freely.
	Mask *imaging.Mask `json:"-"`
}

// Width returns the raw (unnormalized) glyph width in pixels.
func (g GlyphCrop) Width() int { return g.Bounds.Dx() }

// Height returns the raw (unnormalized) glyph height in pixels.
func (g GlyphCrop) Height() int { return g.Bounds.Dy() }

// Segmenter splits a single line of text into glyph crops.
//
// MinWidth and MinHeight reject specks and rule fragments; they are tuned to
// the expected glyph scale of the input and should be adjusted along with it.
type Segmenter struct {
	MinWidth  int
	MinHeight int
}

// NewSegmenter returns a Segmenter with the default size filter.
func NewSegmenter() Segmenter {
	return Segmenter{MinWidth: DefaultMinWidth, MinHeight: DefaultMinHeight}
}

// Validate checks that the size filter is usable.
func (s Segmenter) Validate() error {
	if s.MinWidth < 0 || s.MinHeight < 0 {
		return fmt.Errorf("minimum glyph size %dx%d must not be negative", s.MinWidth, s.MinHeight)
	}
	return nil
}

// Accepts reports whether a region of the given size passes the size filter.
func (s Segmenter) Accepts(width, height int) bool {
	return width > s.MinWidth && height > s.MinHeight
}

// Segment extracts glyphs from mask in left-to-right order.
//
// Every external region whose bounding box passes the size filter becomes
// one GlyphCrop. The result is sorted by ascending X (stable, so regions
// sharing a left edge keep raster order). Only a single text line is
// supported; there is no line break detection. An empty mask yields an
// empty slice.
func (s Segmenter) Segment(mask *imaging.Mask) []GlyphCrop {
	regions := imaging.ExternalRegions(mask)

	glyphs := make([]GlyphCrop, 0, len(regions))
	for _, r := range regions {
		if !s.Accepts(r.Bounds.Dx(), r.Bounds.Dy()) {
			continue
		}
		glyphs = append(glyphs, GlyphCrop{
			X:      r.Bounds.Min.X,
			Bounds: r.Bounds,
			Mask:   mask.Crop(r.Bounds),
		})
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].X < glyphs[j].X
	})

	return glyphs
}

// Boxes returns the bounding boxes of glyphs, in order.
func Boxes(glyphs []GlyphCrop) []image.Rectangle {
	boxes := make([]image.Rectangle, len(glyphs))
	for i, g := range glyphs {
		boxes[i] = g.Bounds
	}
	return boxes
}

// SegmentationResult describes the glyphs found in an image.
type SegmentationResult struct {
	Glyphs  []GlyphBox               `json:"glyphs"`
	Count   int                      `json:"count"`
	Overlay *imaging.MaskImageResult `json:"overlay,omitempty"`
}

// GlyphBox is the serializable view of a GlyphCrop.
type GlyphBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Describe summarizes glyphs for callers that cannot hold masks, optionally
// rendering the boxes over src as a base64 PNG.
func Describe(src image.Image, glyphs []GlyphCrop, withOverlay bool) (*SegmentationResult, error) {
	result := &SegmentationResult{
		Glyphs: make([]GlyphBox, len(glyphs)),
		Count:  len(glyphs),
	}
	for i, g := range glyphs {
		result.Glyphs[i] = GlyphBox{
			X:      g.Bounds.Min.X,
			Y:      g.Bounds.Min.Y,
			Width:  g.Width(),
			Height: g.Height(),
		}
	}

	if withOverlay && src != nil {
		overlay, err := imaging.EncodePNG(imaging.BoxOverlay(src, Boxes(glyphs), true))
		if err != nil {
			return nil, err
		}
		result.Overlay = overlay
	}

	return result, nil
}
