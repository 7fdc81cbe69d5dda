package classify

import "fmt"

// Spacing policy names accepted by NewSpacingPolicy.
const (
	SpacingRelative = "relative"
	SpacingFixed    = "fixed"
)

// Default gap parameters.
const (
	DefaultGapFactor = 1.3
	DefaultGapPixels = 40
)

// Placement locates an accepted glyph for gap decisions.
type Placement struct {
	// X is the raw left edge in the source image.
	X int
	// Width is the raw segmented width.
	Width int
	// Canvas is the width of the normalized glyph, i.e. the canvas size.
	Canvas int
}

// SpacingPolicy decides whether a word space separates two consecutive
// accepted glyphs.
type SpacingPolicy interface {
	// Space reports whether a space belongs between prev and cur.
	Space(prev, cur Placement) bool
	// Name identifies the policy in logs and results.
	Name() string
}

// RelativeGap inserts a space when the left-edge advance from the previous
// glyph exceeds Factor times that glyph's normalized width. With the default
// 30px canvas and factor 1.3 the limit is 39px whatever the glyph's raw
// width, so narrow glyphs such as "I" or "1" do not split words.
type RelativeGap struct {
	Factor float64
}

func (g RelativeGap) Space(prev, cur Placement) bool {
	return float64(cur.X-prev.X) > g.Factor*float64(prev.Canvas)
}

func (g RelativeGap) Name() string { return SpacingRelative }

// FixedGap inserts a space when the blank run between the previous glyph's
// right edge and the current glyph's left edge exceeds Pixels.
type FixedGap struct {
	Pixels int
}

func (g FixedGap) Space(prev, cur Placement) bool {
	return cur.X-(prev.X+prev.Width) > g.Pixels
}

func (g FixedGap) Name() string { return SpacingFixed }

// NewSpacingPolicy builds a policy by name.
func NewSpacingPolicy(name string, factor float64, pixels int) (SpacingPolicy, error) {
	switch name {
	case SpacingRelative, "":
		if factor <= 0 {
			return nil, fmt.Errorf("relative gap factor %.2f must be positive", factor)
		}
		return RelativeGap{Factor: factor}, nil
	case SpacingFixed:
		if pixels < 0 {
			return nil, fmt.Errorf("fixed gap %d must not be negative", pixels)
		}
		return FixedGap{Pixels: pixels}, nil
	default:
		return nil, fmt.Errorf("unknown spacing policy %q", name)
	}
}
