// Package classify matches segmented glyphs against a template library and
// assembles the recognized text.
package classify

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/glyph-ocr/internal/detection"
	"github.com/ironsheep/glyph-ocr/internal/imaging"
	"github.com/ironsheep/glyph-ocr/internal/logging"
	"github.com/ironsheep/glyph-ocr/internal/templates"
)

// DefaultAcceptThreshold is the minimum score (exclusive) for a match to be
// emitted.
const DefaultAcceptThreshold = 0.35

// NoTextDetected is what Result.String reports when nothing was accepted.
const NoTextDetected = "No text detected"

// ErrCanvasMismatch is returned when the library was normalized to a
// different canvas than the classifier uses.
var ErrCanvasMismatch = errors.New("template canvas size does not match classifier canvas size")

// Options configures a Classifier.
type Options struct {
	Normalizer      imaging.Normalizer
	AcceptThreshold float64
	Spacing         SpacingPolicy
	GeometryFilter  bool
	Workers         int
}

// DefaultOptions returns the default canvas, a 0.35 acceptance threshold and
// the relative (1.3x canvas width) spacing policy.
func DefaultOptions() Options {
	return Options{
		Normalizer:      imaging.NewNormalizer(),
		AcceptThreshold: DefaultAcceptThreshold,
		Spacing:         RelativeGap{Factor: DefaultGapFactor},
		Workers:         runtime.NumCPU(),
	}
}

// Classifier turns glyph crops into text. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	lib  *templates.Library
	opts Options
}

// New creates a classifier over lib. The library canvas must match the
// classifier's normalizer; otherwise every comparison would be between
// differently sized images.
func New(lib *templates.Library, opts Options) (*Classifier, error) {
	if lib == nil {
		return nil, errors.New("template library is nil")
	}
	if err := opts.Normalizer.Validate(); err != nil {
		return nil, err
	}
	if lib.CanvasSize() != opts.Normalizer.Size {
		return nil, fmt.Errorf("%w: library %d, classifier %d",
			ErrCanvasMismatch, lib.CanvasSize(), opts.Normalizer.Size)
	}
	if opts.Spacing == nil {
		opts.Spacing = RelativeGap{Factor: DefaultGapFactor}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Classifier{lib: lib, opts: opts}, nil
}

// Decision is the outcome for one glyph.
type Decision struct {
	// Label is the best matching template label, empty when the library
	// offered no candidate.
	Label string `json:"label,omitempty"`

	// X and Width locate the raw glyph in the source image.
	X     int `json:"x"`
	Width int `json:"width"`

	// Score is the best similarity found.
	Score float64 `json:"score"`

	// Accepted is true when Score cleared the acceptance threshold.
	Accepted bool `json:"accepted"`

	// SpaceBefore is true when a space was emitted ahead of this glyph.
	SpaceBefore bool `json:"space_before,omitempty"`
}

// Result is a completed recognition.
type Result struct {
	// Glyphs holds one decision per input glyph, in ascending X order,
	// rejected glyphs included.
	Glyphs []Decision `json:"glyphs"`

	// Text is the accepted labels with inferred spaces. Empty when nothing
	// was accepted.
	Text string `json:"text"`

	// Spacing names the gap policy that produced Text.
	Spacing string `json:"spacing"`
}

// Accepted returns the accepted decisions in reading order.
func (r Result) Accepted() []Decision {
	out := make([]Decision, 0, len(r.Glyphs))
	for _, d := range r.Glyphs {
		if d.Accepted {
			out = append(out, d)
		}
	}
	return out
}

// Found reports whether at least one glyph was accepted.
func (r Result) Found() bool {
	return r.Text != ""
}

// String returns the recognized text, or NoTextDetected when nothing was
// accepted.
func (r Result) String() string {
	if !r.Found() {
		return NoTextDetected
	}
	return r.Text
}

// Recognize classifies glyphs and joins the accepted labels.
//
// Glyphs are scored independently (and concurrently, up to Workers at a
// time); the text is then assembled in ascending X regardless of scoring
// order. A glyph whose best score does not exceed the acceptance threshold
// is dropped without a placeholder and does not count as the previous glyph
// for spacing. An empty library rejects everything.
func (c *Classifier) Recognize(glyphs []detection.GlyphCrop) Result {
	ordered := make([]detection.GlyphCrop, len(glyphs))
	copy(ordered, glyphs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].X < ordered[j].X
	})

	entries := c.lib.Entries()
	decisions := make([]Decision, len(ordered))

	var g errgroup.Group
	g.SetLimit(c.opts.Workers)
	for i := range ordered {
		i := i
		g.Go(func() error {
			decisions[i] = c.classify(ordered[i], entries)
			return nil
		})
	}
	_ = g.Wait()

	var text strings.Builder
	var prev *Placement
	for i := range decisions {
		d := &decisions[i]
		if !d.Accepted {
			continue
		}
		cur := Placement{X: d.X, Width: d.Width, Canvas: c.opts.Normalizer.Size}
		if prev != nil && c.opts.Spacing.Space(*prev, cur) {
			text.WriteByte(' ')
			d.SpaceBefore = true
		}
		text.WriteString(d.Label)
		prev = &cur
	}

	result := Result{
		Glyphs:  decisions,
		Text:    text.String(),
		Spacing: c.opts.Spacing.Name(),
	}
	logging.Debug("Recognition complete",
		"glyphs", len(decisions),
		"accepted", len(result.Accepted()),
		"text", result.Text)
	return result
}

// classify scores one glyph against the candidate entries.
func (c *Classifier) classify(glyph detection.GlyphCrop, entries []templates.Entry) Decision {
	d := Decision{X: glyph.X, Width: glyph.Width()}
	if len(entries) == 0 {
		return d
	}

	if c.opts.GeometryFilter {
		entries = geometryCandidates(glyph.Width(), glyph.Height(), entries)
	}

	// A crop without a mask scores as a blank glyph.
	mask := glyph.Mask
	if mask == nil {
		mask = imaging.NewMask(0, 0)
	}
	normalized := c.opts.Normalizer.Normalize(mask)

	found := false
	for _, e := range entries {
		score, err := Correlate(normalized, e.Mask)
		if err != nil {
			logging.Warn("Skipping template", "label", e.Label, "error", err)
			continue
		}
		// Strictly greater keeps the first entry among equal scores.
		if !found || score > d.Score {
			d.Label = e.Label
			d.Score = score
			found = true
		}
	}

	d.Accepted = found && d.Score > c.opts.AcceptThreshold
	logging.Debug("Glyph scored",
		"x", d.X,
		"label", d.Label,
		"score", d.Score,
		"accepted", d.Accepted)
	return d
}
