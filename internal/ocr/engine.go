package ocr

import (
	"fmt"
	"image"

	"github.com/ironsheep/glyph-ocr/internal/classify"
	"github.com/ironsheep/glyph-ocr/internal/config"
	"github.com/ironsheep/glyph-ocr/internal/detection"
	"github.com/ironsheep/glyph-ocr/internal/imaging"
	"github.com/ironsheep/glyph-ocr/internal/logging"
	"github.com/ironsheep/glyph-ocr/internal/templates"
)

// NoTextDetected is reported instead of an empty string when a run
// completed but accepted no glyph.
const NoTextDetected = classify.NoTextDetected

// Engine runs the full recognition pipeline:
//
//	image -> Binarizer -> mask -> Segmenter -> glyphs -> Classifier -> text
//
// The Classifier normalizes each glyph with the same Normalizer the template
// library was built with. An Engine is immutable and safe for concurrent use.
type Engine struct {
	binarizer  imaging.Binarizer
	segmenter  detection.Segmenter
	classifier *classify.Classifier
	library    *templates.Library
}

// NewEngine wires the stages described by cfg around an existing library.
func NewEngine(cfg config.Config, lib *templates.Library) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spacing, err := cfg.SpacingPolicy()
	if err != nil {
		return nil, err
	}

	classifier, err := classify.New(lib, classify.Options{
		Normalizer:      cfg.Normalizer(),
		AcceptThreshold: cfg.Classify.AcceptThreshold,
		Spacing:         spacing,
		GeometryFilter:  cfg.Classify.GeometryFilter,
		Workers:         cfg.Classify.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &Engine{
		binarizer:  cfg.Binarizer(),
		segmenter:  cfg.Segmenter(),
		classifier: classifier,
		library:    lib,
	}, nil
}

// LoadEngine builds the template library from cfg.Templates.Dir and wires
// an Engine around it. A missing template folder yields an engine that
// accepts nothing.
func LoadEngine(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lib, err := templates.Build(cfg.Templates.Dir, templates.Options{
		Binarizer:  cfg.TemplateBinarizer(),
		Normalizer: cfg.Normalizer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build template library: %w", err)
	}
	return NewEngine(cfg, lib)
}

// Library returns the template library the engine matches against.
func (e *Engine) Library() *templates.Library { return e.library }

// Binarize runs the first stage only.
func (e *Engine) Binarize(img image.Image) *imaging.Mask {
	return e.binarizer.Binarize(img)
}

// Segment runs binarization and segmentation.
func (e *Engine) Segment(img image.Image) []detection.GlyphCrop {
	return e.segmenter.Segment(e.Binarize(img))
}

// RecognizeImage runs the whole pipeline on a decoded image. It never
// fails: low-confidence glyphs and an empty library only shape the result.
func (e *Engine) RecognizeImage(img image.Image) classify.Result {
	glyphs := e.Segment(img)
	logging.Debug("Segmented input", "glyphs", len(glyphs))
	return e.classifier.Recognize(glyphs)
}

// RecognizeFile decodes path and recognizes it. A missing or undecodable
// file aborts the run with *imaging.LoadError and no partial result.
func (e *Engine) RecognizeFile(path string) (classify.Result, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return classify.Result{}, err
	}
	result := e.RecognizeImage(img)
	logging.Info("Recognized image", "path", path, "text", result.String())
	return result, nil
}
