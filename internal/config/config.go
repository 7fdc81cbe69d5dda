// Package config loads recognition settings from defaults, an optional YAML
// file and GLYPHOCR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/glyph-ocr/internal/classify"
	"github.com/ironsheep/glyph-ocr/internal/detection"
	"github.com/ironsheep/glyph-ocr/internal/imaging"
)

// EnvPrefix is prepended to every environment variable, e.g.
// GLYPHOCR_CLASSIFY_ACCEPT_THRESHOLD.
const EnvPrefix = "GLYPHOCR"

// DefaultTemplateDir is where the template corpus is looked for.
const DefaultTemplateDir = "templates"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// BinarizeConfig holds live-input binarization settings.
type BinarizeConfig struct {
	Threshold  int `mapstructure:"threshold"`
	KernelSize int `mapstructure:"kernel_size"`
}

// SegmentConfig holds the glyph size filter.
type SegmentConfig struct {
	MinWidth  int `mapstructure:"min_width"`
	MinHeight int `mapstructure:"min_height"`
}

// NormalizeConfig holds the comparison canvas size.
type NormalizeConfig struct {
	CanvasSize int `mapstructure:"canvas_size"`
}

// TemplatesConfig locates and binarizes the template corpus.
type TemplatesConfig struct {
	Dir       string `mapstructure:"dir"`
	Threshold int    `mapstructure:"threshold"`
}

// ClassifyConfig holds matching and spacing settings.
type ClassifyConfig struct {
	AcceptThreshold float64 `mapstructure:"accept_threshold"`
	Spacing         string  `mapstructure:"spacing"`
	GapFactor       float64 `mapstructure:"gap_factor"`
	GapPixels       int     `mapstructure:"gap_pixels"`
	GeometryFilter  bool    `mapstructure:"geometry_filter"`
	Workers         int     `mapstructure:"workers"`
}

// Config is the full set of tunables.
type Config struct {
	Binarize  BinarizeConfig  `mapstructure:"binarize"`
	Segment   SegmentConfig   `mapstructure:"segment"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Classify  ClassifyConfig  `mapstructure:"classify"`
	LogLevel  string          `mapstructure:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Binarize: BinarizeConfig{
			Threshold:  imaging.DefaultThreshold,
			KernelSize: imaging.DefaultKernelSize,
		},
		Segment: SegmentConfig{
			MinWidth:  detection.DefaultMinWidth,
			MinHeight: detection.DefaultMinHeight,
		},
		Normalize: NormalizeConfig{
			CanvasSize: imaging.DefaultCanvasSize,
		},
		Templates: TemplatesConfig{
			Dir:       DefaultTemplateDir,
			Threshold: imaging.DefaultTemplateThreshold,
		},
		Classify: ClassifyConfig{
			AcceptThreshold: classify.DefaultAcceptThreshold,
			Spacing:         classify.SpacingRelative,
			GapFactor:       classify.DefaultGapFactor,
			GapPixels:       classify.DefaultGapPixels,
			Workers:         runtime.NumCPU(),
		},
		LogLevel: "info",
	}
}

// SetDefaults registers every default with v so that environment variables
// and config files can override individual keys.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("binarize.threshold", d.Binarize.Threshold)
	v.SetDefault("binarize.kernel_size", d.Binarize.KernelSize)
	v.SetDefault("segment.min_width", d.Segment.MinWidth)
	v.SetDefault("segment.min_height", d.Segment.MinHeight)
	v.SetDefault("normalize.canvas_size", d.Normalize.CanvasSize)
	v.SetDefault("templates.dir", d.Templates.Dir)
	v.SetDefault("templates.threshold", d.Templates.Threshold)
	v.SetDefault("classify.accept_threshold", d.Classify.AcceptThreshold)
	v.SetDefault("classify.spacing", d.Classify.Spacing)
	v.SetDefault("classify.gap_factor", d.Classify.GapFactor)
	v.SetDefault("classify.gap_pixels", d.Classify.GapPixels)
	v.SetDefault("classify.geometry_filter", d.Classify.GeometryFilter)
	v.SetDefault("classify.workers", d.Classify.Workers)
	v.SetDefault("log_level", d.LogLevel)
}

// NewViper returns a viper instance with defaults and environment binding
// configured. When file is non-empty it is read as the config file.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is NewViper followed by FromViper.
func Load(file string) (Config, error) {
	v, err := NewViper(file)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// Validate rejects values no stage can work with.
func (c Config) Validate() error {
	if err := c.Binarizer().Validate(); err != nil {
		return fmt.Errorf("%w: binarize: %v", ErrInvalidConfig, err)
	}
	if err := c.TemplateBinarizer().Validate(); err != nil {
		return fmt.Errorf("%w: templates: %v", ErrInvalidConfig, err)
	}
	if err := c.Segmenter().Validate(); err != nil {
		return fmt.Errorf("%w: segment: %v", ErrInvalidConfig, err)
	}
	if err := c.Normalizer().Validate(); err != nil {
		return fmt.Errorf("%w: normalize: %v", ErrInvalidConfig, err)
	}
	if c.Classify.AcceptThreshold < -1 || c.Classify.AcceptThreshold > 1 {
		return fmt.Errorf("%w: classify: accept threshold %.2f outside [-1,1]",
			ErrInvalidConfig, c.Classify.AcceptThreshold)
	}
	if _, err := c.SpacingPolicy(); err != nil {
		return fmt.Errorf("%w: classify: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Binarizer returns the live-input binarizer.
func (c Config) Binarizer() imaging.Binarizer {
	return imaging.Binarizer{Threshold: c.Binarize.Threshold, KernelSize: c.Binarize.KernelSize}
}

// TemplateBinarizer returns the template binarizer. It shares the dilation
// kernel with live input so stroke thickness matches.
func (c Config) TemplateBinarizer() imaging.Binarizer {
	return imaging.Binarizer{Threshold: c.Templates.Threshold, KernelSize: c.Binarize.KernelSize}
}

// Segmenter returns the configured segmenter.
func (c Config) Segmenter() detection.Segmenter {
	return detection.Segmenter{MinWidth: c.Segment.MinWidth, MinHeight: c.Segment.MinHeight}
}

// Normalizer returns the configured normalizer.
func (c Config) Normalizer() imaging.Normalizer {
	return imaging.Normalizer{Size: c.Normalize.CanvasSize}
}

// SpacingPolicy returns the configured gap policy.
func (c Config) SpacingPolicy() (classify.SpacingPolicy, error) {
	return classify.NewSpacingPolicy(c.Classify.Spacing, c.Classify.GapFactor, c.Classify.GapPixels)
}
