// Package pipeline provides the layout → render pipeline for piechart.
//
// The CLI and the HTTP API both run charts through this package, so defaults,
// validation, caching and logging behave the same at every entry point.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: validate the dataset and compute slice geometry, colours and
//     label placement with [pie.Compute]
//  2. Render: draw the layout in one or more formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    LeaderLines: true,
//	    Formats:     []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.GenerateLayout(ctx, ds, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/piechart/pkg/cache"
	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/core/pie/palette"
	"github.com/matzehuels/piechart/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Title overrides the dataset title.
	Title string `json:"title,omitempty"`

	// Layout options. Zero values select the defaults of pie.DefaultConfig;
	// Margin is a pointer because 0 is a meaningful margin.
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Margin      *float64 `json:"margin,omitempty"`
	TextColor   string   `json:"text_color,omitempty"`
	Percentage  bool     `json:"percentage,omitempty"`
	LeaderLines bool     `json:"leader_lines,omitempty"`
	HoleRatio   float64  `json:"hole_ratio,omitempty"`
	Palette     []string `json:"palette,omitempty"`
	ColorKey    string   `json:"color_key,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	ChartID  string   `json:"chart_id,omitempty"`
	FontSize float64  `json:"font_size,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // PNG only

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the dataset, title included.
	DatasetHash string

	// Layout is the serializable layout.
	Layout chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entries    int
	External   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero layout fields from pie.DefaultConfig.
func (o *Options) SetLayoutDefaults() {
	def := pie.DefaultConfig()
	if o.Width == 0 {
		o.Width = def.Width
	}
	if o.Height == 0 {
		o.Height = def.Height
	}
	if o.Margin == nil {
		m := def.Margin
		o.Margin = &m
	}
	if o.TextColor == "" {
		o.TextColor = def.TextColor
	}
	if o.ColorKey == "" {
		o.ColorKey = string(def.ColorKey)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies layout defaults and validates the resulting
// chart configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Config().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font size cannot be negative, got %v", o.FontSize)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale cannot be negative, got %v", o.Scale)
	}
	return nil
}

// Config returns the layout configuration described by the options.
func (o *Options) Config() pie.Config {
	cfg := pie.Config{
		Width:             o.Width,
		Height:            o.Height,
		TextColor:         o.TextColor,
		ShowAsPercentage:  o.Percentage,
		EnableLeaderLines: o.LeaderLines,
		HoleRatio:         o.HoleRatio,
		Palette:           palette.Palette(slices.Clone(o.Palette)),
		ColorKey:          pie.ColorKey(o.ColorKey),
	}
	if o.Margin != nil {
		cfg.Margin = *o.Margin
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.Config()
	return cache.LayoutKeyOpts{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Margin:      cfg.Margin,
		TextColor:   cfg.TextColor,
		Percentage:  cfg.ShowAsPercentage,
		LeaderLines: cfg.EnableLeaderLines,
		HoleRatio:   cfg.HoleRatio,
		Palette:     o.Palette,
		ColorKey:    o.ColorKey,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// chartID is the resolved element id prefix.
func (o *Options) ArtifactKeyOpts(format, chartID string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.ChartID = chartID
		k.FontSize = o.FontSize
	case FormatPNG:
		k.FontSize = o.FontSize
		k.Scale = o.Scale
	}
	return k
}

// WithTitle returns ds with its title replaced by the Title option, if set.
func (o *Options) WithTitle(ds chart.Dataset) chart.Dataset {
	if o.Title != "" {
		ds.Title = o.Title
	}
	return ds
}
