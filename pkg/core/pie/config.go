package pie

import (
	"math"

	"github.com/matzehuels/piechart/pkg/core/pie/palette"
	"github.com/matzehuels/piechart/pkg/errors"
)

// Defaults match the dimensions of the original chart component.
const (
	DefaultWidth     = 750.0
	DefaultHeight    = 450.0
	DefaultMargin    = 25.0
	DefaultTextColor = "#ffffff"

	// ExternalTextColor is used for labels placed outside the ring, where
	// the configured text colour (chosen for contrast on slice fills) would
	// sit on the background.
	ExternalTextColor = "#000000"
)

// Config is the immutable configuration of one layout call.
type Config struct {
	Width  float64
	Height float64
	Margin float64

	// TextColor fills inline labels.
	TextColor string

	// ShowAsPercentage appends "%" to label values.
	ShowAsPercentage bool

	// EnableLeaderLines allows small slices to be labeled outside the ring.
	// When false every slice is labeled inline.
	EnableLeaderLines bool

	// HoleRatio is the donut hole radius as a fraction of the chart radius.
	// 0 draws a pie.
	HoleRatio float64

	Palette  palette.Palette
	ColorKey ColorKey
}

// DefaultConfig returns the configuration of the original component: a
// 750×450 pie with white inline labels and leader lines disabled.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Margin:    DefaultMargin,
		TextColor: DefaultTextColor,
		Palette:   palette.Default.Clone(),
		ColorKey:  ColorKeyValue,
	}
}

// Radius returns min(Width, Height)/2 - Margin.
func (c Config) Radius() float64 {
	return math.Min(c.Width, c.Height)/2 - c.Margin
}

// Validate checks the configuration once, before any slice is laid out.
// An empty palette or colour key is accepted and resolved to its default.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"width", c.Width}, {"height", c.Height}, {"margin", c.Margin}, {"hole ratio", c.HoleRatio}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite", f.name)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin cannot be negative, got %v", c.Margin)
	}
	if r := c.Radius(); r <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin %v leaves no room for a %vx%v chart", c.Margin, c.Width, c.Height)
	}
	if c.HoleRatio < 0 || c.HoleRatio >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "hole ratio must be in [0, 1), got %v", c.HoleRatio)
	}
	if c.TextColor != "" {
		if err := errors.ValidateColor(c.TextColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "text color")
		}
	}
	if len(c.Palette) > 0 {
		if err := c.Palette.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
		}
	}
	switch c.ColorKey {
	case "", ColorKeyValue, ColorKeyIndex:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown color key %q (must be value or index)", c.ColorKey)
	}
	return nil
}

// withDefaults fills optional fields left empty.
func (c Config) withDefaults() Config {
	if c.TextColor == "" {
		c.TextColor = DefaultTextColor
	}
	if len(c.Palette) == 0 {
		c.Palette = palette.Default
	}
	if c.ColorKey == "" {
		c.ColorKey = ColorKeyValue
	}
	return c
}
