// Package palette provides the colour ranges and ordinal scales used to fill
// pie slices.
//
// A [Palette] is a validated list of colours. An [Ordinal] scale maps string
// keys onto a palette in first-seen order and wraps around when there are more
// keys than colours.
package palette

import (
	"github.com/matzehuels/piechart/pkg/errors"
)

// Palette is an ordered list of fill colours.
type Palette []string

// Default is the seven-colour palette used when no palette is configured.
var Default = Palette{
	"#6773f1",
	"#32325d",
	"#6162b5",
	"#6586f6",
	"#8b6ced",
	"#1b1b1b",
	"#212121",
}

// Validate reports an INVALID_CONFIG error for an empty palette and an
// INVALID_COLOR error for the first malformed colour.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "palette cannot be empty")
	}
	for i, c := range p {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "palette color %d", i)
		}
	}
	return nil
}

// At returns the colour at i, wrapping modulo the palette length.
// An empty palette falls back to Default.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		p = Default
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Clone returns a copy that does not share the backing array.
func (p Palette) Clone() Palette {
	return append(Palette(nil), p...)
}
