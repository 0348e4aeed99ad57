package pie

import (
	"github.com/matzehuels/piechart/pkg/core/pie/palette"
)

// ColorAssigner resolves one fill colour per entry. Implementations must be
// pure: the same entries always yield the same colours. An entry's explicit
// Color always wins over the palette.
type ColorAssigner interface {
	AssignColors(entries []Entry) []string
}

// ColorKey selects how palette colours are keyed.
type ColorKey string

const (
	// ColorKeyValue keys the palette by the entry value rendered as text, so
	// entries with equal values share a colour.
	ColorKeyValue ColorKey = "value"

	// ColorKeyIndex keys the palette by entry position.
	ColorKeyIndex ColorKey = "index"
)

// ValueKeyedColors assigns palette colours through an ordinal scale whose
// domain is every entry's value text in first-seen order. Entries with
// explicit colours still occupy their domain slot.
type ValueKeyedColors struct {
	Palette palette.Palette
}

// AssignColors implements ColorAssigner.
func (c ValueKeyedColors) AssignColors(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = FormatValue(e.Value)
	}
	scale := palette.NewOrdinal(c.Palette, keys...)

	colors := make([]string, len(entries))
	for i, e := range entries {
		if e.Color != "" {
			colors[i] = e.Color
			continue
		}
		colors[i] = scale.Color(keys[i])
	}
	return colors
}

// IndexKeyedColors assigns palette colours by position, wrapping around.
type IndexKeyedColors struct {
	Palette palette.Palette
}

// AssignColors implements ColorAssigner.
func (c IndexKeyedColors) AssignColors(entries []Entry) []string {
	colors := make([]string, len(entries))
	for i, e := range entries {
		if e.Color != "" {
			colors[i] = e.Color
			continue
		}
		colors[i] = c.Palette.At(i)
	}
	return colors
}

// NewColorAssigner returns the assigner for key. Unknown keys fall back to
// value keying.
func NewColorAssigner(key ColorKey, p palette.Palette) ColorAssigner {
	if key == ColorKeyIndex {
		return IndexKeyedColors{Palette: p}
	}
	return ValueKeyedColors{Palette: p}
}
