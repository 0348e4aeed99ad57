package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

// KindPie is the only layout kind written by this version.
const KindPie = "pie"

// =============================================================================
// Layout - Serialization Format
// =============================================================================

// Layout is the serialization format of a computed pie layout.
//
// It carries every primitive a renderer needs (paths, fills, label anchors,
// leader polylines) so a stored layout renders identically without the
// original dataset. Coordinates are relative to the chart centre.
type Layout struct {
	Kind  string `json:"kind" bson:"kind"`
	Title string `json:"title,omitempty" bson:"title,omitempty"`

	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	Radius      float64 `json:"radius" bson:"radius"`
	InnerRadius float64 `json:"inner_radius,omitempty" bson:"inner_radius,omitempty"`
	Margin      float64 `json:"margin" bson:"margin"`
	TextColor   string  `json:"text_color" bson:"text_color"`

	Slices   []Slice   `json:"slices" bson:"slices"`
	Warnings []Warning `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// Slice is one serialized render descriptor.
type Slice struct {
	Index      int     `json:"index" bson:"index"`
	Name       string  `json:"name" bson:"name"`
	Value      float64 `json:"value" bson:"value"`
	StartAngle float64 `json:"start_angle" bson:"start_angle"`
	EndAngle   float64 `json:"end_angle" bson:"end_angle"`
	Share      float64 `json:"share" bson:"share"`
	Fill       string  `json:"fill" bson:"fill"`
	Path       string  `json:"path" bson:"path"`
	Label      Label   `json:"label" bson:"label"`
	Leader     []Point `json:"leader,omitempty" bson:"leader,omitempty"`
}

// Label is a placed slice label.
type Label struct {
	Text       string  `json:"text" bson:"text"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	TextAnchor string  `json:"text_anchor" bson:"text_anchor"`
	DY         float64 `json:"dy,omitempty" bson:"dy,omitempty"` // em
	Placement  string  `json:"placement" bson:"placement"`
	Color      string  `json:"color" bson:"color"`
}

// Point is a position relative to the chart centre.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Warning is a non-fatal layout advisory.
type Warning struct {
	Code    string `json:"code" bson:"code"`
	Message string `json:"message" bson:"message"`
}

// External returns the number of externally labeled slices.
func (l Layout) External() int {
	n := 0
	for _, s := range l.Slices {
		if s.Leader != nil {
			n++
		}
	}
	return n
}

// =============================================================================
// Conversion
// =============================================================================

// Export converts an engine layout to the serialization format.
func Export(l pie.Layout, title string) Layout {
	out := Layout{
		Kind:        KindPie,
		Title:       title,
		Width:       l.Width,
		Height:      l.Height,
		Radius:      l.Radius,
		InnerRadius: l.InnerRadius,
		Margin:      l.Margin,
		TextColor:   l.TextColor,
		Slices:      make([]Slice, len(l.Slices)),
	}
	for i, d := range l.Slices {
		s := Slice{
			Index:      d.Index,
			Name:       d.Name,
			Value:      d.Value,
			StartAngle: d.StartAngle,
			EndAngle:   d.EndAngle,
			Share:      d.Share,
			Fill:       d.Fill,
			Path:       d.Path,
			Label: Label{
				Text:       d.Label.Text,
				X:          d.Label.Anchor.X,
				Y:          d.Label.Anchor.Y,
				TextAnchor: d.Label.TextAnchor,
				DY:         d.Label.DY,
				Placement:  d.Label.Placement.String(),
				Color:      d.Label.Color,
			},
		}
		if d.Leader != nil {
			for _, p := range d.Leader.Points {
				s.Leader = append(s.Leader, Point{X: p.X, Y: p.Y})
			}
		}
		out.Slices[i] = s
	}
	for _, w := range l.Warnings {
		out.Warnings = append(out.Warnings, Warning{Code: string(w.Code), Message: w.Message})
	}
	return out
}

// Parse converts a serialized layout back to an engine layout.
//
// Returns an error if the kind is not "pie" (empty is accepted), a
// placement is unknown, or a leader line does not have exactly three points.
func Parse(layout Layout) (pie.Layout, error) {
	if layout.Kind != "" && layout.Kind != KindPie {
		return pie.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "invalid kind for pie layout: %q", layout.Kind)
	}

	l := pie.Layout{
		Width:       layout.Width,
		Height:      layout.Height,
		Radius:      layout.Radius,
		InnerRadius: layout.InnerRadius,
		Margin:      layout.Margin,
		TextColor:   layout.TextColor,
		Slices:      make([]pie.Descriptor, len(layout.Slices)),
	}
	for i, s := range layout.Slices {
		placement, err := parsePlacement(s.Label.Placement)
		if err != nil {
			return pie.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "slice %d", i)
		}
		d := pie.Descriptor{
			Index:      s.Index,
			Name:       s.Name,
			Value:      s.Value,
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
			Share:      s.Share,
			Fill:       s.Fill,
			Path:       s.Path,
			Label: pie.Label{
				Text:       s.Label.Text,
				Anchor:     pie.Point{X: s.Label.X, Y: s.Label.Y},
				TextAnchor: s.Label.TextAnchor,
				DY:         s.Label.DY,
				Placement:  placement,
				Color:      s.Label.Color,
			},
		}
		switch {
		case len(s.Leader) == 3:
			d.Leader = &pie.LeaderLine{}
			for j, p := range s.Leader {
				d.Leader.Points[j] = pie.Point{X: p.X, Y: p.Y}
			}
		case len(s.Leader) != 0:
			return pie.Layout{}, errors.New(errors.ErrCodeInvalidFormat,
				"slice %d: leader line has %d points, want 3", i, len(s.Leader))
		}
		l.Slices[i] = d
	}
	for _, w := range layout.Warnings {
		l.Warnings = append(l.Warnings, pie.Warning{Code: pie.WarningCode(w.Code), Message: w.Message})
	}
	return l, nil
}

func parsePlacement(s string) (pie.Placement, error) {
	switch s {
	case "", pie.Inline.String():
		return pie.Inline, nil
	case pie.External.String():
		return pie.External, nil
	}
	return 0, fmt.Errorf("unknown placement %q", s)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates the kind and the chart dimensions.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}

	if l.Kind == "" {
		l.Kind = KindPie
	}
	if l.Kind != KindPie {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout kind %q", l.Kind)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must have positive width and height")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeNotFound, err, "layout %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
