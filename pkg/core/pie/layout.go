package pie

import "fmt"

// Descriptor is everything a drawing surface needs to paint one slice
// without further geometry.
type Descriptor struct {
	Index      int
	Name       string
	Value      float64
	StartAngle float64
	EndAngle   float64
	Share      float64
	Fill       string
	Path       string
	Label      Label
	Leader     *LeaderLine // nil for inline labels
}

// Layout is the immutable result of one layout pass. Coordinates are
// relative to the chart centre; renderers translate by (Width/2, Height/2).
type Layout struct {
	Width       float64
	Height      float64
	Radius      float64
	InnerRadius float64 // donut hole; 0 for a pie
	Margin      float64
	TextColor   string
	Slices      []Descriptor
	Warnings    []Warning
}

// External returns the number of slices labeled outside the ring.
func (l Layout) External() int {
	n := 0
	for _, d := range l.Slices {
		if d.Label.Placement == External {
			n++
		}
	}
	return n
}

// Option customizes a single Compute call.
type Option func(*options)

type options struct {
	colors ColorAssigner
}

// WithColorAssigner replaces the assigner selected by Config.ColorKey.
func WithColorAssigner(a ColorAssigner) Option {
	return func(o *options) { o.colors = a }
}

// Compute lays out entries as a pie or donut chart.
//
// The call is pure: identical inputs produce identical layouts, and
// concurrent calls share no state. It fails as a whole with an
// *InvalidEntryError for a negative or non-finite value, or with an
// INVALID_CONFIG error for a bad configuration.
func Compute(entries []Entry, cfg Config, opts ...Option) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	cfg = cfg.withDefaults()

	o := options{colors: NewColorAssigner(cfg.ColorKey, cfg.Palette)}
	for _, opt := range opts {
		opt(&o)
	}

	slices, err := ComputeSlices(entries)
	if err != nil {
		return Layout{}, err
	}
	fills := o.colors.AssignColors(entries)
	radii := NewRadii(cfg.Radius(), cfg.HoleRatio)

	out := Layout{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Radius:      radii.Radius,
		InnerRadius: radii.Ring.Inner,
		Margin:      cfg.Margin,
		TextColor:   cfg.TextColor,
		Slices:      make([]Descriptor, len(slices)),
	}

	stack, fan := labelStack{}, newLeaderFan()
	for i, s := range slices {
		placement := Classify(s.Share, cfg.EnableLeaderLines)

		var label Label
		label, stack = placeLabel(s, radii, cfg, placement, stack)

		var leader *LeaderLine
		if placement == External {
			var line LeaderLine
			line, fan = routeLeader(s, radii, fan)
			leader = &line
		}

		out.Slices[i] = Descriptor{
			Index:      s.Index,
			Name:       s.Name,
			Value:      s.Value,
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
			Share:      s.Share,
			Fill:       fills[i],
			Path:       radii.Ring.Path(s),
			Label:      label,
			Leader:     leader,
		}
	}

	switch {
	case len(entries) == 0:
		out.Warnings = append(out.Warnings, Warning{Code: WarnEmptyChart, Message: "no entries to chart"})
	case Total(entries) == 0:
		out.Warnings = append(out.Warnings, Warning{
			Code:    WarnDegenerateChart,
			Message: fmt.Sprintf("all %d values are zero; every slice has zero width", len(entries)),
		})
	}
	return out, nil
}
