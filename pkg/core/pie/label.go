package pie

import "fmt"

// SmallSliceThreshold is the share of the circle, in percent, a slice must
// exceed to be labeled inline when leader lines are enabled.
const SmallSliceThreshold = 5.0

// Placement says where a slice's label goes.
type Placement int

const (
	// Inline labels sit on the slice itself.
	Inline Placement = iota
	// External labels sit at the chart edge, joined by a leader line.
	External
)

func (p Placement) String() string {
	if p == External {
		return "external"
	}
	return "inline"
}

// Classify decides label placement from a slice share (0-1) and whether
// leader lines are enabled. It is the single decision point used for both
// label placement and leader line routing.
func Classify(share float64, leaderLines bool) Placement {
	if !leaderLines || share*100 > SmallSliceThreshold {
		return Inline
	}
	return External
}

// Text anchors understood by SVG renderers.
const (
	AnchorMiddle = "middle"
	AnchorStart  = "start"
	AnchorEnd    = "end"
)

// Label is the placed text of one slice.
type Label struct {
	Text       string
	Anchor     Point
	TextAnchor string
	DY         float64 // vertical offset in em; 0 for inline labels
	Placement  Placement
	Color      string
}

// FormatLabel renders "name (value)" or "name (value%)".
func FormatLabel(e Entry, percent bool) string {
	suffix := ""
	if percent {
		suffix = "%"
	}
	return fmt.Sprintf("%s (%s%s)", e.Name, FormatValue(e.Value), suffix)
}

// Stacking offsets of external labels, in em.
const (
	labelFirstDY = 0.35
	labelStepDY  = 1.0
)

// labelStack counts the external labels placed so far in one layout pass.
type labelStack struct {
	placed int
}

// next returns the vertical offset of the next external label and the
// advanced stack.
func (s labelStack) next() (float64, labelStack) {
	dy := labelFirstDY + float64(s.placed)*labelStepDY
	return dy, labelStack{placed: s.placed + 1}
}

// placeLabel positions the label of s. Only external placements consume the
// stack.
func placeLabel(s Slice, r Radii, cfg Config, p Placement, stack labelStack) (Label, labelStack) {
	text := FormatLabel(s.Entry, cfg.ShowAsPercentage)
	if p == Inline {
		return Label{
			Text:       text,
			Anchor:     r.Label.Centroid(s),
			TextAnchor: AnchorMiddle,
			Placement:  Inline,
			Color:      cfg.TextColor,
		}, stack
	}

	anchor := r.Outer.Centroid(s)
	anchor.X = r.Radius * externalLabelEdge * s.side()

	textAnchor := AnchorEnd
	if s.RightHalf() {
		textAnchor = AnchorStart
	}

	dy, stack := stack.next()
	return Label{
		Text:       text,
		Anchor:     anchor,
		TextAnchor: textAnchor,
		DY:         dy,
		Placement:  External,
		Color:      ExternalTextColor,
	}, stack
}
