package pie

import (
	"math"
	"strconv"
	"strings"
)

const epsilon = 1e-12

// Point is a position relative to the chart centre.
type Point struct {
	X, Y float64
}

// polar returns the point at radius r and angle a (clockwise from 12 o'clock).
func polar(r, a float64) Point {
	return Point{X: r * math.Sin(a), Y: -r * math.Cos(a)}
}

// Arc generates ring geometry between an inner and an outer radius.
// Inner 0 gives pie wedges; Inner > 0 gives donut segments.
type Arc struct {
	Inner, Outer float64
}

// Centroid returns the point at the slice's mid-angle, halfway between the
// inner and outer radius.
func (a Arc) Centroid(s Slice) Point {
	return polar((a.Inner+a.Outer)/2, s.MidAngle())
}

// Path returns the SVG path data of the slice's ring segment, swept
// clockwise from StartAngle to EndAngle.
//
// A full circle is drawn as two half arcs, with the inner ring wound in the
// opposite direction so the hole stays empty. A zero-width slice yields a
// zero-area path.
func (a Arc) Path(s Slice) string {
	r0, r1 := math.Min(a.Inner, a.Outer), math.Max(a.Inner, a.Outer)
	a0, a1 := s.StartAngle, s.EndAngle
	da := a1 - a0

	var p pathBuilder
	if r1 <= epsilon {
		p.moveTo(Point{})
		p.close()
		return p.String()
	}

	if da >= Tau-epsilon {
		p.moveTo(polar(r1, a0))
		p.arcTo(r1, true, true, polar(r1, a0+math.Pi))
		p.arcTo(r1, true, true, polar(r1, a0))
		if r0 > epsilon {
			p.moveTo(polar(r0, a0))
			p.arcTo(r0, true, false, polar(r0, a0+math.Pi))
			p.arcTo(r0, true, false, polar(r0, a0))
		}
		p.close()
		return p.String()
	}

	large := da > math.Pi
	p.moveTo(polar(r1, a0))
	p.arcTo(r1, large, true, polar(r1, a1))
	if r0 > epsilon {
		p.lineTo(polar(r0, a1))
		p.arcTo(r0, large, false, polar(r0, a0))
	} else {
		p.lineTo(Point{})
	}
	p.close()
	return p.String()
}

// Radii holds the arcs derived once per layout from the chart radius.
type Radii struct {
	Radius float64
	Ring   Arc // painted slice
	Label  Arc // inline label anchors
	Leader Arc // leader line start points
	Outer  Arc // just outside the ring: leader bends and external labels
}

// Radius ratios and offsets shared by every slice.
const (
	labelInnerRadius  = 50.0
	leaderInnerRatio  = 0.5
	leaderOuterRatio  = 0.8
	outerArcRatio     = 0.9
	externalLabelEdge = 0.99
)

// NewRadii derives the per-layout arcs from the chart radius and the donut
// hole ratio.
func NewRadii(radius, holeRatio float64) Radii {
	return Radii{
		Radius: radius,
		Ring:   Arc{Inner: radius * holeRatio, Outer: radius},
		Label:  Arc{Inner: labelInnerRadius, Outer: radius},
		Leader: Arc{Inner: radius * leaderInnerRatio, Outer: radius * leaderOuterRatio},
		Outer:  Arc{Inner: radius * outerArcRatio, Outer: radius * outerArcRatio},
	}
}

// pathBuilder writes compact SVG path data.
type pathBuilder struct {
	b strings.Builder
}

func (p *pathBuilder) moveTo(pt Point) {
	p.b.WriteByte('M')
	p.point(pt)
}

func (p *pathBuilder) lineTo(pt Point) {
	p.b.WriteByte('L')
	p.point(pt)
}

func (p *pathBuilder) arcTo(r float64, large, sweep bool, pt Point) {
	p.b.WriteByte('A')
	p.b.WriteString(FormatNumber(r))
	p.b.WriteByte(',')
	p.b.WriteString(FormatNumber(r))
	p.b.WriteString(",0,")
	p.b.WriteString(flag(large))
	p.b.WriteByte(',')
	p.b.WriteString(flag(sweep))
	p.b.WriteByte(',')
	p.point(pt)
}

func (p *pathBuilder) close() { p.b.WriteByte('Z') }

func (p *pathBuilder) point(pt Point) {
	p.b.WriteString(FormatNumber(pt.X))
	p.b.WriteByte(',')
	p.b.WriteString(FormatNumber(pt.Y))
}

func (p *pathBuilder) String() string { return p.b.String() }

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatNumber renders a coordinate rounded to three decimals, without
// trailing zeros and without negative zero.
func FormatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
