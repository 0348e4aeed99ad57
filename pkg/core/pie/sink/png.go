package sink

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	fontSize   float64
	background string
	stroke     string
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGFontSize sets the label font size in chart units.
func WithPNGFontSize(px float64) PNGOption {
	return func(r *pngRenderer) { r.fontSize = px }
}

// WithBackground fills the canvas before drawing. An empty colour leaves it
// transparent.
func WithBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

var (
	fontOnce sync.Once
	regular  *truetype.Font
	fontErr  error
)

func regularFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		regular, fontErr = truetype.Parse(goregular.TTF)
	})
	return regular, fontErr
}

// RenderPNG rasterizes the layout natively, without an SVG round trip.
func RenderPNG(l pie.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		scale:      2.0,
		fontSize:   DefaultFontSize,
		background: "#ffffff",
		stroke:     DefaultStroke,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive, got %v", r.scale)
	}

	f, err := regularFont()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}

	w := int(math.Ceil(l.Width * r.scale))
	h := int(math.Ceil(l.Height * r.scale))
	dc := gg.NewContext(w, h)

	if r.background != "" {
		bg, err := parseColor(r.background)
		if err != nil {
			return nil, err
		}
		dc.SetColor(bg)
		dc.Clear()
	}

	dc.Scale(r.scale, r.scale)
	dc.Translate(l.Width/2, l.Height/2)

	if err := r.drawSlices(dc, l); err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: r.fontSize}))
	if err := r.drawLabels(dc, l); err != nil {
		return nil, err
	}
	drawLeaders(dc, l)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// gg measures angles from 3 o'clock; layout angles start at 12.
const quarterTurn = math.Pi / 2

// fullTurnTolerance absorbs rounding in slices that cover the whole circle.
const fullTurnTolerance = 1e-9

func (r pngRenderer) drawSlices(dc *gg.Context, l pie.Layout) error {
	stroke, err := parseColor(r.stroke)
	if err != nil {
		return err
	}
	for _, d := range l.Slices {
		if d.EndAngle == d.StartAngle {
			continue
		}
		fill, err := parseColor(d.Fill)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "slice %d", d.Index)
		}

		if d.EndAngle-d.StartAngle >= pie.Tau-fullTurnTolerance {
			traceRing(dc, l)
		} else {
			traceSector(dc, l, d)
		}

		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(stroke)
		dc.SetLineWidth(DefaultStrokeWidth)
		dc.Stroke()
	}
	return nil
}

// traceRing outlines a slice spanning the full circle as closed circles, so
// no radial edge is stroked. The hole is cut with the even-odd rule.
func traceRing(dc *gg.Context, l pie.Layout) {
	dc.DrawCircle(0, 0, l.Radius)
	if l.InnerRadius > 0 {
		dc.DrawCircle(0, 0, l.InnerRadius)
	}
	dc.SetFillRule(gg.FillRuleEvenOdd)
}

func traceSector(dc *gg.Context, l pie.Layout, d pie.Descriptor) {
	a0, a1 := d.StartAngle-quarterTurn, d.EndAngle-quarterTurn
	dc.NewSubPath()
	dc.DrawArc(0, 0, l.Radius, a0, a1)
	if l.InnerRadius > 0 {
		dc.DrawArc(0, 0, l.InnerRadius, a1, a0)
	} else {
		dc.LineTo(0, 0)
	}
	dc.ClosePath()
	dc.SetFillRule(gg.FillRuleWinding)
}

func (r pngRenderer) drawLabels(dc *gg.Context, l pie.Layout) error {
	for _, d := range l.Slices {
		lb := d.Label
		c, err := parseColor(lb.Color)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "label %d", d.Index)
		}
		dc.SetColor(c)
		y := lb.Anchor.Y + lb.DY*r.fontSize
		dc.DrawStringAnchored(lb.Text, lb.Anchor.X, y, anchorX(lb.TextAnchor), 0)
	}
	return nil
}

func drawLeaders(dc *gg.Context, l pie.Layout) {
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	for _, d := range l.Slices {
		if d.Leader == nil {
			continue
		}
		pts := d.Leader.Points
		dc.NewSubPath()
		dc.MoveTo(pts[0].X, pts[0].Y)
		dc.LineTo(pts[1].X, pts[1].Y)
		dc.LineTo(pts[2].X, pts[2].Y)
		dc.Stroke()
	}
}

func anchorX(textAnchor string) float64 {
	switch textAnchor {
	case pie.AnchorStart:
		return 0
	case pie.AnchorEnd:
		return 1
	}
	return 0.5
}

// parseColor accepts hex colours and SVG colour keywords.
func parseColor(s string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c.Clamped(), nil
}
