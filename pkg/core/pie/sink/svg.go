package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/piechart/pkg/core/pie"
)

// Painting defaults of the chart component.
const (
	DefaultFontSize    = 28.0
	DefaultStroke      = "#121926"
	DefaultStrokeWidth = 1.0
	leaderStroke       = "black"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	id          string
	title       string
	fontSize    float64
	stroke      string
	strokeWidth float64
}

// WithChartID prefixes element ids so several charts can share a page.
func WithChartID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithFontSize sets the label font size in pixels.
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithStroke sets the slice outline colour and width.
func WithStroke(color string, width float64) SVGOption {
	return func(r *svgRenderer) {
		r.stroke = color
		r.strokeWidth = width
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		id:          "piechart",
		fontSize:    DefaultFontSize,
		stroke:      DefaultStroke,
		strokeWidth: DefaultStrokeWidth,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l pie.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	w, h := int(math.Ceil(l.Width)), int(math.Ceil(l.Height))
	canvas.Startview(w, h, 0, 0, w, h)
	if r.title != "" {
		canvas.Title(r.title)
	}

	canvas.Gid(r.id)
	canvas.Gtransform(translate(pie.Point{X: l.Width / 2, Y: l.Height / 2}))

	r.renderSlices(canvas, l)
	r.renderLabels(canvas, l)
	r.renderLeaders(canvas, l)

	canvas.Gend()
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) renderSlices(canvas *svg.SVG, l pie.Layout) {
	style := fmt.Sprintf("stroke:%s;stroke-width:%spx", r.stroke, pie.FormatNumber(r.strokeWidth))
	for _, d := range l.Slices {
		canvas.Path(d.Path,
			attr("id", r.elementID("slice", d.Index)),
			attr("fill", d.Fill),
			style)
	}
}

func (r svgRenderer) renderLabels(canvas *svg.SVG, l pie.Layout) {
	for _, d := range l.Slices {
		lb := d.Label
		attrs := []string{
			attr("id", r.elementID("label", d.Index)),
			attr("transform", translate(lb.Anchor)),
			attr("fill", lb.Color),
			fmt.Sprintf("text-anchor:%s;font-size:%spx", lb.TextAnchor, pie.FormatNumber(r.fontSize)),
		}
		if lb.Placement == pie.External {
			attrs = append(attrs, attr("dy", pie.FormatNumber(lb.DY)+"em"))
		}
		canvas.Text(0, 0, lb.Text, attrs...)
	}
}

func (r svgRenderer) renderLeaders(canvas *svg.SVG, l pie.Layout) {
	for _, d := range l.Slices {
		if d.Leader == nil {
			continue
		}
		var pts []string
		for _, p := range d.Leader.Points {
			pts = append(pts, pie.FormatNumber(p.X)+","+pie.FormatNumber(p.Y))
		}
		canvas.Path("M"+strings.Join(pts, "L"),
			attr("id", r.elementID("leader", d.Index)),
			"fill:none;stroke:"+leaderStroke+";stroke-width:1")
	}
}

func (r svgRenderer) elementID(kind string, i int) string {
	return fmt.Sprintf("%s-%s-%d", r.id, kind, i)
}

func translate(p pie.Point) string {
	return fmt.Sprintf("translate(%s,%s)", pie.FormatNumber(p.X), pie.FormatNumber(p.Y))
}

// attr formats a raw attribute; svgo writes arguments containing "=" as
// attributes and everything else as style.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}
