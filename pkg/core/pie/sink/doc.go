// Package sink paints computed pie layouts into output formats.
//
// A sink takes a [pie.Layout] and produces bytes without any further
// geometry: every path, anchor and polyline comes from the layout. This
// package provides:
//
//   - SVG: vector output written with svgo
//   - PNG: native raster output drawn with gg and the Go Regular font
//   - PDF: print-ready output (requires rsvg-convert)
//
// Layout JSON export lives in the chart package, next to the dataset
// readers.
//
// # SVG Output
//
// [RenderSVG] draws a viewBox sized to the layout, translates the origin to
// the chart centre and emits, in order, the ring paths, the labels and the
// leader lines:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithChartID("sales"),
//	    sink.WithTitle("Sales by region"),
//	)
//
// # PNG and PDF Output
//
//	png, err := sink.RenderPNG(layout, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(ctx, layout)
//
// PDF output requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [pie.Layout]: github.com/matzehuels/piechart/pkg/core/pie.Layout
package sink
