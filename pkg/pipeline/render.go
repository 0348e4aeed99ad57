package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/core/pie/sink"
	"github.com/matzehuels/piechart/pkg/errors"
)

// chartNamespace seeds name-based chart ids.
var chartNamespace = uuid.MustParse("8f1d7a52-3c0e-4b8e-9a61-2f0c5d4e7b19")

// ChartID derives a stable element id prefix from serialized layout data, so
// that identical layouts render to identical bytes.
func ChartID(layoutData []byte) string {
	return "pie-" + uuid.NewSHA1(chartNamespace, layoutData).String()
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l chart.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	data, err := chart.MarshalLayout(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
	}
	return render(ctx, l, data, opts.resolveChartID(data), opts)
}

// render draws l once per format. data is the serialized layout, reused as
// the JSON artifact.
func render(ctx context.Context, l chart.Layout, data []byte, chartID string, opts Options) (map[string][]byte, error) {
	pl, err := chart.Parse(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert layout")
	}

	svgOpts := []sink.SVGOption{sink.WithChartID(chartID), sink.WithTitle(l.Title)}
	if opts.FontSize > 0 {
		svgOpts = append(svgOpts, sink.WithFontSize(opts.FontSize))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		out, err := renderFormat(ctx, pl, data, format, svgOpts, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = out
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l pie.Layout, data []byte, format string, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		var pngOpts []sink.PNGOption
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
		}
		if opts.FontSize > 0 {
			pngOpts = append(pngOpts, sink.WithPNGFontSize(opts.FontSize))
		}
		return sink.RenderPNG(l, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return data, nil
	}
	return nil, ValidateFormat(format)
}

func (o *Options) resolveChartID(layoutData []byte) string {
	if o.ChartID != "" {
		return o.ChartID
	}
	return ChartID(layoutData)
}
