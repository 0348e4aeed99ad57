package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/piechart/internal/config"
	"github.com/matzehuels/piechart/pkg/pipeline"
)

// chartFlags are the layout options shared by layout, render and inspect.
// Only flags the user set override the configuration file.
type chartFlags struct {
	title       string
	width       float64
	height      float64
	margin      float64
	textColor   string
	percentage  bool
	leaderLines bool
	hole        float64
	palette     []string
	colorKey    string
	noCache     bool
	refresh     bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	def := config.Default().Chart
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "chart title (overrides the dataset title)")
	fs.Float64Var(&f.width, "width", def.Width, "frame width")
	fs.Float64Var(&f.height, "height", def.Height, "frame height")
	fs.Float64Var(&f.margin, "margin", def.Margin, "space between the pie and the frame")
	fs.StringVar(&f.textColor, "text-color", def.TextColor, "colour of external labels")
	fs.BoolVar(&f.percentage, "percentage", false, "label slices with their share instead of their value")
	fs.BoolVar(&f.leaderLines, "leader-lines", false, "move labels of small slices outside with leader lines")
	fs.Float64Var(&f.hole, "hole", 0, "donut hole as a fraction of the radius, 0 for a pie")
	fs.StringSliceVar(&f.palette, "palette", nil, "slice colours, comma-separated")
	fs.StringVar(&f.colorKey, "color-key", def.ColorKey, "palette assignment: value or index")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// options merges the configured chart defaults with the flags the user set.
func (f *chartFlags) options(cmd *cobra.Command, cfg config.ChartConfig) pipeline.Options {
	opts := cfg.Options()
	opts.Title = f.title
	opts.Refresh = f.refresh

	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("margin") {
		margin := f.margin
		opts.Margin = &margin
	}
	if changed("text-color") {
		opts.TextColor = f.textColor
	}
	if changed("percentage") {
		opts.Percentage = f.percentage
	}
	if changed("leader-lines") {
		opts.LeaderLines = f.leaderLines
	}
	if changed("hole") {
		opts.HoleRatio = f.hole
	}
	if changed("palette") {
		opts.Palette = f.palette
	}
	if changed("color-key") {
		opts.ColorKey = f.colorKey
	}
	return opts
}

// renderFlags are the output options shared by render and visualize.
type renderFlags struct {
	formats  string
	output   string
	chartID  string
	fontSize float64
	scale    float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVar(&f.chartID, "chart-id", "", "id prefix for SVG elements (default: derived from the layout)")
	fs.Float64Var(&f.fontSize, "font-size", 0, "label font size in px (default 28)")
	fs.Float64Var(&f.scale, "scale", 0, "PNG pixel scale (default 2)")
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.ChartID = f.chartID
	opts.FontSize = f.fontSize
	opts.Scale = f.scale
	opts.SetRenderDefaults()
	return opts.ValidateForRender()
}
