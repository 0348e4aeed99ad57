package pipeline

import (
	"testing"

	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Width != 750 || opts.Height != 450 {
		t.Errorf("size = %vx%v, want 750x450", opts.Width, opts.Height)
	}
	if opts.Margin == nil || *opts.Margin != 25 {
		t.Errorf("margin = %v, want 25", opts.Margin)
	}
	if opts.TextColor != "#ffffff" {
		t.Errorf("text color = %q, want #ffffff", opts.TextColor)
	}
	if opts.ColorKey != "value" {
		t.Errorf("color key = %q, want value", opts.ColorKey)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger should default to a discard logger")
	}

	// Idempotent
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Width != before.Width || opts.Margin != before.Margin || len(opts.Formats) != 1 {
		t.Error("second call changed options")
	}
}

func TestValidateAndSetDefaultsKeepsZeroMargin(t *testing.T) {
	zero := 0.0
	opts := Options{Margin: &zero}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if got := opts.Config().Margin; got != 0 {
		t.Errorf("margin = %v, want 0", got)
	}
	if got := opts.Config().Radius(); got != 225 {
		t.Errorf("radius = %v, want 225", got)
	}
}

func TestValidateAndSetDefaultsRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidConfig},
		{"hole ratio one", Options{HoleRatio: 1}, errors.ErrCodeInvalidConfig},
		{"bad text color", Options{TextColor: "#12"}, errors.ErrCodeInvalidConfig},
		{"bad color key", Options{ColorKey: "rank"}, errors.ErrCodeInvalidConfig},
		{"bad palette", Options{Palette: []string{"#ff0000", "nope"}}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative font size", Options{FontSize: -2}, errors.ErrCodeInvalidConfig},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{}
	a.SetLayoutDefaults()
	b := a
	b.LeaderLines = true

	ka, kb := a.LayoutKeyOpts(), b.LayoutKeyOpts()
	if ka.LeaderLines == kb.LeaderLines {
		t.Error("leader lines should be part of the layout key")
	}
	if ka.Width != 750 || ka.Margin != 25 || ka.ColorKey != "value" {
		t.Errorf("unexpected key opts: %+v", ka)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{FontSize: 14, Scale: 3}

	svg := opts.ArtifactKeyOpts(FormatSVG, "pie-1")
	if svg.ChartID != "pie-1" || svg.FontSize != 14 || svg.Scale != 0 {
		t.Errorf("svg key opts = %+v", svg)
	}

	png := opts.ArtifactKeyOpts(FormatPNG, "pie-1")
	if png.ChartID != "" || png.Scale != 3 {
		t.Errorf("png key opts = %+v", png)
	}

	js := opts.ArtifactKeyOpts(FormatJSON, "pie-1")
	if js.ChartID != "" || js.FontSize != 0 || js.Scale != 0 {
		t.Errorf("json key opts should only carry the format, got %+v", js)
	}
}

func TestWithTitle(t *testing.T) {
	ds := chart.Dataset{Title: "Original"}
	if got := (&Options{}).WithTitle(ds).Title; got != "Original" {
		t.Errorf("title = %q, want Original", got)
	}
	if got := (&Options{Title: "Override"}).WithTitle(ds).Title; got != "Override" {
		t.Errorf("title = %q, want Override", got)
	}
}
