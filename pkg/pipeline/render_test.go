package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/piechart/pkg/chart"
	corerender "github.com/matzehuels/piechart/pkg/core/render"
	"github.com/matzehuels/piechart/pkg/errors"
)

func sampleLayout(t *testing.T) chart.Layout {
	t.Helper()
	l, err := GenerateLayout(sampleDataset(), Options{})
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	return l
}

func TestRender(t *testing.T) {
	l := sampleLayout(t)
	artifacts, err := Render(context.Background(), l, Options{Formats: []string{FormatSVG, FormatPNG, FormatJSON}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if !strings.Contains(svg, `id="pie-`) || !strings.Contains(svg, "<title>Browsers</title>") {
		t.Errorf("svg missing chart id or title:\n%s", svg)
	}

	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}

	parsed, err := chart.UnmarshalLayout(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(parsed.Slices) != 3 {
		t.Errorf("json artifact has %d slices, want 3", len(parsed.Slices))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	l := sampleLayout(t)
	opts := Options{Formats: []string{FormatSVG}}

	a, err := Render(context.Background(), l, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(context.Background(), l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a[FormatSVG], b[FormatSVG]) {
		t.Error("identical layouts should render identical SVG")
	}
}

func TestRenderChartID(t *testing.T) {
	l := sampleLayout(t)
	artifacts, err := Render(context.Background(), l, Options{ChartID: "sales"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(artifacts[FormatSVG]), `id="sales-slice-0"`) {
		t.Error("explicit chart id not used")
	}
}

func TestChartID(t *testing.T) {
	a, b := ChartID([]byte("x")), ChartID([]byte("y"))
	if a == b {
		t.Error("different layouts should get different ids")
	}
	if a != ChartID([]byte("x")) {
		t.Error("ChartID should be stable")
	}
	if !strings.HasPrefix(a, "pie-") {
		t.Errorf("id %q should start with a letter prefix", a)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	l := sampleLayout(t)
	if _, err := Render(context.Background(), l, Options{Formats: []string{"bmp"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v", err)
	}

	l.Kind = "tower"
	if _, err := Render(context.Background(), l, Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad kind: err = %v", err)
	}
}

func TestRenderPDF(t *testing.T) {
	if !corerender.Available() {
		t.Skip("rsvg-convert not installed")
	}
	artifacts, err := Render(context.Background(), sampleLayout(t), Options{Formats: []string{FormatPDF}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact is not a PDF")
	}
}
