package pipeline

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

func sampleDataset() chart.Dataset {
	return chart.Dataset{
		Title: "Browsers",
		Entries: []pie.Entry{
			{Name: "A", Value: 60},
			{Name: "B", Value: 25},
			{Name: "C", Value: 15},
		},
	}
}

func TestGenerateLayout(t *testing.T) {
	l, err := GenerateLayout(sampleDataset(), Options{})
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	if l.Kind != chart.KindPie || l.Title != "Browsers" {
		t.Errorf("kind/title = %q/%q", l.Kind, l.Title)
	}
	if len(l.Slices) != 3 {
		t.Fatalf("slices = %d, want 3", len(l.Slices))
	}
	for i, name := range []string{"A", "B", "C"} {
		if l.Slices[i].Name != name {
			t.Errorf("slice %d = %q, want %q (input order)", i, l.Slices[i].Name, name)
		}
		if l.Slices[i].Label.Placement != "inline" {
			t.Errorf("slice %d placement = %q, want inline", i, l.Slices[i].Label.Placement)
		}
	}
	if l.Radius != 200 {
		t.Errorf("radius = %v, want 200", l.Radius)
	}
}

func TestGenerateLayoutTitleOverride(t *testing.T) {
	l, err := GenerateLayout(sampleDataset(), Options{Title: "Market share"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Title != "Market share" {
		t.Errorf("title = %q, want Market share", l.Title)
	}
}

func TestGenerateLayoutLeaderLines(t *testing.T) {
	ds := chart.Dataset{Entries: []pie.Entry{{Name: "A", Value: 97}, {Name: "B", Value: 3}}}
	l, err := GenerateLayout(ds, Options{LeaderLines: true, Percentage: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := l.External(); got != 1 {
		t.Fatalf("external = %d, want 1", got)
	}
	b := l.Slices[1]
	if b.Label.Text != "B (3%)" || len(b.Leader) != 3 {
		t.Errorf("small slice label = %q, leader points = %d", b.Label.Text, len(b.Leader))
	}
}

func TestGenerateLayoutInvalidEntry(t *testing.T) {
	ds := chart.Dataset{Entries: []pie.Entry{{Name: "A", Value: 10}, {Name: "B", Value: -1}}}
	_, err := GenerateLayout(ds, Options{})
	if err == nil {
		t.Fatal("expected error for negative value")
	}
	if !errors.Is(err, errors.ErrCodeInvalidEntry) {
		t.Errorf("code = %s, want INVALID_ENTRY", errors.GetCode(err))
	}
	var invalid *pie.InvalidEntryError
	if !stderrors.As(err, &invalid) {
		t.Fatalf("error should unwrap to *pie.InvalidEntryError: %v", err)
	}
	if invalid.Index != 1 || invalid.Reason != pie.ReasonNegative {
		t.Errorf("invalid entry = %+v", invalid)
	}
}

func TestGenerateLayoutRejectsEmptyName(t *testing.T) {
	ds := chart.Dataset{Entries: []pie.Entry{{Name: "", Value: 10}}}
	_, err := GenerateLayout(ds, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidEntry) {
		t.Errorf("err = %v, want INVALID_ENTRY", err)
	}
}

func TestGenerateLayoutLogsDegenerateChart(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	ds := chart.Dataset{Entries: []pie.Entry{{Name: "A", Value: 0}, {Name: "B", Value: 0}}}
	l, err := GenerateLayout(ds, Options{Logger: logger})
	if err != nil {
		t.Fatalf("degenerate chart should not fail: %v", err)
	}
	if len(l.Warnings) != 1 || l.Warnings[0].Code != string(pie.WarnDegenerateChart) {
		t.Errorf("warnings = %+v", l.Warnings)
	}
	if !strings.Contains(buf.String(), "DEGENERATE_CHART") {
		t.Errorf("warning not logged: %q", buf.String())
	}
}
