package chart

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

func computeLayout(t *testing.T) pie.Layout {
	t.Helper()
	cfg := pie.DefaultConfig()
	cfg.EnableLeaderLines = true
	cfg.HoleRatio = 0.4
	l, err := pie.Compute([]pie.Entry{{Name: "A", Value: 97}, {Name: "B", Value: 3}}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestExportParseRoundTrip(t *testing.T) {
	l := computeLayout(t)

	exported := Export(l, "Votes")
	if exported.Kind != KindPie || exported.Title != "Votes" {
		t.Errorf("exported header = %q %q", exported.Kind, exported.Title)
	}
	if exported.External() != 1 {
		t.Errorf("External() = %d, want 1", exported.External())
	}
	if got := exported.Slices[1].Label.Placement; got != "external" {
		t.Errorf("placement = %q, want external", got)
	}

	parsed, err := Parse(exported)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, l) {
		t.Errorf("round trip changed the layout:\n got %+v\nwant %+v", parsed, l)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	exported := Export(computeLayout(t), "Votes")
	path := filepath.Join(t.TempDir(), "votes.layout.json")

	if err := WriteLayoutFile(exported, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if !reflect.DeepEqual(got, exported) {
		t.Errorf("file round trip changed the layout")
	}
}

func TestMarshalLayoutFields(t *testing.T) {
	data, err := MarshalLayout(Export(computeLayout(t), ""))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"kind": "pie"`, `"slices"`, `"leader"`, `"text_anchor": "end"`, `"inner_radius": 80`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing %s", key)
		}
	}
	if strings.Contains(string(data), `"title"`) {
		t.Error("empty title should be omitted")
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{`},
		{"wrong kind", `{"kind": "tower", "width": 10, "height": 10}`},
		{"no size", `{"kind": "pie", "slices": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.input)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}

	l, err := UnmarshalLayout([]byte(`{"width": 10, "height": 10}`))
	if err != nil || l.Kind != KindPie {
		t.Errorf("missing kind should default to pie, got %q, %v", l.Kind, err)
	}
}

func TestParseErrors(t *testing.T) {
	base := Export(computeLayout(t), "")

	bad := base
	bad.Slices = append([]Slice(nil), base.Slices...)
	bad.Slices[0].Label.Placement = "floating"
	if _, err := Parse(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown placement: error = %v", err)
	}

	bad.Slices[0].Label.Placement = "inline"
	bad.Slices[0].Leader = []Point{{1, 2}}
	if _, err := Parse(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("short leader: error = %v", err)
	}

	bad = base
	bad.Kind = "bar"
	if _, err := Parse(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("wrong kind: error = %v", err)
	}
}
