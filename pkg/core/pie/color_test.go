package pie

import (
	"reflect"
	"testing"

	"github.com/matzehuels/piechart/pkg/core/pie/palette"
)

func TestValueKeyedColors(t *testing.T) {
	p := palette.Default
	tests := []struct {
		name    string
		entries []Entry
		want    []string
	}{
		{
			name:    "distinct values",
			entries: []Entry{{Name: "a", Value: 60}, {Name: "b", Value: 25}, {Name: "c", Value: 15}},
			want:    []string{p[0], p[1], p[2]},
		},
		{
			name:    "equal values share a colour",
			entries: []Entry{{Name: "a", Value: 10}, {Name: "b", Value: 20}, {Name: "c", Value: 10}},
			want:    []string{p[0], p[1], p[0]},
		},
		{
			name:    "explicit colour wins",
			entries: []Entry{{Name: "a", Value: 10, Color: "#ff0000"}, {Name: "b", Value: 10}},
			want:    []string{"#ff0000", p[0]},
		},
		{
			name:    "overridden entries keep their domain slot",
			entries: []Entry{{Name: "a", Value: 10, Color: "#ff0000"}, {Name: "b", Value: 20}},
			want:    []string{"#ff0000", p[1]},
		},
		{
			name: "wraps after seven keys",
			entries: []Entry{
				{Value: 1}, {Value: 2}, {Value: 3}, {Value: 4},
				{Value: 5}, {Value: 6}, {Value: 7}, {Value: 8},
			},
			want: []string{p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[0]},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueKeyedColors{Palette: p}.AssignColors(tt.entries)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AssignColors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndexKeyedColors(t *testing.T) {
	p := palette.Palette{"#111111", "#222222"}
	entries := []Entry{{Value: 10}, {Value: 10}, {Value: 10, Color: "red"}, {Value: 5}}

	got := IndexKeyedColors{Palette: p}.AssignColors(entries)
	want := []string{"#111111", "#222222", "red", "#222222"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignColors() = %v, want %v", got, want)
	}
}

func TestNewColorAssigner(t *testing.T) {
	if _, ok := NewColorAssigner(ColorKeyIndex, nil).(IndexKeyedColors); !ok {
		t.Error("index key should select IndexKeyedColors")
	}
	for _, key := range []ColorKey{ColorKeyValue, "", "other"} {
		if _, ok := NewColorAssigner(key, nil).(ValueKeyedColors); !ok {
			t.Errorf("key %q should select ValueKeyedColors", key)
		}
	}
}

func TestColorsArePure(t *testing.T) {
	entries := []Entry{{Value: 3}, {Value: 1}, {Value: 3}, {Value: 2}}
	a := ValueKeyedColors{Palette: palette.Default}
	first := a.AssignColors(entries)
	second := a.AssignColors(entries)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated AssignColors differ: %v vs %v", first, second)
	}
}
