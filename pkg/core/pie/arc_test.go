package pie

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2, "2"},
		{1.23456, "1.235"},
		{-0.0001, "0"},
		{100.5, "100.5"},
		{-42.1234, "-42.123"},
		{1.2246467991473532e-14, "0"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestArcPath(t *testing.T) {
	quarter := Slice{StartAngle: 0, EndAngle: math.Pi / 2}
	threeQuarter := Slice{StartAngle: 0, EndAngle: 3 * math.Pi / 2}
	full := Slice{StartAngle: 0, EndAngle: Tau}
	empty := Slice{}

	tests := []struct {
		name  string
		arc   Arc
		slice Slice
		want  string
	}{
		{"wedge", Arc{0, 100}, quarter, "M0,-100A100,100,0,0,1,100,0L0,0Z"},
		{"donut", Arc{50, 100}, quarter, "M0,-100A100,100,0,0,1,100,0L50,0A50,50,0,0,0,0,-50Z"},
		{"large arc", Arc{0, 100}, threeQuarter, "M0,-100A100,100,0,1,1,-100,0L0,0Z"},
		{"full pie", Arc{0, 100}, full, "M0,-100A100,100,0,1,1,0,100A100,100,0,1,1,0,-100Z"},
		{"full donut", Arc{50, 100}, full,
			"M0,-100A100,100,0,1,1,0,100A100,100,0,1,1,0,-100M0,-50A50,50,0,1,0,0,50A50,50,0,1,0,0,-50Z"},
		{"zero width", Arc{0, 100}, empty, "M0,-100A100,100,0,0,1,0,-100L0,0Z"},
		{"zero radius", Arc{0, 0}, quarter, "M0,0Z"},
		{"swapped radii", Arc{100, 50}, quarter, "M0,-100A100,100,0,0,1,100,0L50,0A50,50,0,0,0,0,-50Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arc.Path(tt.slice); got != tt.want {
				t.Errorf("Path() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestArcCentroid(t *testing.T) {
	tests := []struct {
		name  string
		arc   Arc
		slice Slice
		want  Point
	}{
		{"right", Arc{0, 100}, Slice{EndAngle: math.Pi}, Point{50, 0}},
		{"top", Arc{40, 60}, Slice{StartAngle: -0.5, EndAngle: 0.5}, Point{0, -50}},
		{"bottom", Arc{90, 90}, Slice{StartAngle: math.Pi / 2, EndAngle: 3 * math.Pi / 2}, Point{0, 90}},
		{"left", Arc{0, 20}, Slice{StartAngle: math.Pi, EndAngle: Tau}, Point{-10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.arc.Centroid(tt.slice)
			if math.Abs(got.X-tt.want.X) > tol || math.Abs(got.Y-tt.want.Y) > tol {
				t.Errorf("Centroid() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewRadii(t *testing.T) {
	r := NewRadii(200, 0.5)
	want := Radii{
		Radius: 200,
		Ring:   Arc{100, 200},
		Label:  Arc{50, 200},
		Leader: Arc{100, 160},
		Outer:  Arc{180, 180},
	}
	if r != want {
		t.Errorf("NewRadii(200, 0.5) = %+v, want %+v", r, want)
	}
	if pie := NewRadii(200, 0); pie.Ring.Inner != 0 {
		t.Errorf("pie ring inner = %v, want 0", pie.Ring.Inner)
	}
}
