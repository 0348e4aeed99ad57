package pie

import (
	"math"
	"testing"
)

func TestLeaderFan(t *testing.T) {
	fan := newLeaderFan()
	for i, want := range []float64{5, 15, 25} {
		var off float64
		off, fan = fan.next()
		if off != want {
			t.Errorf("line %d offset = %v, want %v", i, off, want)
		}
	}
}

func TestRouteLeader(t *testing.T) {
	r := NewRadii(200, 0)

	tests := []struct {
		name  string
		slice Slice
		side  float64
	}{
		{"right", Slice{StartAngle: 0.2, EndAngle: 0.3}, 1},
		{"left", Slice{StartAngle: 5.9, EndAngle: 6.0}, -1},
		{"zero width", Slice{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fan := leaderFan{offset: 15}
			line, next := routeLeader(tt.slice, r, fan)
			if next.offset != 25 {
				t.Errorf("fan advanced to %v, want 25", next.offset)
			}

			mid := tt.slice.MidAngle()
			a := Point{130 * math.Sin(mid), -130 * math.Cos(mid)}
			b := Point{180 * math.Sin(mid), -180 * math.Cos(mid)}
			c := Point{200*tt.side + 15, b.Y + 15}

			for i, want := range []Point{a, b, c} {
				got := line.Points[i]
				if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol {
					t.Errorf("point %d = %+v, want %+v", i, got, want)
				}
			}
		})
	}
}
