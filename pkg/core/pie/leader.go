package pie

// LeaderLine is the polyline joining a small slice to its external label:
// a point on the slice, a bend just outside the ring, and the end near the
// label.
type LeaderLine struct {
	Points [3]Point
}

// Fan-out of leader line ends, in chart units.
const (
	leaderFirstOffset = 5.0
	leaderStepOffset  = 10.0
)

// leaderFan staggers the ends of consecutive leader lines so stacked lines
// spread out instead of overlapping.
type leaderFan struct {
	offset float64
}

func newLeaderFan() leaderFan { return leaderFan{offset: leaderFirstOffset} }

func (f leaderFan) next() (float64, leaderFan) {
	return f.offset, leaderFan{offset: f.offset + leaderStepOffset}
}

// routeLeader builds the leader line of an external slice.
func routeLeader(s Slice, r Radii, fan leaderFan) (LeaderLine, leaderFan) {
	offset, fan := fan.next()

	a := r.Leader.Centroid(s)
	b := r.Outer.Centroid(s)
	c := b
	c.X = r.Radius*s.side() + offset
	c.Y += offset

	return LeaderLine{Points: [3]Point{a, b, c}}, fan
}
