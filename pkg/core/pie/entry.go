package pie

import (
	"math"
	"strconv"
)

// Tau is the angle of a full circle in radians.
const Tau = 2 * math.Pi

// Entry is one named value of the input collection.
type Entry struct {
	Name  string
	Value float64
	Color string // explicit fill; empty means palette colour
}

// Slice is an Entry placed on the circle.
type Slice struct {
	Entry
	Index      int
	StartAngle float64
	EndAngle   float64
	Share      float64 // fraction of the full circle, in [0, 1]
}

// Width returns the angular width of the slice.
func (s Slice) Width() float64 { return s.EndAngle - s.StartAngle }

// MidAngle returns the angle halfway between start and end.
func (s Slice) MidAngle() float64 { return s.StartAngle + s.Width()/2 }

// RightHalf reports whether the slice midpoint lies in the right half of the
// chart (0 ≤ mid < π).
func (s Slice) RightHalf() bool { return s.MidAngle() < math.Pi }

// side returns +1 for slices on the right half and -1 otherwise.
func (s Slice) side() float64 {
	if s.RightHalf() {
		return 1
	}
	return -1
}

// ComputeSlices converts entries into contiguous slices covering the circle.
//
// Input order is preserved. Slice i starts where slice i-1 ends and the first
// slice starts at 0. Each width is proportional to the entry's share of the
// total. When all values are zero every slice has zero width and starts at 0.
// Zero-valued entries still produce a (zero-width) slice.
//
// A negative or non-finite value fails the whole call with an
// *InvalidEntryError.
func ComputeSlices(entries []Entry) ([]Slice, error) {
	peak := 0.0
	for i, e := range entries {
		if err := checkValue(i, e); err != nil {
			return nil, err
		}
		peak = math.Max(peak, e.Value)
	}

	slices := make([]Slice, len(entries))
	if peak == 0 {
		for i, e := range entries {
			slices[i] = Slice{Entry: e, Index: i}
		}
		return slices, nil
	}

	// Values are scaled by the largest one so the running sum stays finite
	// for any finite input; every scaled value lies in [0, 1].
	total := 0.0
	for _, e := range entries {
		total += e.Value / peak
	}

	// Ends are derived from the running sum so the last slice closes at
	// exactly Tau.
	cum, start := 0.0, 0.0
	for i, e := range entries {
		v := e.Value / peak
		cum += v
		end := Tau * (cum / total)
		slices[i] = Slice{
			Entry:      e,
			Index:      i,
			StartAngle: start,
			EndAngle:   end,
			Share:      v / total,
		}
		start = end
	}
	return slices, nil
}

func checkValue(i int, e Entry) error {
	switch {
	case math.IsNaN(e.Value) || math.IsInf(e.Value, 0):
		return &InvalidEntryError{Index: i, Name: e.Name, Value: e.Value, Reason: ReasonNotFinite}
	case e.Value < 0:
		return &InvalidEntryError{Index: i, Name: e.Name, Value: e.Value, Reason: ReasonNegative}
	}
	return nil
}

// Total returns the sum of all entry values.
func Total(entries []Entry) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.Value
	}
	return sum
}

// FormatValue renders v with the shortest decimal representation, the way
// values appear in labels and colour keys ("60", "2.5").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
