// Package pie computes the geometry of labeled pie and donut charts.
//
// The package is a pure layout engine: it turns an ordered list of [Entry]
// values into one immutable [Descriptor] per slice. Painting is left to a
// rendering collaborator (see the sink subpackage), which needs no further
// geometry to draw the result.
//
// # Pipeline
//
// A single call to [Compute] runs every stage in one left-to-right pass:
//
//  1. [ComputeSlices] converts values into contiguous angular slices, in input
//     order, starting at angle 0.
//  2. A [ColorAssigner] resolves each slice's fill colour.
//  3. [Arc] produces the ring path and the centroids used as anchors.
//  4. [Classify] decides whether a slice is labeled inline or externally.
//  5. External slices get a stacked label offset and a three-point
//     [LeaderLine] fanned out from the previous one.
//
// # Coordinates
//
// Angles are radians measured clockwise from 12 o'clock. Points are relative
// to the chart centre with x growing right and y growing down, so a point at
// angle a and radius r is (r·sin a, -r·cos a). The renderer only needs to
// translate the origin to the centre of its canvas.
//
// # Concurrency
//
// Compute keeps no state between calls. The label stack and the leader fan are
// values local to one call, so concurrent layouts of different charts are
// safe and repeated layouts of the same input are identical.
//
// # Example
//
//	entries := []pie.Entry{
//	    {Name: "text1", Value: 60},
//	    {Name: "text2", Value: 25},
//	    {Name: "text3", Value: 15},
//	}
//	l, err := pie.Compute(entries, pie.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l)
package pie
