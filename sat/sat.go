// Package sat implements the separating-axis test for convex polygons.
//
// Results follow the usual SAT response convention: OverlapN and OverlapV
// point from a towards the interior of b, so subtracting OverlapV from a's
// position separates the two shapes.
package sat

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
)

// Response describes the overlap found by TestPolygonPolygon.
type Response struct {
	// Overlap is the magnitude of the minimum translation.
	Overlap float64
	// OverlapN is the unit axis of minimum overlap.
	OverlapN cp.Vector
	// OverlapV is OverlapN scaled by Overlap.
	OverlapV cp.Vector
	// AInB is true when a lies entirely inside b.
	AInB bool
	// BInA is true when b lies entirely inside a.
	BInA bool
}

func newResponse() Response {
	return Response{Overlap: math.MaxFloat64, AInB: true, BInA: true}
}

// TestPolygonPolygon reports whether a and b overlap. Touching edges count
// as an overlap of zero. The Response is only meaningful when ok is true.
func TestPolygonPolygon(a, b *geom.Polygon) (Response, bool) {
	r := newResponse()
	if a.Len() == 0 || b.Len() == 0 {
		return Response{}, false
	}

	for _, axis := range a.Normals() {
		if isSeparatingAxis(a, b, axis, &r) {
			return Response{}, false
		}
	}
	for _, axis := range b.Normals() {
		if isSeparatingAxis(a, b, axis, &r) {
			return Response{}, false
		}
	}

	r.OverlapV = r.OverlapN.Mult(r.Overlap)
	return r, true
}

// isSeparatingAxis projects both polygons on axis and, when they overlap,
// folds the overlap into r if it is the smallest seen so far.
func isSeparatingAxis(a, b *geom.Polygon, axis cp.Vector, r *Response) bool {
	if axis.LengthSq() == 0 {
		// A zero axis cannot separate anything; degenerate edges are rejected
		// by geom.Polygon.Validate before they get here.
		return false
	}
	minA, maxA := a.Project(axis)
	minB, maxB := b.Project(axis)
	if minA > maxB || minB > maxA {
		return true
	}

	var overlap float64
	if minA < minB {
		r.AInB = false
		if maxA < maxB {
			overlap = maxA - minB
			r.BInA = false
		} else {
			overlap = smallerSide(maxA-minB, maxB-minA)
		}
	} else {
		r.BInA = false
		if maxA > maxB {
			overlap = minA - maxB
			r.AInB = false
		} else {
			overlap = smallerSide(maxA-minB, maxB-minA)
		}
	}

	abs := math.Abs(overlap)
	if abs < r.Overlap {
		r.Overlap = abs
		r.OverlapN = axis
		if overlap < 0 {
			r.OverlapN = axis.Neg()
		}
	}
	return false
}

// smallerSide picks the cheaper way out when one range contains the other;
// a negative result means pushing against the axis.
func smallerSide(forward, backward float64) float64 {
	if forward < backward {
		return forward
	}
	return -backward
}
