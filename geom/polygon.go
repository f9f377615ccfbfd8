package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/common"
)

var (
	// ErrDegenerateGeometry is returned for polygons with fewer than three
	// points, zero-length edges or non-finite coordinates.
	ErrDegenerateGeometry = errors.New("geom: degenerate geometry")
	// ErrNotConvex is returned when the edges of a polygon do not all turn the
	// same way.
	ErrNotConvex = errors.New("geom: polygon is not convex")
)

// Polygon is a convex polygon: points relative to Pos, in a consistent
// winding. Points are fixed at construction, Pos moves.
type Polygon struct {
	Pos cp.Vector

	points  []cp.Vector
	normals []cp.Vector
}

// NewPolygon copies points and precomputes the edge normals.
func NewPolygon(pos cp.Vector, points []cp.Vector) *Polygon {
	p := &Polygon{
		Pos:    pos,
		points: append([]cp.Vector(nil), points...),
	}
	p.recalc()
	return p
}

// NewBox returns the w×h rectangle whose top-left corner sits at pos.
func NewBox(pos cp.Vector, w, h float64) *Polygon {
	return NewPolygon(pos, []cp.Vector{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
	})
}

func (p *Polygon) recalc() {
	p.normals = make([]cp.Vector, len(p.points))
	for i := range p.points {
		edge := p.points[(i+1)%len(p.points)].Sub(p.points[i])
		// Right-hand perpendicular; zero for a zero-length edge so Validate can
		// catch it.
		n := cp.Vector{X: edge.Y, Y: -edge.X}
		if l := n.Length(); l > common.Epsilon {
			n = n.Mult(1 / l)
		} else {
			n = cp.Vector{}
		}
		p.normals[i] = n
	}
}

func (p *Polygon) Len() int {
	if p == nil {
		return 0
	}
	return len(p.points)
}

// Points returns a copy of the local points.
func (p *Polygon) Points() []cp.Vector {
	if p == nil {
		return nil
	}
	return append([]cp.Vector(nil), p.points...)
}

// Normals returns a copy of the unit edge normals; normal i belongs to the
// edge from point i to point i+1.
func (p *Polygon) Normals() []cp.Vector {
	if p == nil {
		return nil
	}
	return append([]cp.Vector(nil), p.normals...)
}

func (p *Polygon) SetPos(pos cp.Vector) {
	p.Pos = pos
}

func (p *Polygon) Translate(d cp.Vector) {
	p.Pos = p.Pos.Add(d)
}

// WorldPoints returns the points offset by Pos.
func (p *Polygon) WorldPoints() []cp.Vector {
	if p == nil {
		return nil
	}
	out := make([]cp.Vector, len(p.points))
	for i, pt := range p.points {
		out[i] = pt.Add(p.Pos)
	}
	return out
}

// Project returns the min and max of the world points projected onto axis.
func (p *Polygon) Project(axis cp.Vector) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, pt := range p.points {
		d := pt.Add(p.Pos).Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// BB returns the world-space bounding box. Y grows downwards on screen, so B
// holds the smallest Y and T the largest.
func (p *Polygon) BB() cp.BB {
	if p.Len() == 0 {
		return cp.BB{L: p.Pos.X, B: p.Pos.Y, R: p.Pos.X, T: p.Pos.Y}
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, pt := range p.WorldPoints() {
		bb.L = math.Min(bb.L, pt.X)
		bb.R = math.Max(bb.R, pt.X)
		bb.B = math.Min(bb.B, pt.Y)
		bb.T = math.Max(bb.T, pt.Y)
	}
	return bb
}

// Validate checks the polygon can take part in a separating-axis test.
func (p *Polygon) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil polygon", ErrDegenerateGeometry)
	}
	if len(p.points) < 3 {
		return fmt.Errorf("%w: %d points, need at least 3", ErrDegenerateGeometry, len(p.points))
	}
	if !common.IsFinite(p.Pos.X) || !common.IsFinite(p.Pos.Y) {
		return fmt.Errorf("%w: non-finite position %v", ErrDegenerateGeometry, p.Pos)
	}
	for i, pt := range p.points {
		if !common.IsFinite(pt.X) || !common.IsFinite(pt.Y) {
			return fmt.Errorf("%w: non-finite point %d", ErrDegenerateGeometry, i)
		}
	}
	for i, n := range p.normals {
		if n.LengthSq() == 0 {
			return fmt.Errorf("%w: zero-length edge %d", ErrDegenerateGeometry, i)
		}
	}

	sign := 0.0
	for i := range p.points {
		a := p.points[i]
		b := p.points[(i+1)%len(p.points)]
		c := p.points[(i+2)%len(p.points)]
		cross := b.Sub(a).Cross(c.Sub(b))
		if common.NearZero(cross) {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
			continue
		}
		if math.Copysign(1, cross) != sign {
			return fmt.Errorf("%w: turn at point %d", ErrNotConvex, (i+1)%len(p.points))
		}
	}
	if sign == 0 {
		return fmt.Errorf("%w: collinear points", ErrDegenerateGeometry)
	}
	return nil
}
