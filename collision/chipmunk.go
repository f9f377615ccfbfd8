package collision

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
)

// Chipmunk is a Primitive backed by cp's GJK narrow phase. Its contact
// normal already points from a into b, the same way SAT reports it; the
// overlap is the deepest contact point's penetration.
//
// Unlike SAT, shapes that only touch may report no contact, and there is
// no containment information.
func Chipmunk(a, b *geom.Polygon) (Event, bool) {
	if a.Len() < 3 || b.Len() < 3 {
		return Event{}, false
	}
	sa, sb := chipmunkShape(a), chipmunkShape(b)
	set := cp.ShapesCollide(sa, sb)
	if set.Count == 0 {
		return Event{}, false
	}

	depth := 0.0
	for i := 0; i < set.Count; i++ {
		// Distance is negative while the shapes overlap.
		if d := -set.Points[i].Distance; d > depth {
			depth = d
		}
	}
	return Event{OverlapV: set.Normal.Mult(depth), OverlapN: set.Normal}, true
}

// chipmunkShape builds a throwaway poly shape in world space on an
// identity-transform static body. cp wants positive signed area, which is
// what geom's right-hand normals point outward for.
func chipmunkShape(p *geom.Polygon) *cp.Shape {
	verts := p.WorldPoints()
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	shape := cp.NewPolyShapeRaw(cp.NewStaticBody(), len(verts), verts, 0)
	shape.CacheBB()
	return shape
}

func signedArea(verts []cp.Vector) float64 {
	area := 0.0
	for i := range verts {
		area += verts[i].Cross(verts[(i+1)%len(verts)])
	}
	return area / 2
}

// PrimitiveByName maps a config name to an overlap test: "sat" (or empty)
// and "chipmunk".
func PrimitiveByName(name string) (Primitive, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sat":
		return SAT, nil
	case "chipmunk", "cp":
		return Chipmunk, nil
	default:
		return nil, fmt.Errorf("collision: unknown overlap test %q", name)
	}
}
