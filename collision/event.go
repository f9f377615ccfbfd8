package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/sat"
)

// Event is the raw result of one overlap test. Both vectors point from the
// body into the obstacle, as the overlap test reports them.
type Event struct {
	OverlapV cp.Vector
	OverlapN cp.Vector
}

// Contact is an Event paired with the obstacle it came from.
type Contact struct {
	Index    int
	Obstacle *geom.Polygon
	Event    Event
}

// Primitive tests body polygon a against obstacle b. It reports ok only
// when the two overlap, and must return vectors pointing from a into b with
// a unit normal.
type Primitive func(a, b *geom.Polygon) (Event, bool)

// SAT is the default Primitive, backed by sat.TestPolygonPolygon.
func SAT(a, b *geom.Polygon) (Event, bool) {
	r, ok := sat.TestPolygonPolygon(a, b)
	if !ok {
		return Event{}, false
	}
	return Event{OverlapV: r.OverlapV, OverlapN: r.OverlapN}, true
}
