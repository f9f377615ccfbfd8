package collision

import (
	"iter"

	"github.com/milk9111/satcollide/geom"
)

// Detector runs the overlap test of the body against every obstacle, in
// list order. There is no broad phase.
type Detector struct {
	test Primitive
}

// NewDetector returns a Detector using test, or SAT when test is nil.
func NewDetector(test Primitive) *Detector {
	if test == nil {
		test = SAT
	}
	return &Detector{test: test}
}

// Detect yields one Contact per overlapping obstacle, in obstacle order.
// The sequence is lazy: obstacle i is only tested when the consumer asks
// for the next contact, so it sees whatever corrections were applied to
// body while handling the contacts before it.
func (d *Detector) Detect(body *geom.Polygon, obstacles []*geom.Polygon) iter.Seq[Contact] {
	return func(yield func(Contact) bool) {
		for i, obstacle := range obstacles {
			ev, ok := d.test(body, obstacle)
			if !ok {
				continue
			}
			if !yield(Contact{Index: i, Obstacle: obstacle, Event: ev}) {
				return
			}
		}
	}
}
