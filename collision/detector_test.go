package collision

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectNoOverlap(t *testing.T) {
	body := geom.NewBox(cp.Vector{X: 0, Y: 0}, 10, 10)
	obstacles := []*geom.Polygon{
		geom.NewBox(cp.Vector{X: 100, Y: 0}, 10, 10),
		geom.NewBox(cp.Vector{X: 0, Y: 100}, 10, 10),
	}

	count := 0
	for range NewDetector(nil).Detect(body, obstacles) {
		count++
	}
	assert.Zero(t, count)
	assert.Equal(t, cp.Vector{}, body.Pos)
}

func TestDetectOrderAndRawVectors(t *testing.T) {
	body := geom.NewBox(cp.Vector{X: 0, Y: 0}, 10, 10)
	obstacles := []*geom.Polygon{
		geom.NewBox(cp.Vector{X: 8, Y: 0}, 10, 10),
		geom.NewBox(cp.Vector{X: 500, Y: 0}, 10, 10),
		geom.NewBox(cp.Vector{X: 0, Y: 9}, 10, 10),
	}

	var got []Contact
	for c := range NewDetector(nil).Detect(body, obstacles) {
		got = append(got, c)
	}
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Same(t, obstacles[0], got[0].Obstacle)
	assert.Equal(t, 2, got[1].Index)
	assert.Same(t, obstacles[2], got[1].Obstacle)

	// Vectors are passed through exactly as the overlap test reports them.
	r, ok := sat.TestPolygonPolygon(body, obstacles[0])
	require.True(t, ok)
	assert.Equal(t, Event{OverlapV: r.OverlapV, OverlapN: r.OverlapN}, got[0].Event)
	assert.Equal(t, cp.Vector{X: 2, Y: 0}, got[0].Event.OverlapV)
}

func TestDetectIsLazy(t *testing.T) {
	calls := 0
	always := func(a, b *geom.Polygon) (Event, bool) {
		calls++
		return Event{OverlapV: cp.Vector{X: 1}, OverlapN: cp.Vector{X: 1}}, true
	}
	body := geom.NewBox(cp.Vector{}, 10, 10)
	obstacles := []*geom.Polygon{
		geom.NewBox(cp.Vector{}, 1, 1),
		geom.NewBox(cp.Vector{}, 1, 1),
		geom.NewBox(cp.Vector{}, 1, 1),
	}

	seq := NewDetector(always).Detect(body, obstacles)
	assert.Zero(t, calls)

	for c := range seq {
		assert.Equal(t, 0, c.Index)
		break
	}
	assert.Equal(t, 1, calls)
}

func TestDetectSeesEarlierCorrections(t *testing.T) {
	var seen []cp.Vector
	record := func(a, b *geom.Polygon) (Event, bool) {
		seen = append(seen, a.Pos)
		return Event{}, true
	}
	body := geom.NewBox(cp.Vector{}, 10, 10)
	obstacles := []*geom.Polygon{
		geom.NewBox(cp.Vector{}, 1, 1),
		geom.NewBox(cp.Vector{}, 1, 1),
	}

	for range NewDetector(record).Detect(body, obstacles) {
		body.Translate(cp.Vector{X: 0, Y: -5})
	}
	assert.Equal(t, []cp.Vector{{X: 0, Y: 0}, {X: 0, Y: -5}}, seen)
}
