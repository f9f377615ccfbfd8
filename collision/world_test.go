package collision

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newWorld(t *testing.T, cfg Config, obstacles []*geom.Polygon, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(obstacles, NewLiveConfig(cfg), opts...)
	require.NoError(t, err)
	return w
}

func TestStepWithoutContactsChangesNothing(t *testing.T) {
	w := newWorld(t, DefaultConfig(), []*geom.Polygon{
		geom.NewBox(cp.Vector{X: 0, Y: 550}, 800, 50),
	})
	body := NewBody(geom.NewBox(cp.Vector{}, 48, 96), cp.Vector{X: 200, Y: 200}, cp.Vector{X: 30, Y: -40})

	report, err := w.Step(body, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Contacts)
	assert.Equal(t, cp.Vector{X: 200, Y: 200}, body.Position())
	assert.Equal(t, cp.Vector{X: 30, Y: -40}, body.Velocity())
}

func TestStepSeparatesBody(t *testing.T) {
	obstacles := []*geom.Polygon{
		geom.NewBox(cp.Vector{X: 0, Y: 550}, 800, 50),
		geom.NewPolygon(cp.Vector{X: 400, Y: 400}, []cp.Vector{
			{X: 30, Y: 70}, {X: 60, Y: 70}, {X: 45, Y: 100}, {X: 15, Y: 100},
		}),
		geom.NewPolygon(cp.Vector{X: 500, Y: 300}, []cp.Vector{
			{X: 50, Y: 0}, {X: 150, Y: 0}, {X: 200, Y: 75}, {X: 150, Y: 150},
			{X: 50, Y: 150}, {X: 0, Y: 75},
		}),
	}
	cases := []struct {
		name string
		pos  cp.Vector
	}{
		{"into_floor", cp.Vector{X: 100, Y: 460}},
		{"into_parallelogram", cp.Vector{X: 420, Y: 390}},
		{"into_hexagon_side", cp.Vector{X: 470, Y: 320}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newWorld(t, DefaultConfig(), obstacles)
			body := NewBody(geom.NewBox(cp.Vector{}, 48, 96), c.pos, cp.Vector{X: 0, Y: 300})

			report, err := w.Step(body, nil)
			require.NoError(t, err)
			require.Positive(t, report.Contacts)
			assert.Equal(t, report.Contacts, report.Resolved)

			for i, o := range obstacles {
				r, ok := sat.TestPolygonPolygon(body.Polygon(), o)
				if ok {
					assert.InDelta(t, 0, r.Overlap, 1e-6, "still inside obstacle %d", i)
				}
			}
			assert.Equal(t, body.Position(), body.Polygon().Pos)
		})
	}
}

// cornerObstacles are a wide floor and a block whose top-left corner the
// body overlaps. Resolving them in different orders ends in different
// places.
func cornerObstacles() (floor, block *geom.Polygon) {
	floor = geom.NewPolygon(cp.Vector{X: -100, Y: 8}, []cp.Vector{
		{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 42}, {X: 0, Y: 42},
	})
	block = geom.NewPolygon(cp.Vector{X: 9, Y: 7.5}, []cp.Vector{
		{X: 0, Y: 0}, {X: 91, Y: 0}, {X: 91, Y: 42.5}, {X: 0, Y: 42.5},
	})
	return floor, block
}

func TestStepIsOrderDependent(t *testing.T) {
	floor, block := cornerObstacles()

	run := func(obstacles ...*geom.Polygon) *Body {
		w := newWorld(t, Config{}, obstacles)
		body := NewBody(geom.NewBox(cp.Vector{}, 10, 10), cp.Vector{}, cp.Vector{})
		report, err := w.Step(body, nil)
		require.NoError(t, err)
		require.Equal(t, 2, report.Resolved)
		return body
	}

	// Floor first: pushed up by 2, which leaves only a shallow overlap with
	// the block, so it pushes up again.
	floorFirst := run(floor, block)
	assertVec(t, cp.Vector{X: 0, Y: -2.5}, floorFirst.Position())

	// Block first: its shallowest axis is x, so the body moves left, then
	// the floor pushes it up.
	blockFirst := run(block, floor)
	assertVec(t, cp.Vector{X: -1, Y: -2}, blockFirst.Position())
}

func TestStepChainsVelocityAcrossContacts(t *testing.T) {
	floor, block := cornerObstacles()
	w := newWorld(t, Config{BounceCoefficient: 0.5}, []*geom.Polygon{floor, block})
	body := NewBody(geom.NewBox(cp.Vector{}, 10, 10), cp.Vector{}, cp.Vector{X: 50, Y: 50})
	log := &DebugLog{}

	_, err := w.Step(body, log)
	require.NoError(t, err)

	var first, second []DebugVector
	for _, v := range log.Vectors() {
		if v.Obstacle == 0 {
			first = append(first, v)
		} else {
			second = append(second, v)
		}
	}
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)

	// The second contact starts from the velocity the first one produced.
	assert.Equal(t, VecNewVelocity, first[len(first)-1].Name)
	assert.Equal(t, VecVelocity, second[0].Name)
	assert.Equal(t, first[len(first)-1].Vec, second[0].Vec)
	assertVec(t, cp.Vector{X: 50, Y: -25}, second[0].Vec)
	assertVec(t, cp.Vector{X: 50, Y: 12.5}, body.Velocity())
}

func TestStepContractViolationAbortsTick(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	badNormal := func(a, b *geom.Polygon) (Event, bool) {
		return Event{OverlapV: cp.Vector{X: 0, Y: 1}}, true
	}
	w := newWorld(t, DefaultConfig(), []*geom.Polygon{
		geom.NewBox(cp.Vector{}, 10, 10),
		geom.NewBox(cp.Vector{}, 10, 10),
	}, WithPrimitive(badNormal), WithLogger(zap.New(core)))
	body := NewBody(geom.NewBox(cp.Vector{}, 10, 10), cp.Vector{X: 1, Y: 1}, cp.Vector{X: 2, Y: 2})

	report, err := w.Step(body, nil)
	require.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, 1, report.Contacts)
	assert.Zero(t, report.Resolved)
	assert.Equal(t, cp.Vector{X: 1, Y: 1}, body.Position())
	assert.Equal(t, cp.Vector{X: 2, Y: 2}, body.Velocity())
	assert.Equal(t, 1, logs.FilterMessage("collision: contract violation").Len())
}

func TestStepSkipsDegenerateContacts(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := newWorld(t, DefaultConfig(), []*geom.Polygon{
		geom.NewBox(cp.Vector{}, 10, 10),
		geom.NewBox(cp.Vector{X: 5}, 10, 10),
	}, WithPrimitive(func(a, b *geom.Polygon) (Event, bool) {
		return Event{OverlapV: cp.Vector{X: 1}, OverlapN: cp.Vector{X: 1}}, true
	}), WithLogger(zap.New(core)))

	line := geom.NewPolygon(cp.Vector{}, []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}})
	body := NewBody(line, cp.Vector{}, cp.Vector{X: 3, Y: 0})

	report, err := w.Step(body, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Contacts)
	assert.Zero(t, report.Resolved)
	require.Len(t, report.SkippedErrors(), 2)
	for _, e := range report.SkippedErrors() {
		assert.ErrorIs(t, e, ErrDegenerateGeometry)
	}
	assert.Equal(t, 2, logs.FilterMessage("collision: skipped contact").Len())
	assert.Equal(t, cp.Vector{}, body.Position())
}

func TestNewWorldRejectsBadObstacles(t *testing.T) {
	_, err := NewWorld([]*geom.Polygon{
		geom.NewBox(cp.Vector{}, 10, 10),
		geom.NewPolygon(cp.Vector{}, []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}}),
	}, nil)
	require.ErrorIs(t, err, geom.ErrDegenerateGeometry)
	assert.Contains(t, err.Error(), "obstacle 1")
}

func TestStepCountsTicks(t *testing.T) {
	w := newWorld(t, DefaultConfig(), nil)
	body := NewBody(geom.NewBox(cp.Vector{}, 1, 1), cp.Vector{}, cp.Vector{})
	for i := uint64(1); i <= 3; i++ {
		report, err := w.Step(body, nil)
		require.NoError(t, err)
		assert.Equal(t, i, report.Tick)
	}
}
