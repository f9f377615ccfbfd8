package scene

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func useEmbedded(t *testing.T) {
	t.Helper()
	prev := specs.DiskDir
	specs.DiskDir = t.TempDir()
	t.Cleanup(func() { specs.DiskDir = prev })
}

func TestLoadDefaultScene(t *testing.T) {
	useEmbedded(t)

	s, err := Load("default", zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "default", s.Name)
	assert.Equal(t, cp.Vector{X: 200, Y: 200}, s.Spawn)
	assert.Equal(t, cp.Vector{X: 48, Y: 96}, s.Size)
	assert.Equal(t, cp.Vector{X: 800, Y: 600}, s.Bounds)

	require.Len(t, s.Obstacles, 8)
	require.Len(t, s.Names, 8)
	assert.Equal(t, "floor", s.Names[0])
	assert.Equal(t, "bottom-right steps #0", s.Names[2])
	assert.Equal(t, "odd shapes #2", s.Names[7])

	assert.Equal(t, cp.Vector{X: 0, Y: 550}, s.Obstacles[0].Pos)
	for i, step := range s.Obstacles[2:5] {
		assert.Equal(t, cp.Vector{X: 300 + 32*float64(i), Y: 296 - 32*float64(i)}, step.Pos)
		assert.Equal(t, []cp.Vector{{X: 32, Y: 0}, {X: 32, Y: 32}, {X: 0, Y: 32}}, step.Points())
	}
	assert.Equal(t, cp.Vector{X: 500, Y: 300}, s.Obstacles[7].Pos)
	assert.Equal(t, 6, s.Obstacles[7].Len())

	player := s.PlayerPolygon()
	assert.Equal(t, s.Spawn, player.Pos)
	assert.NoError(t, player.Validate())
}

func TestLoadCornerScene(t *testing.T) {
	useEmbedded(t)

	s, err := Load("corner", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"floor", "wall"}, s.Names)
}

func TestBuildErrors(t *testing.T) {
	player := specs.PlayerSpec{Size: specs.SizeSpec{W: 10, H: 10}}
	cases := []struct {
		name string
		spec *specs.SceneSpec
		want error
	}{
		{"nil_spec", nil, nil},
		{"no_player_size", &specs.SceneSpec{Name: "x"}, nil},
		{
			"concave",
			&specs.SceneSpec{Player: player, Obstacles: []specs.ObstacleSpec{{
				Points: []specs.PointSpec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 2}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			}}},
			geom.ErrNotConvex,
		},
		{
			"too_few_points",
			&specs.SceneSpec{Player: player, Obstacles: []specs.ObstacleSpec{{Points: []specs.PointSpec{{X: 0, Y: 0}}}}},
			geom.ErrDegenerateGeometry,
		},
		{
			"flat_box",
			&specs.SceneSpec{Player: player, Obstacles: []specs.ObstacleSpec{{Box: &specs.SizeSpec{W: 10}}}},
			geom.ErrDegenerateGeometry,
		},
		{
			"box_and_points",
			&specs.SceneSpec{Player: player, Obstacles: []specs.ObstacleSpec{{
				Box:    &specs.SizeSpec{W: 10, H: 10},
				Points: []specs.PointSpec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
			}}},
			nil,
		},
		{
			"generator_without_script",
			&specs.SceneSpec{Player: player, Generators: []specs.GeneratorSpec{{Name: "empty"}}},
			nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Build(c.spec, nil)
			require.Error(t, err)
			if c.want != nil {
				assert.ErrorIs(t, err, c.want)
			}
		})
	}
}

func TestGeneratorSource(t *testing.T) {
	src := []byte(`
box(params.x, 10, 20, 5)
for i := 0; i < 2; i++ {
	polygon(i * 10, 0, [[0, 0], [4.5, 0], [0, 4.5]])
}
`)
	polys, err := runGeneratorSource(src, map[string]any{"x": 7})
	require.NoError(t, err)
	require.Len(t, polys, 3)

	assert.Equal(t, cp.Vector{X: 7, Y: 10}, polys[0].Pos)
	assert.Equal(t, cp.BB{L: 7, B: 10, R: 27, T: 15}, polys[0].BB())
	assert.Equal(t, cp.Vector{X: 10, Y: 0}, polys[2].Pos)
	assert.Equal(t, cp.Vector{X: 4.5, Y: 0}, polys[2].Points()[1])
}

func TestGeneratorSourceErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `polygon(`},
		{"wrong_arity", `box(1, 2, 3)`},
		{"not_a_number", `box("a", 2, 3, 4)`},
		{"bad_point", `polygon(0, 0, [[1, 2, 3]])`},
		{"points_not_array", `polygon(0, 0, 5)`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := runGeneratorSource([]byte(c.src), nil)
			require.Error(t, err)
		})
	}
}
