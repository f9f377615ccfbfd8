// Package scene turns a scene spec into the obstacle list and spawn point
// the collision pass runs against.
package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/specs"
	"go.uber.org/zap"
)

// Scene is immutable once built.
type Scene struct {
	Name string
	// Obstacles are in resolution order; Names[i] labels Obstacles[i].
	Obstacles []*geom.Polygon
	Names     []string
	Spawn     cp.Vector
	Size      cp.Vector
	Bounds    cp.Vector
}

// Load reads the named scene spec and builds it.
func Load(name string, logger *zap.Logger) (*Scene, error) {
	spec, err := specs.LoadScene(name)
	if err != nil {
		return nil, err
	}
	return Build(spec, logger)
}

// Build validates every obstacle, explicit and generated, and fails on the
// first bad one.
func Build(spec *specs.SceneSpec, logger *zap.Logger) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scene{
		Name:   spec.Name,
		Spawn:  toVector(spec.Player.Position),
		Size:   cp.Vector{X: spec.Player.Size.W, Y: spec.Player.Size.H},
		Bounds: cp.Vector{X: spec.Bounds.W, Y: spec.Bounds.H},
	}
	if s.Size.X <= 0 || s.Size.Y <= 0 {
		return nil, fmt.Errorf("scene %s: player size %vx%v must be positive", spec.Name, s.Size.X, s.Size.Y)
	}

	for i, o := range spec.Obstacles {
		name := o.Name
		if name == "" {
			name = fmt.Sprintf("obstacle %d", i)
		}
		poly, err := obstacleFromSpec(o)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %s: %w", spec.Name, name, err)
		}
		s.add(name, poly)
	}

	for _, g := range spec.Generators {
		polys, err := runGenerator(g)
		if err != nil {
			return nil, fmt.Errorf("scene %s: generator %s: %w", spec.Name, g.Name, err)
		}
		for i, poly := range polys {
			s.add(fmt.Sprintf("%s #%d", g.Name, i), poly)
		}
		logger.Debug("scene: generator ran",
			zap.String("scene", spec.Name),
			zap.String("generator", g.Name),
			zap.Int("polygons", len(polys)),
		)
	}

	for i, poly := range s.Obstacles {
		if err := poly.Validate(); err != nil {
			return nil, fmt.Errorf("scene %s: %s: %w", spec.Name, s.Names[i], err)
		}
	}

	logger.Info("scene: built",
		zap.String("scene", s.Name),
		zap.Int("obstacles", len(s.Obstacles)),
	)
	return s, nil
}

func (s *Scene) add(name string, poly *geom.Polygon) {
	s.Obstacles = append(s.Obstacles, poly)
	s.Names = append(s.Names, name)
}

// PlayerPolygon returns a fresh box for the player at the spawn point.
func (s *Scene) PlayerPolygon() *geom.Polygon {
	return geom.NewBox(s.Spawn, s.Size.X, s.Size.Y)
}

func obstacleFromSpec(o specs.ObstacleSpec) (*geom.Polygon, error) {
	pos := toVector(o.Position)
	switch {
	case o.Box != nil && len(o.Points) > 0:
		return nil, fmt.Errorf("both box and points given")
	case o.Box != nil:
		if o.Box.W <= 0 || o.Box.H <= 0 {
			return nil, fmt.Errorf("%w: box %vx%v", geom.ErrDegenerateGeometry, o.Box.W, o.Box.H)
		}
		return geom.NewBox(pos, o.Box.W, o.Box.H), nil
	default:
		points := make([]cp.Vector, len(o.Points))
		for i, p := range o.Points {
			points[i] = toVector(p)
		}
		return geom.NewPolygon(pos, points), nil
	}
}

func toVector(p specs.PointSpec) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}
