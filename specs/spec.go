package specs

import (
	"fmt"

	"github.com/milk9111/satcollide/collision"
	"github.com/milk9111/satcollide/motion"
	"gopkg.in/yaml.v3"
)

const PhysicsFile = "physics.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("specs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("specs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PhysicsSpec is physics.yaml: the collision coefficients plus the
// integrator settings.
type PhysicsSpec struct {
	TPS int `yaml:"tps"`
	// Primitive names the overlap test, see collision.PrimitiveByName.
	Primitive string           `yaml:"primitive"`
	Collision collision.Config `yaml:"collision"`
	Motion    motion.Settings  `yaml:"motion"`
}

// LoadPhysics reads physics.yaml. Fields left out keep their defaults.
func LoadPhysics() (*PhysicsSpec, error) {
	data, err := Load(PhysicsFile)
	if err != nil {
		return nil, fmt.Errorf("specs: load %s: %w", PhysicsFile, err)
	}
	spec := PhysicsSpec{
		TPS:       60,
		Collision: collision.DefaultConfig(),
		Motion:    motion.DefaultSettings(),
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("specs: unmarshal %s: %w", PhysicsFile, err)
	}
	if spec.TPS <= 0 {
		return nil, fmt.Errorf("specs: %s: tps must be positive, got %d", PhysicsFile, spec.TPS)
	}
	return &spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ObstacleSpec is either a box (Box set) or a polygon (Points set), both
// offset by Position.
type ObstacleSpec struct {
	Name     string      `yaml:"name"`
	Position PointSpec   `yaml:"position"`
	Box      *SizeSpec   `yaml:"box,omitempty"`
	Points   []PointSpec `yaml:"points,omitempty"`
}

// GeneratorSpec runs a script that emits obstacles.
type GeneratorSpec struct {
	Name   string         `yaml:"name"`
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`
}

type PlayerSpec struct {
	Position PointSpec `yaml:"position"`
	Size     SizeSpec  `yaml:"size"`
}

// SceneSpec lists obstacles in resolution order: explicit obstacles first,
// then each generator's output in turn.
type SceneSpec struct {
	Name       string          `yaml:"name"`
	Bounds     SizeSpec        `yaml:"bounds"`
	Player     PlayerSpec      `yaml:"player"`
	Obstacles  []ObstacleSpec  `yaml:"obstacles"`
	Generators []GeneratorSpec `yaml:"generators"`
}

func LoadScene(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](cleanScenePath(name))
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
