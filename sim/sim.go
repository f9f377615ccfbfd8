// Package sim couples the motion integrator with the collision pass for one
// scene. The ebiten demo and the headless CLI both drive a Sim.
package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/collision"
	"github.com/milk9111/satcollide/motion"
	"github.com/milk9111/satcollide/scene"
	"github.com/milk9111/satcollide/specs"
	"go.uber.org/zap"
)

// Features are the runtime toggles layered over the loaded collision
// config. Turning bounce or friction off zeroes that coefficient.
type Features struct {
	Bounce      bool
	Friction    bool
	StopSliding bool
	Debug       bool
}

// Sim owns the body, the obstacle world and the live collision config.
type Sim struct {
	scene      *scene.Scene
	integrator *motion.Integrator
	body       *collision.Body
	world      *collision.World
	config     *collision.LiveConfig
	debug      collision.DebugLog
	logger     *zap.Logger

	base       collision.Config
	features   Features
	forceDebug bool
	last       collision.Report
}

// New places the player at the scene's spawn point. Out-of-range config
// values are logged and used as given.
func New(sc *scene.Scene, physics *specs.PhysicsSpec, logger *zap.Logger) (*Sim, error) {
	if sc == nil {
		return nil, fmt.Errorf("sim: nil scene")
	}
	if physics == nil {
		physics = &specs.PhysicsSpec{
			TPS:       60,
			Collision: collision.DefaultConfig(),
			Motion:    motion.DefaultSettings(),
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Sim{
		scene:  sc,
		config: collision.NewLiveConfig(physics.Collision),
		logger: logger,
	}
	primitive, err := collision.PrimitiveByName(physics.Primitive)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	world, err := collision.NewWorld(sc.Obstacles, s.config,
		collision.WithPrimitive(primitive),
		collision.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("sim: scene %s: %w", sc.Name, err)
	}
	s.world = world
	s.integrator = motion.New(s.motionSettings(physics.Motion), sc.Spawn)
	s.body = collision.NewBody(sc.PlayerPolygon(), sc.Spawn, cp.Vector{})
	s.SetConfig(physics.Collision)
	return s, nil
}

// SetConfig replaces the base collision config, e.g. after physics.yaml was
// edited. The feature toggles are reset to what the config says.
func (s *Sim) SetConfig(c collision.Config) {
	if err := c.Validate(); err != nil {
		s.logger.Warn("sim: collision config out of range", zap.Error(err))
	}
	s.base = c
	s.features = Features{
		Bounce:      true,
		Friction:    true,
		StopSliding: c.StopSliding,
		Debug:       c.Debug || s.forceDebug,
	}
	s.apply()
}

// ForceDebug turns the debug feature on and keeps it on across SetConfig,
// so a reloaded config cannot switch off a debug overlay asked for at
// startup. It can still be toggled off with SetFeatures.
func (s *Sim) ForceDebug(on bool) {
	s.forceDebug = on
	if on && !s.features.Debug {
		s.features.Debug = true
		s.apply()
	}
}

// SetMotion replaces the integrator settings. Bounds and size stay those of
// the scene.
func (s *Sim) SetMotion(m motion.Settings) {
	s.integrator.SetSettings(s.motionSettings(m))
}

func (s *Sim) motionSettings(m motion.Settings) motion.Settings {
	if s.scene.Bounds.X > 0 && s.scene.Bounds.Y > 0 {
		m.Bounds = s.scene.Bounds
	}
	m.Size = s.scene.Size
	return m
}

func (s *Sim) Features() Features {
	return s.features
}

// SetFeatures applies toggles on top of the base config.
func (s *Sim) SetFeatures(f Features) {
	s.features = f
	s.apply()
}

func (s *Sim) apply() {
	c := s.base
	if !s.features.Bounce {
		c.BounceCoefficient = 0
	}
	if !s.features.Friction {
		c.FrictionCoefficient = 0
	}
	c.StopSliding = s.features.StopSliding
	c.Debug = s.features.Debug
	s.config.Store(c)
}

// Config returns the collision config currently in effect.
func (s *Sim) Config() collision.Config {
	return s.config.Load()
}

func (s *Sim) GravityEnabled() bool {
	return s.integrator.GravityEnabled()
}

func (s *Sim) SetGravityEnabled(on bool) {
	s.integrator.SetGravityEnabled(on)
}

// Tick integrates the body for dt seconds, then resolves its contacts in
// obstacle order and writes the result back into the integrator. When the
// collision pass aborts, the corrections of the contacts resolved before
// the failure are kept and written back as well.
func (s *Sim) Tick(dt float64, intent motion.Intent) (collision.Report, error) {
	s.integrator.SetIntent(intent)
	s.integrator.Step(dt)
	s.body.SetPosition(s.integrator.Position())
	s.body.SetVelocity(s.integrator.Velocity())

	var debug *collision.DebugLog
	if s.config.Load().Debug {
		s.debug.Reset()
		debug = &s.debug
	}

	report, err := s.world.Step(s.body, debug)
	s.last = report
	s.integrator.SetPosition(s.body.Position())
	s.integrator.SetVelocity(s.body.Velocity())
	if err != nil {
		return report, fmt.Errorf("sim: tick %d: %w", report.Tick, err)
	}
	return report, nil
}

func (s *Sim) Scene() *scene.Scene {
	return s.scene
}

func (s *Sim) Body() *collision.Body {
	return s.body
}

// Debug returns the vectors captured during the last tick with debug on.
func (s *Sim) Debug() *collision.DebugLog {
	return &s.debug
}

// LastReport returns the report of the most recent Tick.
func (s *Sim) LastReport() collision.Report {
	return s.last
}

// Reset puts the body back at the spawn point at rest.
func (s *Sim) Reset() {
	s.integrator.SetPosition(s.scene.Spawn)
	s.integrator.SetVelocity(cp.Vector{})
	s.body.SetPosition(s.scene.Spawn)
	s.body.SetVelocity(cp.Vector{})
	s.debug.Reset()
}
