// Package motion integrates the dynamic body between collision passes:
// gravity, horizontal acceleration and drag, velocity limits and world
// bounds. It owns no collision logic; the collision pass reads and writes
// its position and velocity once per tick.
package motion

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Settings tunes the integrator. Zero fields disable the matching feature.
type Settings struct {
	Gravity float64 `yaml:"gravity"`
	// DragX slows horizontal motion while no horizontal acceleration is
	// applied, in units/s².
	DragX float64 `yaml:"drag_x"`
	// MaxVelocity limits |vx| and |vy| independently.
	MaxVelocity cp.Vector `yaml:"max_velocity"`
	// MoveAccel is the horizontal acceleration for a left/right intent.
	MoveAccel float64 `yaml:"move_accel"`
	// VerticalSpeed is the vertical velocity for an up/down intent.
	VerticalSpeed float64 `yaml:"vertical_speed"`
	// Bounds is the world size; the body is kept inside [0,Bounds].
	Bounds cp.Vector `yaml:"bounds"`
	// Size is the body's extent used for bounds clamping.
	Size cp.Vector `yaml:"size"`
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:       1000,
		DragX:         1000,
		MaxVelocity:   cp.Vector{X: 1000, Y: 500},
		MoveAccel:     1000,
		VerticalSpeed: 200,
		Bounds:        cp.Vector{X: 800, Y: 600},
		Size:          cp.Vector{X: 48, Y: 96},
	}
}

// Intent is the directional input for one tick.
type Intent struct {
	Up, Down, Left, Right bool
}

// Integrator moves a single body in its own Chipmunk space. The body has no
// shapes, so the space only integrates it.
type Integrator struct {
	space    *cp.Space
	body     *cp.Body
	settings Settings

	gravityOn bool
	accelX    float64
}

// New places the body at pos with gravity enabled.
func New(settings Settings, pos cp.Vector) *Integrator {
	space := cp.NewSpace()
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(pos)

	in := &Integrator{space: space, body: body, settings: settings}
	body.SetVelocityUpdateFunc(in.updateVelocity)
	space.AddBody(body)
	in.SetGravityEnabled(true)
	return in
}

func (in *Integrator) Settings() Settings {
	return in.settings
}

// SetSettings replaces the settings, keeping the gravity toggle.
func (in *Integrator) SetSettings(s Settings) {
	in.settings = s
	in.SetGravityEnabled(in.gravityOn)
}

func (in *Integrator) GravityEnabled() bool {
	return in.gravityOn
}

func (in *Integrator) SetGravityEnabled(on bool) {
	in.gravityOn = on
	g := 0.0
	if on {
		g = in.settings.Gravity
	}
	in.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// SetIntent turns directional input into acceleration and velocity for the
// next Step. Without gravity the vertical velocity only comes from input.
func (in *Integrator) SetIntent(intent Intent) {
	in.accelX = 0
	v := in.body.Velocity()
	if !in.gravityOn {
		v.Y = 0
	}
	if intent.Up {
		v.Y = -in.settings.VerticalSpeed
	}
	if intent.Down {
		v.Y = in.settings.VerticalSpeed
	}
	if intent.Left {
		in.accelX -= in.settings.MoveAccel
	}
	if intent.Right {
		in.accelX += in.settings.MoveAccel
	}
	in.body.SetVelocityVector(v)
}

// Step advances the body by dt seconds.
func (in *Integrator) Step(dt float64) {
	if dt <= 0 {
		return
	}
	in.space.Step(dt)
	in.clampBounds()
}

func (in *Integrator) Position() cp.Vector {
	return in.body.Position()
}

func (in *Integrator) Velocity() cp.Vector {
	return in.body.Velocity()
}

func (in *Integrator) SetPosition(pos cp.Vector) {
	in.body.SetPosition(pos)
}

func (in *Integrator) SetVelocity(vel cp.Vector) {
	in.body.SetVelocityVector(vel)
}

func (in *Integrator) updateVelocity(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	cp.BodyUpdateVelocity(body, gravity, damping, dt)

	v := body.Velocity()
	if in.accelX != 0 {
		v.X += in.accelX * dt
	} else if in.settings.DragX > 0 {
		v.X = applyDrag(v.X, in.settings.DragX*dt)
	}
	v = clampVelocity(v, in.settings.MaxVelocity)
	body.SetVelocityVector(v)
}

// applyDrag moves v towards zero by amount without overshooting.
func applyDrag(v, amount float64) float64 {
	switch {
	case v-amount > 0:
		return v - amount
	case v+amount < 0:
		return v + amount
	default:
		return 0
	}
}

func clampVelocity(v, limit cp.Vector) cp.Vector {
	if limit.X > 0 {
		v.X = cp.Clamp(v.X, -limit.X, limit.X)
	}
	if limit.Y > 0 {
		v.Y = cp.Clamp(v.Y, -limit.Y, limit.Y)
	}
	return v
}

func (in *Integrator) clampBounds() {
	b := in.settings.Bounds
	if b.X <= 0 || b.Y <= 0 {
		return
	}
	pos := in.body.Position()
	vel := in.body.Velocity()
	maxX := b.X - in.settings.Size.X
	maxY := b.Y - in.settings.Size.Y

	if pos.X < 0 || pos.X > maxX {
		pos.X = cp.Clamp(pos.X, 0, maxX)
		vel.X = 0
	}
	if pos.Y < 0 || pos.Y > maxY {
		pos.Y = cp.Clamp(pos.Y, 0, maxY)
		vel.Y = 0
	}
	in.body.SetPosition(pos)
	in.body.SetVelocityVector(vel)
}
