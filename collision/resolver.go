package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/common"
)

// Debug vector names, in capture order.
const (
	VecVelocity    = "velocity"
	VecOverlapV    = "overlapV"
	VecOverlapN    = "overlapN"
	VecVelocityN   = "velocityN"
	VecVelocityT   = "velocityT"
	VecBounce      = "bounce"
	VecFriction    = "friction"
	VecNewVelocity = "newVelocity"
)

// Resolver pushes the body out of one contact and recomputes its velocity
// from the normal and tangential parts.
type Resolver struct {
	config ConfigSource
}

// NewResolver reads its coefficients from config on every Resolve call.
func NewResolver(config ConfigSource) *Resolver {
	if config == nil {
		config = NewLiveConfig(DefaultConfig())
	}
	return &Resolver{config: config}
}

// Resolve applies one contact to body. Contacts of a tick must be resolved
// in the order the Detector yields them; each call starts from the position
// and velocity left by the previous one.
//
// Either the whole correction is applied or none of it: every check runs
// before the body is touched. Errors are *EventError wrapping
// ErrDegenerateGeometry or ErrContractViolation.
func (r *Resolver) Resolve(body *Body, c Contact, debug *DebugLog) error {
	if err := checkContact(body, c); err != nil {
		return &EventError{Obstacle: c.Index, Err: err}
	}
	cfg := r.config.Load()

	// The overlap vector points into the obstacle; go the other way.
	overlapV := c.Event.OverlapV.Neg()
	body.Translate(overlapV)

	normal := c.Event.OverlapN.Neg()
	velocity := body.Velocity()

	debug.add(c.Index, VecVelocity, velocity)
	debug.add(c.Index, VecOverlapV, overlapV)
	debug.add(c.Index, VecOverlapN, normal)

	if cfg.ApproachingOnly && velocity.Dot(normal) >= 0 {
		return nil
	}

	velocityN := velocity.Project(normal)
	velocityT := velocity.Sub(velocityN)

	bounce := velocityN.Mult(-cfg.BounceCoefficient)
	friction := velocityT.Mult(1 - cfg.FrictionCoefficient)
	if cfg.StopSliding && friction.Length() < cfg.SlideThreshold {
		friction = cp.Vector{}
	}

	newVelocity := friction.Add(bounce)
	body.SetVelocity(newVelocity)

	debug.add(c.Index, VecVelocityN, velocityN)
	debug.add(c.Index, VecVelocityT, velocityT)
	debug.add(c.Index, VecBounce, bounce)
	debug.add(c.Index, VecFriction, friction)
	debug.add(c.Index, VecNewVelocity, newVelocity)
	return nil
}

func checkContact(body *Body, c Contact) error {
	if body == nil {
		return fmt.Errorf("%w: nil body", ErrDegenerateGeometry)
	}
	if err := body.Polygon().Validate(); err != nil {
		return fmt.Errorf("%w: body: %w", ErrDegenerateGeometry, err)
	}
	if c.Obstacle != nil {
		if err := c.Obstacle.Validate(); err != nil {
			return fmt.Errorf("%w: obstacle: %w", ErrDegenerateGeometry, err)
		}
	}

	n := c.Event.OverlapN
	v := c.Event.OverlapV
	if !common.IsFinite(n.X) || !common.IsFinite(n.Y) || !common.IsFinite(v.X) || !common.IsFinite(v.Y) {
		return fmt.Errorf("%w: non-finite overlap (v=%v n=%v)", ErrContractViolation, v, n)
	}
	if common.NearZero(n.Length()) {
		return fmt.Errorf("%w: overlap reported without a normal", ErrContractViolation)
	}
	if !common.IsUnit(n.Length()) {
		return fmt.Errorf("%w: normal %v has length %v", ErrContractViolation, n, n.Length())
	}
	return nil
}
