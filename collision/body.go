package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
)

// Body is the single dynamic body. Its polygon's offset always equals its
// position; every setter keeps the two together.
type Body struct {
	pos  cp.Vector
	vel  cp.Vector
	poly *geom.Polygon
}

// NewBody takes ownership of poly and moves it to pos.
func NewBody(poly *geom.Polygon, pos, vel cp.Vector) *Body {
	b := &Body{pos: pos, vel: vel, poly: poly}
	b.Sync()
	return b
}

func (b *Body) Position() cp.Vector {
	return b.pos
}

func (b *Body) Velocity() cp.Vector {
	return b.vel
}

func (b *Body) Polygon() *geom.Polygon {
	return b.poly
}

func (b *Body) SetPosition(pos cp.Vector) {
	b.pos = pos
	b.Sync()
}

// Translate moves the body and its polygon by d.
func (b *Body) Translate(d cp.Vector) {
	b.SetPosition(b.pos.Add(d))
}

// SetVelocity replaces the velocity as a whole.
func (b *Body) SetVelocity(vel cp.Vector) {
	b.vel = vel
}

// Sync copies the position onto the polygon offset.
func (b *Body) Sync() {
	if b.poly != nil {
		b.poly.SetPos(b.pos)
	}
}
