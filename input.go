package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/satcollide/motion"
	"go.uber.org/zap"
)

func readIntent() motion.Intent {
	return motion.Intent{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
}

// handleToggles flips the runtime features: G gravity, B bounce, F
// friction, C stop sliding, V debug overlay.
func (g *Game) handleToggles() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.sim.SetGravityEnabled(!g.sim.GravityEnabled())
		g.logger.Debug("satcollide: toggle", zap.Bool("gravity", g.sim.GravityEnabled()))
	}

	f := g.sim.Features()
	changed := false
	flip := func(key ebiten.Key, v *bool) {
		if inpututil.IsKeyJustPressed(key) {
			*v = !*v
			changed = true
		}
	}
	flip(ebiten.KeyB, &f.Bounce)
	flip(ebiten.KeyF, &f.Friction)
	flip(ebiten.KeyC, &f.StopSliding)
	flip(ebiten.KeyV, &f.Debug)
	if !changed {
		return
	}
	g.sim.SetFeatures(f)
	g.logger.Debug("satcollide: toggle",
		zap.Bool("bounce", f.Bounce),
		zap.Bool("friction", f.Friction),
		zap.Bool("stop_sliding", f.StopSliding),
		zap.Bool("debug", f.Debug),
	)
}
