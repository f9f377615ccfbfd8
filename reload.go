package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/satcollide/specs"
	"go.uber.org/zap"
)

// drainReload applies every pending spec edit without blocking the frame.
func (g *Game) drainReload() {
	for g.watcher != nil {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("satcollide: watch", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(change specs.Change) {
	fields := []zap.Field{zap.String("path", change.Path), zap.Stringer("kind", change.Kind)}

	if change.Kind == specs.ChangePhysics {
		physics, err := specs.LoadPhysics()
		if err != nil {
			g.logger.Warn("satcollide: reload physics", append(fields, zap.Error(err))...)
			return
		}
		g.physics = physics
		g.sim.SetConfig(physics.Collision)
		g.sim.SetMotion(physics.Motion)
		ebiten.SetTPS(physics.TPS)
		g.toggle.refresh()
		g.logger.Info("satcollide: physics reloaded", fields...)
		return
	}

	if !change.AffectsScene(g.sceneName) {
		g.logger.Debug("satcollide: change ignored", append(fields, zap.String("scene", g.sceneName))...)
		return
	}
	if err := g.loadScene(); err != nil {
		g.logger.Warn("satcollide: reload scene", append(fields, zap.String("scene", g.sceneName), zap.Error(err))...)
		return
	}
	g.toggle.refresh()
	g.logger.Info("satcollide: scene reloaded", append(fields, zap.String("scene", g.sceneName))...)
}
