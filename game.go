package main

import (
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/satcollide/collision"
	"github.com/milk9111/satcollide/scene"
	"github.com/milk9111/satcollide/sim"
	"github.com/milk9111/satcollide/specs"
	"go.uber.org/zap"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

type Game struct {
	frames int

	sceneName  string
	forceDebug bool
	physics    *specs.PhysicsSpec
	sim        *sim.Sim
	logger     *zap.Logger
	watcher    *specs.Watcher

	paused bool
	ui     *ebitenui.UI
	toggle *toggleButtons
}

func NewGame(sceneName string, forceDebug bool, logger *zap.Logger) (*Game, error) {
	physics, err := specs.LoadPhysics()
	if err != nil {
		return nil, err
	}
	g := &Game{
		sceneName:  sceneName,
		forceDebug: forceDebug,
		physics:    physics,
		logger:     logger,
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}
	ebiten.SetTPS(physics.TPS)

	// Without a specs/ directory on disk there is nothing to watch; the
	// embedded copies are used as they are.
	if w, err := specs.NewWatcher(specs.WatchDirs()...); err != nil {
		logger.Warn("satcollide: hot reload disabled", zap.Error(err))
	} else {
		g.watcher = w
	}

	g.ui, g.toggle = NewPauseUI(g)
	return g, nil
}

// loadScene builds the scene and a fresh Sim for it. On failure the
// current Sim is kept.
func (g *Game) loadScene() error {
	sc, err := scene.Load(g.sceneName, g.logger)
	if err != nil {
		return err
	}
	s, err := sim.New(sc, g.physics, g.logger)
	if err != nil {
		return err
	}
	s.ForceDebug(g.forceDebug)
	if g.sim != nil {
		s.SetGravityEnabled(g.sim.GravityEnabled())
		s.SetFeatures(g.sim.Features())
	}
	g.sim = s
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.drainReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.toggle.refresh()
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	g.handleToggles()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
	}

	dt := 1 / float64(ebiten.TPS())
	if _, err := g.sim.Tick(dt, readIntent()); err != nil {
		// The collision pass already logged the offending contact.
		if !errors.Is(err, collision.ErrContractViolation) {
			return fmt.Errorf("satcollide: %w", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g.sim)
	if g.sim.Features().Debug {
		drawDebug(screen, g.sim)
	}
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return screenWidth, screenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
