package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/collision"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/sim"
	"golang.org/x/image/colornames"
)

// normalScale is the on-screen length of a unit normal.
const normalScale = 100

func drawScene(screen *ebiten.Image, s *sim.Sim) {
	screen.Fill(colornames.Black)
	for _, o := range s.Scene().Obstacles {
		drawPolygon(screen, o, colornames.Lightgray)
	}

	bodyColor := colornames.Limegreen
	if s.LastReport().Contacts > 0 {
		bodyColor = colornames.Crimson
	}
	drawPolygon(screen, s.Body().Polygon(), bodyColor)
}

func drawPolygon(screen *ebiten.Image, p *geom.Polygon, clr color.Color) {
	pts := p.WorldPoints()
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, true)
	}
}

func drawDebug(screen *ebiten.Image, s *sim.Sim) {
	ebitenutil.DebugPrintAt(screen, debugText(s), 10, 10)

	n, ok := s.Debug().Lookup(collision.VecOverlapN)
	if !ok {
		return
	}
	center := cp.Vector{X: screenWidth / 2, Y: screenHeight / 2}
	tip := center.Add(n.Mult(normalScale))
	vector.StrokeLine(screen, float32(center.X), float32(center.Y), float32(tip.X), float32(tip.Y), 2, colornames.Gold, true)
}

func debugText(s *sim.Sim) string {
	var b strings.Builder
	body := s.Body()
	f := s.Features()
	report := s.LastReport()

	fmt.Fprintf(&b, "FPS: %.2f  TPS: %.2f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	fmt.Fprintf(&b, "position: %s\n", formatVec(body.Position()))
	fmt.Fprintf(&b, "velocity: %s\n", formatVec(body.Velocity()))
	fmt.Fprintf(&b, "contacts: %d  resolved: %d  skipped: %d\n",
		report.Contacts, report.Resolved, len(report.SkippedErrors()))
	fmt.Fprintf(&b, "[G]ravity: %s  [B]ounce: %s  [F]riction: %s  [C] stop sliding: %s\n",
		onOff(s.GravityEnabled()), onOff(f.Bounce), onOff(f.Friction), onOff(f.StopSliding))

	for _, v := range s.Debug().Vectors() {
		fmt.Fprintf(&b, "#%d %-11s %s\n", v.Obstacle, v.Name, formatVec(v.Vec))
	}
	return b.String()
}

func formatVec(v cp.Vector) string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
