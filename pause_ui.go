package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/satcollide/sim"
	"golang.org/x/image/font/basicfont"
)

// toggleButtons keeps the pause menu labels in step with the Sim.
type toggleButtons struct {
	g       *Game
	gravity *widget.Button
	bounce  *widget.Button
	fric    *widget.Button
	slide   *widget.Button
	debug   *widget.Button
}

func (t *toggleButtons) refresh() {
	f := t.g.sim.Features()
	setLabel(t.gravity, "Gravity: "+onOff(t.g.sim.GravityEnabled()))
	setLabel(t.bounce, "Bounce: "+onOff(f.Bounce))
	setLabel(t.fric, "Friction: "+onOff(f.Friction))
	setLabel(t.slide, "Stop sliding: "+onOff(f.StopSliding))
	setLabel(t.debug, "Debug: "+onOff(f.Debug))
}

func setLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if text := b.Text(); text != nil {
		text.Label = label
	}
}

// NewPauseUI builds the centered pause menu: Resume, Reset and one button
// per feature toggle. Buttons use colored nine-slices and the basic font so
// no theme assets are needed.
func NewPauseUI(g *Game) (*ebitenui.UI, *toggleButtons) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	toggle := &toggleButtons{g: g}
	withFeatures := func(fn func(f *sim.Features)) func() {
		return func() {
			f := g.sim.Features()
			fn(&f)
			g.sim.SetFeatures(f)
			toggle.refresh()
		}
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)
	resumeBtn := button("Resume", func() { g.paused = false })
	resetBtn := button("Reset body", func() { g.sim.Reset() })
	toggle.gravity = button("", func() {
		g.sim.SetGravityEnabled(!g.sim.GravityEnabled())
		toggle.refresh()
	})
	toggle.bounce = button("", withFeatures(func(f *sim.Features) { f.Bounce = !f.Bounce }))
	toggle.fric = button("", withFeatures(func(f *sim.Features) { f.Friction = !f.Friction }))
	toggle.slide = button("", withFeatures(func(f *sim.Features) { f.StopSliding = !f.StopSliding }))
	toggle.debug = button("", withFeatures(func(f *sim.Features) { f.Debug = !f.Debug }))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(screenWidth/2, screenHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(resetBtn)
	panel.AddChild(toggle.gravity)
	panel.AddChild(toggle.bounce)
	panel.AddChild(toggle.fric)
	panel.AddChild(toggle.slide)
	panel.AddChild(toggle.debug)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	toggle.refresh()
	return &ebitenui.UI{Container: root}, toggle
}
