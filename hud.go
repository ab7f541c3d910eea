package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"golang.org/x/image/font/basicfont"
)

// reloadNoticeFrames is how long a prefab reload stays on the HUD.
const reloadNoticeFrames = 120

// HUD shows the camera mode label in the top-right corner.
type HUD struct {
	ui     *ebitenui.UI
	label  *widget.Text
	hint   *widget.Text
	notice reloadNotice
}

type reloadNotice struct {
	text   string
	frames int
}

func (n *reloadNotice) observe(w *ecs.World) {
	for _, evt := range w.Events().Of(ecs.EventPrefabReloaded) {
		if name, ok := evt.Data.(string); ok {
			n.text = "reloaded " + name
			n.frames = reloadNoticeFrames
		}
	}
}

// next returns the notice to show this frame and counts it down.
func (n *reloadNotice) next() string {
	if n.frames <= 0 {
		return ""
	}
	n.frames--
	return n.text
}

func hudFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func NewHUD() *HUD {
	face := hudFace()
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dim := color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}

	label := widget.NewText(widget.TextOpts.Text("", face, white))
	hint := widget.NewText(widget.TextOpts.Text("", face, dim))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 140})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(label)
	panel.AddChild(hint)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &HUD{ui: &ebitenui.UI{Container: root}, label: label, hint: hint}
}

// Update runs as a world system after prefab reloads are applied.
func (h *HUD) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	h.notice.observe(w)
}

// Sync copies the camera mode label and any pending change into the HUD. A
// recent prefab reload shows in the hint line when nothing else does.
func (h *HUD) Sync(w *ecs.World, modes *system.CameraModeSystem) {
	if h == nil {
		return
	}
	label, hint := hudText(w, modes)
	if notice := h.notice.next(); hint == "" {
		hint = notice
	}
	h.label.Label, h.hint.Label = label, hint
	h.ui.Update()
}

func hudText(w *ecs.World, modes *system.CameraModeSystem) (label, hint string) {
	ctrl := modes.Controller()
	if ctrl == nil {
		return "", ""
	}
	if cam, ok := modes.Camera(); ok {
		if m, ok := ecs.Get(w, cam, component.CameraModeComponent.Kind()); ok {
			label = m.Label
		}
	}
	if label == "" {
		label = ctrl.Mode().String()
	}
	switch {
	case ctrl.Pending():
		hint = "switching on landing"
	case ctrl.Recentering():
		hint = "recentering"
	}
	return label, hint
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil {
		return
	}
	h.ui.Draw(screen)
}
