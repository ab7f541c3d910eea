package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws platforms, the player and, in debug mode, physics shapes
// and a readout of the camera mode state.
type RenderSystem struct {
	camEntity ecs.Entity
	Debug     bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{Debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if !ecs.IsAlive(w, r.camEntity) {
		r.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}

	camX, camY := 0.0, 0.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX, camY = camTransform.X, camTransform.Y
	}
	camComp, _ := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	zoom := effectiveZoom(w, r.camEntity, camComp)

	toScreen := func(x, y float64) (float32, float32) {
		return float32((x - camX) * zoom), float32((y - camY) * zoom)
	}

	screen.Fill(colornames.Midnightblue)

	for _, p := range w.PhysicsWorld().Platforms() {
		x, y := toScreen(p.X, p.Y)
		vector.FillRect(screen, x, y, float32(p.W*zoom), float32(p.H*zoom), colornames.Darkslategray, false)
		vector.StrokeRect(screen, x, y, float32(p.W*zoom), float32(p.H*zoom), 1, colornames.Slategray, false)
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, t *component.Transform) {
		x, y := toScreen(t.X-p.Width/2, t.Y-p.Height/2)
		vector.FillRect(screen, x, y, float32(p.Width*zoom), float32(p.Height*zoom), playerColor(w, e), false)
		r.drawLookDirection(w, screen, t, toScreen)
	})

	if r.Debug {
		DrawPhysicsDebug(w, screen)
		ebitenutil.DebugPrintAt(screen, r.debugText(w), 10, 10)
	}
}

func (r *RenderSystem) drawLookDirection(w *ecs.World, screen *ebiten.Image, t *component.Transform, toScreen func(x, y float64) (float32, float32)) {
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig) {
		cam := rig.LiveCamera()
		if !rig.Active || cam == nil {
			return
		}
		const length = 40.0
		rad := cam.AxisX * math.Pi / 180
		x0, y0 := toScreen(t.X, t.Y)
		x1, y1 := toScreen(t.X+math.Sin(rad)*length, t.Y+cam.AxisY*length)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Gold, true)
	})
}

func (r *RenderSystem) debugText(w *ecs.World) string {
	text := fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS())
	if cam, ok := ecs.First(w, component.CameraModeComponent.Kind()); ok {
		if m, ok := ecs.Get(w, cam, component.CameraModeComponent.Kind()); ok && m.Controller != nil {
			c := m.Controller
			text += fmt.Sprintf("\nmode: %s  state: %s (%d)  pending: %v  recenter: %v",
				c.Mode(), c.ActiveState(), c.CycleIndex(), c.Pending(), c.Recentering())
		}
	}
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if st, ok := ecs.Get(w, player, component.CollisionStateComponent.Kind()); ok {
			text += fmt.Sprintf("\ngrounded: %v", st.Grounded)
		}
	}
	return text
}

func playerColor(w *ecs.World, e ecs.Entity) color.Color {
	if st, ok := ecs.Get(w, e, component.CollisionStateComponent.Kind()); ok && !st.Grounded {
		return colornames.Lightskyblue
	}
	return colornames.Orange
}
