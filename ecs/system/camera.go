package system

import (
	"math"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// CameraSystem centers the camera entity on its target, pushed ahead by the
// active rig's look axes. The camera transform holds the view's top-left.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity

	viewW, viewH float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{viewW: common.BaseWidth, viewH: common.BaseHeight}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	offX, offY := activeLookOffset(w, camComp.LookDistance)
	zoom := effectiveZoom(w, cs.camEntity, camComp)

	wantX := target.X + offX - cs.viewW/(2*zoom)
	wantY := target.Y + offY - cs.viewH/(2*zoom)

	t := 1.0
	if camComp.Smoothness > 0 {
		t = common.Clamp(1-camComp.Smoothness, 0.01, 1)
	}
	camTransform.X = common.Lerp(camTransform.X, wantX, t)
	camTransform.Y = common.Lerp(camTransform.Y, wantY, t)
}

// activeLookOffset converts the live camera axes of the active rig into a
// world offset. Horizontal axis is an angle, vertical is normalized.
func activeLookOffset(w *ecs.World, distance float64) (float64, float64) {
	var x, y float64
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, r *component.CameraRig) {
		if !r.Active {
			return
		}
		if cam := r.LiveCamera(); cam != nil {
			x = math.Sin(cam.AxisX*math.Pi/180) * distance
			y = cam.AxisY * distance * 0.5
		}
	})
	return x, y
}

// effectiveZoom prefers the zoom set by the mode hook over the prefab zoom.
func effectiveZoom(w *ecs.World, cam ecs.Entity, c *component.Camera) float64 {
	if mode, ok := ecs.Get(w, cam, component.CameraModeComponent.Kind()); ok && mode.Zoom > 0 {
		return mode.Zoom
	}
	if c != nil && c.Zoom > 0 {
		return c.Zoom
	}
	return 1
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
