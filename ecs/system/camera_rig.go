package system

import (
	"math"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// rigHandle exposes a CameraRig entity to the mode controller.
type rigHandle struct {
	w *ecs.World
	e ecs.Entity
}

func (h rigHandle) rig() *component.CameraRig {
	r, _ := ecs.Get(h.w, h.e, component.CameraRigComponent.Kind())
	return r
}

func (h rigHandle) SetActive(active bool) {
	if r := h.rig(); r != nil {
		r.Active = active
	}
}

func (h rigHandle) LiveAxes() (camera.Axes, bool) {
	cam := h.rig().LiveCamera()
	if cam == nil {
		return camera.Axes{}, false
	}
	return camera.Axes{X: cam.AxisX, Y: cam.AxisY}, true
}

func (h rigHandle) SetAxes(a camera.Axes) {
	r := h.rig()
	if r == nil {
		return
	}
	for i := range r.Cameras {
		r.Cameras[i].AxisX = a.X
		r.Cameras[i].AxisY = a.Y
	}
}

func (h rigHandle) SetRecenter(enabled bool) {
	if r := h.rig(); r != nil {
		r.Recenter = enabled
	}
}

// playRigState records state on the rigs of mode and makes the camera named
// after the state live, when the rig has one.
func playRigState(w *ecs.World, mode camera.Mode, state string) {
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, r *component.CameraRig) {
		if r.Mode != mode {
			return
		}
		r.State = state
		for i := range r.Cameras {
			if r.Cameras[i].Name == state {
				r.Live = i
				return
			}
		}
	})
}

const (
	defaultSensitivity   = 2.0
	defaultRecenterSpeed = 4.0
	// axes closer than this to center snap to zero while recentering
	recenterEpsilon = 0.01
)

// CameraRigSystem feeds look input into the live camera of the active rig and
// eases recentering rigs back to zero.
type CameraRigSystem struct {
	dt float64
}

func NewCameraRigSystem() *CameraRigSystem {
	return &CameraRigSystem{dt: fixedStep}
}

func (s *CameraRigSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var look *component.Input
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		look, _ = ecs.Get(w, player, component.InputComponent.Kind())
	}

	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, r *component.CameraRig) {
		if r.Active && look != nil {
			if cam := r.LiveCamera(); cam != nil {
				sens := r.Sensitivity
				if sens <= 0 {
					sens = defaultSensitivity
				}
				cam.AxisX = wrapDegrees(cam.AxisX + look.LookX*sens)
				cam.AxisY = common.Clamp(cam.AxisY+look.LookY*sens*0.01, -1, 1)
			}
		}

		if !r.Recenter {
			return
		}
		speed := r.RecenterSpeed
		if speed <= 0 {
			speed = defaultRecenterSpeed
		}
		t := common.Clamp(speed*s.dt, 0, 1)
		for i := range r.Cameras {
			c := &r.Cameras[i]
			c.AxisX = common.Lerp(c.AxisX, 0, t)
			c.AxisY = common.Lerp(c.AxisY, 0, t)
			if math.Abs(c.AxisX) < recenterEpsilon {
				c.AxisX = 0
			}
			if math.Abs(c.AxisY) < recenterEpsilon {
				c.AxisY = 0
			}
		}
	})
}

// wrapDegrees maps an angle into (-180, 180].
func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
