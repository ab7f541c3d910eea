package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// NewCamera builds the camera entity and one rig entity per mode from
// camera_mode.yaml.
func NewCamera(w *ecs.World, logger *slog.Logger) (ecs.Entity, error) {
	spec, err := prefabs.LoadCameraModeSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	return NewCameraFromSpec(w, spec, logger)
}

// NewCameraFromSpec is NewCamera for an already loaded spec.
func NewCameraFromSpec(w *ecs.World, spec *prefabs.CameraModeSpec, logger *slog.Logger) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	initial, _ := spec.Initial()

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	zoom := spec.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	lookDistance := spec.Camera.LookDistance
	if lookDistance == 0 {
		lookDistance = 120
	}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		TargetName:   spec.Camera.Target,
		Zoom:         zoom,
		Smoothness:   spec.Camera.Smoothness,
		LookDistance: lookDistance,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	ctrl := camera.NewModeController(camera.Config{
		Initial:  initial,
		Unlocked: spec.States.Unlocked,
		Locked:   spec.States.Locked,
		Logger:   logger,
	})
	if err := ecs.Add(w, cam, component.CameraModeComponent.Kind(), &component.CameraMode{Controller: ctrl}); err != nil {
		return 0, fmt.Errorf("camera: add camera mode: %w", err)
	}

	for _, r := range spec.Rigs {
		if _, err := NewCameraRig(w, r); err != nil {
			return 0, err
		}
	}
	return cam, nil
}

// NewCameraRig builds one rig entity. Rigs start inactive; the mode
// controller turns on the one matching its mode.
func NewCameraRig(w *ecs.World, spec prefabs.RigSpec) (ecs.Entity, error) {
	mode, err := camera.ParseMode(spec.Mode)
	if err != nil {
		return 0, fmt.Errorf("camera rig %q: %w", spec.Name, err)
	}
	rig := &component.CameraRig{
		Name:          spec.Name,
		Mode:          mode,
		Sensitivity:   spec.Sensitivity,
		RecenterSpeed: spec.RecenterSpeed,
	}
	for _, c := range spec.Cameras {
		rig.Cameras = append(rig.Cameras, component.VirtualCamera{Name: c.Name, AxisX: c.AxisX, AxisY: c.AxisY})
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraRigComponent.Kind(), rig); err != nil {
		return 0, fmt.Errorf("camera rig %q: add rig: %w", spec.Name, err)
	}
	return e, nil
}
