package system

import (
	"log/slog"
	"path"
	"time"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// PrefabReloadSystem applies prefab edits reported by a watcher without
// restarting: camera mode state names, rig tuning and the mode hook script.
type PrefabReloadSystem struct {
	changes <-chan string
	modes   *CameraModeSystem
	scripts *CameraScriptSystem
	logger  *slog.Logger

	// applied holds the disk mod time of each prefab when it was last applied
	applied map[string]time.Time
}

func NewPrefabReloadSystem(changes <-chan string, modes *CameraModeSystem, scripts *CameraScriptSystem, logger *slog.Logger) *PrefabReloadSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrefabReloadSystem{
		changes: changes,
		modes:   modes,
		scripts: scripts,
		logger:  logger.With("system", "prefab_reload"),
		applied: make(map[string]time.Time),
	}
}

func (s *PrefabReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.changes == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.changes:
			if !ok {
				s.changes = nil
				return
			}
			s.apply(w, name)
		default:
			return
		}
	}
}

func (s *PrefabReloadSystem) apply(w *ecs.World, name string) {
	switch {
	case name == "camera_mode.yaml":
		mod, onDisk := prefabs.ModTime(name)
		if last, ok := s.applied[name]; ok && onDisk && mod.Equal(last) {
			s.logger.Debug("prefab unchanged", "file", name)
			return
		}
		spec, err := prefabs.LoadCameraModeSpec()
		if err != nil {
			s.logger.Warn("reload rejected", "file", name, "err", err)
			return
		}
		applyCameraModeSpec(w, s.modes.Controller(), spec)
		if onDisk {
			s.applied[name] = mod
		}
	case path.Ext(name) == ".tengo" && s.scripts != nil && path.Base(name) == path.Base(s.scripts.ScriptPath()):
		if err := s.scripts.Reload(); err != nil {
			s.logger.Warn("reload rejected", "file", name, "err", err)
			return
		}
	default:
		return
	}
	s.logger.Info("prefab reloaded", "file", name)
	w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: name})
}

// applyCameraModeSpec pushes state names into ctrl and retunes rigs and the
// camera in place. Rig membership and the current mode are left alone.
func applyCameraModeSpec(w *ecs.World, ctrl *camera.ModeController, spec *prefabs.CameraModeSpec) {
	if ctrl != nil {
		ctrl.SetStateNames(camera.ModeUnlocked, spec.States.Unlocked)
		ctrl.SetStateNames(camera.ModeLocked, spec.States.Locked)
	}

	byName := make(map[string]prefabs.RigSpec, len(spec.Rigs))
	for _, r := range spec.Rigs {
		byName[r.Name] = r
	}
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig) {
		r, ok := byName[rig.Name]
		if !ok {
			return
		}
		rig.Sensitivity = r.Sensitivity
		rig.RecenterSpeed = r.RecenterSpeed
	})
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		c.Zoom = spec.Camera.Zoom
		c.Smoothness = spec.Camera.Smoothness
		c.LookDistance = spec.Camera.LookDistance
	})
}
