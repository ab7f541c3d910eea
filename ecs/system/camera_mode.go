package system

import (
	"log/slog"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// ModeStarted is the payload of ecs.EventModeStarted.
type ModeStarted struct {
	Mode  camera.Mode
	State string
}

// CameraModeSystem drives the camera's ModeController from player input,
// the player's grounded state and landing events. Recentering lasts while the
// recenter action is held.
//
// On its first frame it binds the controller to the rig entities and the
// player, then calls Init. Unbind releases the mode subscriptions.
type CameraModeSystem struct {
	recenterRig string
	logger      *slog.Logger

	bound  bool
	cam    ecs.Entity
	player ecs.Entity
	ctrl   *camera.ModeController
	subs   []camera.Subscription
	queued []ModeStarted
}

// NewCameraModeSystem binds recentering to the rig named recenterRig. An empty
// name picks the unlocked rig.
func NewCameraModeSystem(recenterRig string, logger *slog.Logger) *CameraModeSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &CameraModeSystem{
		recenterRig: recenterRig,
		logger:      logger.With("system", "camera_mode"),
	}
}

func (s *CameraModeSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if !s.bound && !s.bind(w) {
		return
	}
	if !ecs.IsAlive(w, s.cam) || !ecs.IsAlive(w, s.player) {
		s.Unbind()
		return
	}

	for _, evt := range w.Events().Of(ecs.EventLanded) {
		if evt.Entity == s.player {
			s.ctrl.OnLanded()
		}
	}

	if input, ok := ecs.Get(w, s.player, component.InputComponent.Kind()); ok {
		if input.ModeChangeStarted {
			s.ctrl.RequestModeChange()
		}
		if input.RecenterStarted {
			s.ctrl.RequestRecenter()
		}
		if input.RecenterEnded {
			s.ctrl.StopRecenter()
		}
	}

	s.ctrl.Tick()
	s.flush(w)
}

// Controller returns the bound controller, or nil before the first bind.
func (s *CameraModeSystem) Controller() *camera.ModeController {
	if s == nil {
		return nil
	}
	return s.ctrl
}

// Camera returns the bound camera entity.
func (s *CameraModeSystem) Camera() (ecs.Entity, bool) {
	if s == nil || !s.bound {
		return 0, false
	}
	return s.cam, true
}

// Unbind drops the mode subscriptions. The next Update binds again.
func (s *CameraModeSystem) Unbind() {
	if s == nil {
		return
	}
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	s.queued = nil
	s.bound = false
	s.ctrl = nil
}

func (s *CameraModeSystem) bind(w *ecs.World) bool {
	cam, ok := ecs.First(w, component.CameraModeComponent.Kind())
	if !ok {
		return false
	}
	mode, _ := ecs.Get(w, cam, component.CameraModeComponent.Kind())
	if mode == nil || mode.Controller == nil {
		return false
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}

	ctrl := mode.Controller
	var recenter camera.Recenterer
	rigs := 0
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig) {
		h := rigHandle{w: w, e: e}
		ctrl.SetRig(rig.Mode, h)
		rigs++
		if rig.Name == s.recenterRig || (s.recenterRig == "" && rig.Mode == camera.ModeUnlocked) {
			recenter = h
		}
	})
	if recenter != nil {
		ctrl.SetRecenterer(recenter)
	}
	ctrl.SetStateDriver(camera.StateDriverFunc(func(state string) {
		playRigState(w, ctrl.Mode(), state)
	}))
	ctrl.SetGroundedQuery(func() bool {
		st, ok := ecs.Get(w, player, component.CollisionStateComponent.Kind())
		return ok && st.Grounded
	})
	ctrl.SetInputQuery(func() bool {
		in, ok := ecs.Get(w, player, component.InputComponent.Kind())
		return ok && in.Active()
	})

	for _, m := range []camera.Mode{camera.ModeUnlocked, camera.ModeLocked} {
		s.subs = append(s.subs, ctrl.Subscribe(m, func(m camera.Mode) {
			s.queued = append(s.queued, ModeStarted{Mode: m, State: ctrl.ActiveState()})
		}))
	}

	ctrl.Init()
	s.cam, s.player, s.ctrl, s.bound = cam, player, ctrl, true
	s.logger.Info("camera mode bound", "camera", cam, "player", player, "rigs", rigs, "mode", ctrl.Mode())

	// announce the initial mode so listeners can set up zoom and labels
	s.queued = append(s.queued, ModeStarted{Mode: ctrl.Mode(), State: ctrl.ActiveState()})
	s.flush(w)
	return true
}

func (s *CameraModeSystem) flush(w *ecs.World) {
	for _, m := range s.queued {
		w.Events().Push(ecs.Event{Type: ecs.EventModeStarted, Entity: s.cam, Data: m})
	}
	s.queued = s.queued[:0]
}
