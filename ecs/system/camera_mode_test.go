package system

import (
	"testing"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scene struct {
	w      *ecs.World
	in     component.Input
	player ecs.Entity
	cam    ecs.Entity
	modes  *CameraModeSystem
}

func newScene(t *testing.T) *scene {
	t.Helper()
	prev := prefabs.Dir()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir(prev) })

	s := &scene{w: ecs.NewWorld()}

	_, err := entity.NewLevel(s.w, nil)
	require.NoError(t, err)
	s.player, err = entity.NewPlayer(s.w)
	require.NoError(t, err)
	s.cam, err = entity.NewCamera(s.w, nil)
	require.NoError(t, err)

	spec, err := prefabs.LoadCameraModeSpec()
	require.NoError(t, err)
	scripts, err := NewCameraScriptSystem(spec.Script, nil)
	require.NoError(t, err)
	s.modes = NewCameraModeSystem(spec.RecenterRig, nil)

	s.w.AddSystem(NewInputSystemFrom(func() component.Input { return s.in }))
	s.w.AddSystem(NewPlayerControllerSystem())
	s.w.AddSystem(NewPhysicsSystem())
	s.w.AddSystem(NewCameraRigSystem())
	s.w.AddSystem(s.modes)
	s.w.AddSystem(scripts)
	s.w.AddSystem(NewCameraSystem())
	return s
}

// step runs one frame with in, then clears the edge fields.
func (s *scene) step(in component.Input) {
	s.in = in
	s.w.Update()
	s.in = component.Input{}
}

func (s *scene) idle(frames int) {
	for i := 0; i < frames; i++ {
		s.step(component.Input{})
	}
}

func (s *scene) ctrl(t *testing.T) *camera.ModeController {
	t.Helper()
	m, ok := ecs.Get(s.w, s.cam, component.CameraModeComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, m.Controller)
	return m.Controller
}

func (s *scene) rig(t *testing.T, name string) *component.CameraRig {
	t.Helper()
	var found *component.CameraRig
	ecs.ForEach(s.w, component.CameraRigComponent.Kind(), func(e ecs.Entity, r *component.CameraRig) {
		if r.Name == name {
			found = r
		}
	})
	require.NotNil(t, found, "rig %s", name)
	return found
}

func (s *scene) grounded(t *testing.T) bool {
	t.Helper()
	st, ok := ecs.Get(s.w, s.player, component.CollisionStateComponent.Kind())
	require.True(t, ok)
	return st.Grounded
}

func (s *scene) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 180 && !s.grounded(t); i++ {
		s.idle(1)
	}
	s.idle(10)
	require.True(t, s.grounded(t), "player never landed")
}

func TestCameraModeBindsOnFirstFrame(t *testing.T) {
	s := newScene(t)
	s.idle(1)

	c := s.ctrl(t)
	assert.Same(t, c, s.modes.Controller())
	assert.Equal(t, camera.ModeUnlocked, c.Mode())
	assert.True(t, s.rig(t, "free_look").Active)
	assert.False(t, s.rig(t, "forward_lock").Active)
	assert.Equal(t, "Idle", s.rig(t, "free_look").State)
	assert.Equal(t, 1, c.ListenerCount(camera.ModeLocked))

	m, _ := ecs.Get(s.w, s.cam, component.CameraModeComponent.Kind())
	assert.Equal(t, "FREE Idle", m.Label)
	assert.InDelta(t, 1.0, m.Zoom, 1e-9)
}

func TestCameraModeChangeWhileGrounded(t *testing.T) {
	s := newScene(t)
	s.settle(t)

	s.rig(t, "free_look").LiveCamera().AxisX = 30
	s.step(component.Input{ModeChangeStarted: true})

	c := s.ctrl(t)
	assert.Equal(t, camera.ModeLocked, c.Mode())
	assert.Equal(t, 0, c.CycleIndex())

	locked := s.rig(t, "forward_lock")
	assert.True(t, locked.Active)
	assert.False(t, s.rig(t, "free_look").Active)
	assert.Equal(t, "StrafeIdle", locked.State)
	assert.Equal(t, 0, locked.Live)
	for _, cam := range locked.Cameras {
		assert.InDelta(t, 30.0, cam.AxisX, 1e-9, "axes carried over to %s", cam.Name)
	}

	m, _ := ecs.Get(s.w, s.cam, component.CameraModeComponent.Kind())
	assert.Equal(t, "LOCKED StrafeIdle", m.Label)
	assert.InDelta(t, 1.25, m.Zoom, 1e-9)

	s.idle(1)
	assert.Equal(t, camera.ModeLocked, c.Mode(), "one press flips once")
}

func TestCameraModeChangeDeferredUntilLanding(t *testing.T) {
	s := newScene(t)
	s.settle(t)
	c := s.ctrl(t)

	s.step(component.Input{Jump: true, JumpPressed: true})
	for i := 0; i < 30 && s.grounded(t); i++ {
		s.idle(1)
	}
	require.False(t, s.grounded(t), "player should be airborne after jumping")

	s.step(component.Input{ModeChangeStarted: true})
	assert.Equal(t, camera.ModeUnlocked, c.Mode())
	assert.True(t, c.Pending())
	assert.True(t, s.rig(t, "free_look").Active)

	var landedFrames int
	for i := 0; i < 180; i++ {
		s.idle(1)
		if c.Mode() == camera.ModeLocked {
			landedFrames = i
			break
		}
	}
	assert.Equal(t, camera.ModeLocked, c.Mode(), "commit on landing")
	assert.Greater(t, landedFrames, 0)
	assert.True(t, s.grounded(t))
	assert.False(t, c.Pending())
	assert.True(t, s.rig(t, "forward_lock").Active)

	s.idle(30)
	assert.Equal(t, camera.ModeLocked, c.Mode(), "no second commit")
}

func TestCameraModeRecenter(t *testing.T) {
	s := newScene(t)
	s.settle(t)
	free := s.rig(t, "free_look")
	free.LiveCamera().AxisX = 90

	s.step(component.Input{RecenterStarted: true})
	assert.True(t, free.Recenter)

	s.idle(20)
	assert.Less(t, free.LiveCamera().AxisX, 90.0, "recentering eases toward zero")

	s.step(component.Input{LookX: 1})
	assert.False(t, free.Recenter, "look input cancels recentering")
	assert.False(t, s.ctrl(t).Recentering())
}

func TestCameraModeRecenterStopsOnRelease(t *testing.T) {
	s := newScene(t)
	s.settle(t)
	free := s.rig(t, "free_look")
	free.LiveCamera().AxisX = 90

	s.step(component.Input{RecenterStarted: true})
	require.True(t, free.Recenter)
	s.idle(2)
	require.True(t, s.ctrl(t).Recentering())

	s.step(component.Input{RecenterEnded: true})
	assert.False(t, free.Recenter)
	assert.False(t, s.ctrl(t).Recentering())

	held := free.LiveCamera().AxisX
	s.idle(5)
	assert.InDelta(t, held, free.LiveCamera().AxisX, 1e-9, "released rig stops easing")
}

func TestCameraModeRecenterIgnoredWhileMoving(t *testing.T) {
	s := newScene(t)
	s.settle(t)

	s.step(component.Input{MoveX: 1, RecenterStarted: true})
	assert.False(t, s.rig(t, "free_look").Recenter)
}

func TestCameraModeUnbindReleasesSubscriptions(t *testing.T) {
	s := newScene(t)
	s.idle(1)
	c := s.ctrl(t)
	require.Equal(t, 1, c.ListenerCount(camera.ModeUnlocked))

	s.modes.Unbind()
	assert.Equal(t, 0, c.ListenerCount(camera.ModeUnlocked))
	assert.Equal(t, 0, c.ListenerCount(camera.ModeLocked))
	assert.Nil(t, s.modes.Controller())

	s.idle(1)
	assert.Equal(t, 1, c.ListenerCount(camera.ModeLocked), "rebinds next frame")
}

func TestCameraModeWithoutCameraIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	modes := NewCameraModeSystem("", nil)
	assert.NotPanics(t, func() { modes.Update(w) })
	assert.Nil(t, modes.Controller())
}
