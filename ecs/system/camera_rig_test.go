package system

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRig(t *testing.T, w *ecs.World, rig component.CameraRig) (ecs.Entity, *component.CameraRig) {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.CameraRigComponent.Kind(), &rig))
	r, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	require.True(t, ok)
	return e, r
}

func TestRigHandle(t *testing.T) {
	w := ecs.NewWorld()
	e, rig := addRig(t, w, component.CameraRig{
		Cameras: []component.VirtualCamera{{Name: "a", AxisX: 10, AxisY: 0.5}, {Name: "b", AxisX: -20}},
		Live:    1,
	})
	h := rigHandle{w: w, e: e}

	axes, ok := h.LiveAxes()
	require.True(t, ok)
	assert.Equal(t, camera.Axes{X: -20}, axes)

	h.SetAxes(camera.Axes{X: 5, Y: -0.5})
	for _, c := range rig.Cameras {
		assert.Equal(t, 5.0, c.AxisX)
		assert.Equal(t, -0.5, c.AxisY)
	}

	h.SetActive(true)
	h.SetRecenter(true)
	assert.True(t, rig.Active)
	assert.True(t, rig.Recenter)

	require.True(t, ecs.DestroyEntity(w, e))
	_, ok = h.LiveAxes()
	assert.False(t, ok, "destroyed rig has no live camera")
	assert.NotPanics(t, func() {
		h.SetActive(false)
		h.SetAxes(camera.Axes{})
		h.SetRecenter(false)
	})
}

func TestPlayRigStateSelectsLiveCamera(t *testing.T) {
	w := ecs.NewWorld()
	_, free := addRig(t, w, component.CameraRig{
		Mode:    camera.ModeUnlocked,
		Cameras: []component.VirtualCamera{{Name: "Idle"}, {Name: "Walk"}, {Name: "Run"}},
	})
	_, locked := addRig(t, w, component.CameraRig{
		Mode:    camera.ModeLocked,
		Cameras: []component.VirtualCamera{{Name: "StrafeIdle"}},
	})

	playRigState(w, camera.ModeUnlocked, "Run")
	assert.Equal(t, "Run", free.State)
	assert.Equal(t, 2, free.Live)
	assert.Equal(t, "", locked.State)

	playRigState(w, camera.ModeUnlocked, "Sprint")
	assert.Equal(t, "Sprint", free.State)
	assert.Equal(t, 2, free.Live, "unknown state keeps the live camera")
}

func TestCameraRigSystemLook(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{LookX: 50, LookY: 200}))

	_, active := addRig(t, w, component.CameraRig{Active: true, Sensitivity: 2, Cameras: []component.VirtualCamera{{}}})
	_, idle := addRig(t, w, component.CameraRig{Cameras: []component.VirtualCamera{{}}})

	NewCameraRigSystem().Update(w)

	assert.InDelta(t, 100.0, active.Cameras[0].AxisX, 1e-9)
	assert.InDelta(t, 1.0, active.Cameras[0].AxisY, 1e-9, "vertical axis clamps")
	assert.Zero(t, idle.Cameras[0].AxisX, "inactive rig ignores look input")

	NewCameraRigSystem().Update(w)
	assert.InDelta(t, -160.0, active.Cameras[0].AxisX, 1e-9, "horizontal axis wraps")
}

func TestCameraRigSystemRecenter(t *testing.T) {
	w := ecs.NewWorld()
	_, rig := addRig(t, w, component.CameraRig{
		Recenter:      true,
		RecenterSpeed: 30,
		Cameras:       []component.VirtualCamera{{AxisX: 45, AxisY: -0.8}, {AxisX: -10}},
	})

	s := NewCameraRigSystem()
	for i := 0; i < 200; i++ {
		s.Update(w)
	}
	for _, c := range rig.Cameras {
		assert.Zero(t, c.AxisX)
		assert.Zero(t, c.AxisY)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{540, 180},
		{-190, 170},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, wrapDegrees(tc.in), 1e-9, "wrap(%v)", tc.in)
	}
}

func TestCameraSystemFollowsWithLookOffset(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 1000, Y: 500}))

	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", Zoom: 1, LookDistance: 100}))
	addRig(t, w, component.CameraRig{Active: true, Cameras: []component.VirtualCamera{{AxisX: 90, AxisY: 0.5}}})

	NewCameraSystem().Update(w)

	ct, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	assert.InDelta(t, 1000+100-640, ct.X, 1e-6)
	assert.InDelta(t, 500+25-360, ct.Y, 1e-6)

	require.NoError(t, ecs.Add(w, cam, component.CameraModeComponent.Kind(), &component.CameraMode{Zoom: 2}))
	NewCameraSystem().Update(w)
	assert.InDelta(t, 1000+100-320, ct.X, 1e-6, "mode zoom narrows the view")
}

func TestPrefabReloadAppliesStateNames(t *testing.T) {
	s := newScene(t)
	s.settle(t)

	dir := t.TempDir()
	prefabs.SetDir(dir)
	edited := []byte(`
initial_mode: unlocked
recenter_rig: free_look
script: camera_mode.tengo
states:
  unlocked: [Look, Jog]
  locked: [Aim]
rigs:
  - {name: free_look, mode: unlocked, sensitivity: 3.5, cameras: [{name: Look}, {name: Jog}]}
  - {name: forward_lock, mode: locked, cameras: [{name: Aim}]}
camera:
  zoom: 1.5
  look_distance: 90
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "camera_mode.yaml"), edited, 0o644))

	changes := make(chan string, 2)
	changes <- "camera_mode.yaml"
	changes <- "notes.yaml"
	reload := NewPrefabReloadSystem(changes, s.modes, nil, nil)
	s.w.AddSystem(reload)

	s.idle(1)
	c := s.ctrl(t)
	assert.Equal(t, camera.StateNameSet{"Look", "Jog"}, c.StateNames(camera.ModeUnlocked))
	assert.Equal(t, "Look", c.ActiveState())
	assert.Equal(t, "Look", s.rig(t, "free_look").State)
	assert.Equal(t, 3.5, s.rig(t, "free_look").Sensitivity)

	camComp, _ := ecs.Get(s.w, s.cam, component.CameraComponent.Kind())
	assert.Equal(t, 1.5, camComp.Zoom)
	assert.Equal(t, 90.0, camComp.LookDistance)

	s.step(component.Input{ModeChangeStarted: true})
	assert.Equal(t, "Aim", c.ActiveState())

	close(changes)
	assert.NotPanics(t, func() { s.idle(2) })
}

func TestPrefabReloadRejectsInvalidSpec(t *testing.T) {
	s := newScene(t)
	s.idle(1)

	dir := t.TempDir()
	prefabs.SetDir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "camera_mode.yaml"), []byte("rigs: []\n"), 0o644))

	changes := make(chan string, 1)
	changes <- "camera_mode.yaml"
	s.w.AddSystem(NewPrefabReloadSystem(changes, s.modes, nil, nil))
	s.idle(1)

	assert.Equal(t, camera.StateNameSet{"Idle", "Walk", "Run"}, s.ctrl(t).StateNames(camera.ModeUnlocked))
}

func TestPrefabReloadSkipsUnchangedFile(t *testing.T) {
	s := newScene(t)
	s.idle(1)

	dir := t.TempDir()
	prefabs.SetDir(dir)
	file := filepath.Join(dir, "camera_mode.yaml")
	write := func(unlocked string, at time.Time) {
		t.Helper()
		src := fmt.Sprintf(`initial_mode: unlocked
states:
  unlocked: [%s]
  locked: [Aim]
rigs:
  - {name: free_look, mode: unlocked}
  - {name: forward_lock, mode: locked}
`, unlocked)
		require.NoError(t, os.WriteFile(file, []byte(src), 0o644))
		require.NoError(t, os.Chtimes(file, at, at))
	}
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	write("Look", base)

	changes := make(chan string, 1)
	s.w.AddSystem(NewPrefabReloadSystem(changes, s.modes, nil, nil))
	changes <- "camera_mode.yaml"
	s.idle(1)
	c := s.ctrl(t)
	require.Equal(t, camera.StateNameSet{"Look"}, c.StateNames(camera.ModeUnlocked))

	c.SetStateNames(camera.ModeUnlocked, camera.StateNameSet{"Manual"})
	changes <- "camera_mode.yaml"
	s.idle(1)
	assert.Equal(t, camera.StateNameSet{"Manual"}, c.StateNames(camera.ModeUnlocked), "duplicate event for the same write")

	write("Jog", base.Add(time.Second))
	changes <- "camera_mode.yaml"
	s.idle(1)
	assert.Equal(t, camera.StateNameSet{"Jog"}, c.StateNames(camera.ModeUnlocked))
}

func TestCameraScriptSystem(t *testing.T) {
	prev := prefabs.Dir()
	dir := t.TempDir()
	prefabs.SetDir(dir)
	t.Cleanup(func() { prefabs.SetDir(prev) })

	scriptPath := filepath.Join(dir, "scripts", "hook.tengo")
	require.NoError(t, os.MkdirAll(filepath.Dir(scriptPath), 0o755))
	require.NoError(t, os.WriteFile(scriptPath, []byte(`zoom := mode == "locked" ? 2.0 : 0.5
label := mode + ":" + state`), 0o644))

	s, err := NewCameraScriptSystem("hook.tengo", nil)
	require.NoError(t, err)

	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.CameraModeComponent.Kind(), &component.CameraMode{}))

	w.Events().Push(ecs.Event{Type: ecs.EventModeStarted, Entity: cam, Data: ModeStarted{Mode: camera.ModeLocked, State: "StrafeIdle"}})
	s.Update(w)

	m, _ := ecs.Get(w, cam, component.CameraModeComponent.Kind())
	assert.Equal(t, 2.0, m.Zoom)
	assert.Equal(t, "locked:StrafeIdle", m.Label)

	require.NoError(t, os.WriteFile(scriptPath, []byte(`zoom := (`), 0o644))
	assert.Error(t, s.Reload(), "broken script is rejected")

	w.Update()
	w.Events().Push(ecs.Event{Type: ecs.EventModeStarted, Entity: cam, Data: ModeStarted{Mode: camera.ModeUnlocked, State: "Idle"}})
	s.Update(w)
	assert.Equal(t, 0.5, m.Zoom, "previous script keeps running")
	assert.Equal(t, "unlocked:Idle", m.Label)
}

func TestCompileModeHookDeclaresGlobals(t *testing.T) {
	compiled, err := compileModeHook([]byte(`label := mode + "/" + state`))
	require.NoError(t, err)
	assert.True(t, compiled.IsDefined("mode"))
	assert.True(t, compiled.IsDefined("state"))

	_, err = compileModeHook([]byte(`label := missing + mode`))
	assert.Error(t, err, "undeclared globals do not compile")
}

func TestCameraScriptSystemEmptyPath(t *testing.T) {
	s, err := NewCameraScriptSystem("  ", nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { s.Update(ecs.NewWorld()) })

	_, err = NewCameraScriptSystem("missing.tengo", nil)
	assert.Error(t, err)
}
