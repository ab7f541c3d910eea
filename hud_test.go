package main

import (
	"testing"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHUDText(t *testing.T) {
	w := ecs.NewWorld()
	modes := system.NewCameraModeSystem("", nil)
	label, hint := hudText(w, modes)
	assert.Empty(t, label)
	assert.Empty(t, hint)

	ctrl := camera.NewModeController(camera.Config{
		Unlocked: camera.StateNameSet{"Idle"},
		Locked:   camera.StateNameSet{"StrafeIdle"},
	})
	cam := ecs.CreateEntity(w)
	mode := &component.CameraMode{Controller: ctrl}
	require.NoError(t, ecs.Add(w, cam, component.CameraModeComponent.Kind(), mode))
	player := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))

	modes.Update(w)
	require.Same(t, ctrl, modes.Controller())

	label, hint = hudText(w, modes)
	assert.Equal(t, "unlocked", label, "falls back to the mode name")
	assert.Empty(t, hint)

	// the player has no collision state, so the flip waits for a landing
	ctrl.RequestModeChange()
	mode.Label = "FREE Idle"
	label, hint = hudText(w, modes)
	assert.Equal(t, "FREE Idle", label)
	assert.Equal(t, "switching on landing", hint)
}

func TestReloadNotice(t *testing.T) {
	var n reloadNotice
	assert.Empty(t, n.next())

	w := ecs.NewWorld()
	w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: "player.yaml"})
	w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: "camera_mode.yaml"})
	n.observe(w)

	for i := 0; i < reloadNoticeFrames; i++ {
		require.Equal(t, "reloaded camera_mode.yaml", n.next(), "frame %d", i)
	}
	assert.Empty(t, n.next(), "notice expires")

	w.Update()
	n.observe(w)
	assert.Empty(t, n.next(), "flushed events are not seen again")
}
