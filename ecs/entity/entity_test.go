package entity

import (
	"testing"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedOnly(t *testing.T) {
	t.Helper()
	prev := prefabs.Dir()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir(prev) })
}

func TestNewCamera(t *testing.T) {
	embeddedOnly(t)
	w := ecs.NewWorld()

	cam, err := NewCamera(w, nil)
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, cam, component.CameraTagComponent.Kind()))
	assert.True(t, ecs.Has(w, cam, component.TransformComponent.Kind()))
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "player", c.TargetName)
	assert.Equal(t, 160.0, c.LookDistance)

	m, ok := ecs.Get(w, cam, component.CameraModeComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, m.Controller)
	assert.Equal(t, camera.ModeUnlocked, m.Controller.Mode())
	assert.Equal(t, camera.StateNameSet{"StrafeIdle", "StrafeWalk"}, m.Controller.StateNames(camera.ModeLocked))

	rigs := map[string]*component.CameraRig{}
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, r *component.CameraRig) {
		rigs[r.Name] = r
	})
	require.Len(t, rigs, 2)
	assert.Equal(t, camera.ModeUnlocked, rigs["free_look"].Mode)
	assert.Equal(t, camera.ModeLocked, rigs["forward_lock"].Mode)
	assert.Len(t, rigs["free_look"].Cameras, 3)
	assert.False(t, rigs["free_look"].Active, "controller activates rigs on init")
}

func TestNewCameraFromSpecDefaults(t *testing.T) {
	w := ecs.NewWorld()
	spec := &prefabs.CameraModeSpec{
		InitialMode: "locked",
		Rigs: []prefabs.RigSpec{
			{Name: "a", Mode: "unlocked"},
			{Name: "b", Mode: "locked"},
		},
	}
	cam, err := NewCameraFromSpec(w, spec, nil)
	require.NoError(t, err)

	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	assert.Equal(t, 1.0, c.Zoom)
	assert.Equal(t, 120.0, c.LookDistance)
	m, _ := ecs.Get(w, cam, component.CameraModeComponent.Kind())
	assert.Equal(t, camera.ModeLocked, m.Controller.Mode())
}

func TestNewCameraFromSpecRejectsBadRigs(t *testing.T) {
	w := ecs.NewWorld()
	_, err := NewCameraFromSpec(w, &prefabs.CameraModeSpec{Rigs: []prefabs.RigSpec{{Name: "only", Mode: "unlocked"}}}, nil)
	assert.Error(t, err)

	_, err = NewCameraFromSpec(w, nil, nil)
	assert.Error(t, err)

	_, err = NewCameraRig(w, prefabs.RigSpec{Name: "x", Mode: "sideways"})
	assert.Error(t, err)
}

func TestNewPlayer(t *testing.T) {
	embeddedOnly(t)
	w := ecs.NewWorld()

	e, err := NewPlayer(w)
	require.NoError(t, err)

	for name, has := range map[string]bool{
		"tag":       ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"player":    ecs.Has(w, e, component.PlayerComponent.Kind()),
		"transform": ecs.Has(w, e, component.TransformComponent.Kind()),
		"input":     ecs.Has(w, e, component.InputComponent.Kind()),
		"body":      ecs.Has(w, e, component.PhysicsBodyComponent.Kind()),
		"sensor":    ecs.Has(w, e, component.GroundSensorComponent.Kind()),
		"state":     ecs.Has(w, e, component.CollisionStateComponent.Kind()),
	} {
		assert.True(t, has, name)
	}

	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	assert.Equal(t, 260.0, p.MoveSpeed)
	assert.Equal(t, 720.0, p.JumpSpeed)

	_, err = NewPlayerFromSpec(w, nil)
	assert.Error(t, err)
}

func TestNewLevel(t *testing.T) {
	embeddedOnly(t)
	w := ecs.NewWorld()

	pw, err := NewLevel(w, nil)
	require.NoError(t, err)
	assert.Same(t, pw, w.PhysicsWorld())
	assert.Len(t, pw.Platforms(), 4)

	pw = NewLevelFromSpec(w, &prefabs.LevelSpec{}, nil)
	assert.Same(t, pw, w.PhysicsWorld())
	assert.Empty(t, pw.Platforms())
}
