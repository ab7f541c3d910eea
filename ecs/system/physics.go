package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

const fixedStep = 1.0 / 60.0

// PhysicsSystem creates bodies for new entities and drops bodies whose
// PhysicsBody was removed. It then steps the Chipmunk space, syncs transforms
// back and emits EventLanded on landing edges.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{dt: fixedStep}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		if body.Body != nil {
			return
		}
		sensor, _ := ecs.Get(w, e, component.GroundSensorComponent.Kind())
		pw.EnsureBody(e, t, body, sensor)
		if state, ok := ecs.Get(w, e, component.CollisionStateComponent.Kind()); ok {
			pw.SetEntityState(e, state)
		}
	})

	for _, e := range pw.BodyEntities() {
		if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			pw.RemoveBody(e)
		}
	}

	pw.Step(ps.dt)

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		pos := body.Body.Position()
		t.X, t.Y = pos.X, pos.Y
		t.Rotation = body.Body.Angle()
	})

	ecs.ForEach(w, component.CollisionStateComponent.Kind(), func(e ecs.Entity, state *component.CollisionState) {
		if state.Landed() {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: e})
		}
	})
}
