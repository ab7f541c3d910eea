package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// PlayerControllerSystem turns Input into body velocity. Jumps need ground.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			vel := body.Body.Velocity()
			vel.X = input.MoveX * player.MoveSpeed

			state, _ := ecs.Get(w, e, component.CollisionStateComponent.Kind())
			if input.JumpPressed && state != nil && state.Grounded {
				vel.Y = -player.JumpSpeed
			}

			body.Body.SetVelocityVector(vel)
			body.Body.SetAngle(0)
			body.Body.SetAngularVelocity(0)
		})
}
