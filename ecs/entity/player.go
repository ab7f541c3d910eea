package entity

import (
	"fmt"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	e := ecs.CreateEntity(w)

	steps := []struct {
		name string
		add  func() error
	}{
		{"player tag", func() error {
			return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}},
		{"player", func() error {
			return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
				MoveSpeed: spec.MoveSpeed,
				JumpSpeed: spec.JumpSpeed,
				Width:     spec.Collider.Width,
				Height:    spec.Collider.Height,
			})
		}},
		{"transform", func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.Transform.X, Y: spec.Transform.Y})
		}},
		{"input", func() error {
			return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
		}},
		{"physics body", func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:    spec.Collider.Width,
				Height:   spec.Collider.Height,
				Mass:     spec.Mass,
				Friction: spec.Friction,
			})
		}},
		{"ground sensor", func() error {
			return ecs.Add(w, e, component.GroundSensorComponent.Kind(), &component.GroundSensor{
				Width:   spec.GroundSensor.Width,
				Height:  spec.GroundSensor.Height,
				OffsetY: spec.GroundSensor.OffsetY,
			})
		}},
		{"collision state", func() error {
			return ecs.Add(w, e, component.CollisionStateComponent.Kind(), &component.CollisionState{})
		}},
	}
	for _, step := range steps {
		if err := step.add(); err != nil {
			return 0, fmt.Errorf("player: add %s: %w", step.name, err)
		}
	}
	return e, nil
}
