package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/prefabs"
)

// NewLevel builds the physics world from level.yaml and attaches it to w.
func NewLevel(w *ecs.World, logger *slog.Logger) (*ecs.PhysicsWorld, error) {
	spec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return nil, fmt.Errorf("level: load spec: %w", err)
	}
	return NewLevelFromSpec(w, spec, logger), nil
}

func NewLevelFromSpec(w *ecs.World, spec *prefabs.LevelSpec, logger *slog.Logger) *ecs.PhysicsWorld {
	gravity := spec.Gravity
	if gravity == 0 {
		gravity = common.Gravity
	}
	platforms := make([]ecs.Platform, 0, len(spec.Platforms))
	for _, p := range spec.Platforms {
		platforms = append(platforms, ecs.Platform{X: p.X, Y: p.Y, W: p.W, H: p.H})
	}
	pw := ecs.NewPhysicsWorld(gravity, platforms, logger)
	w.SetPhysicsWorld(pw)
	return pw
}
