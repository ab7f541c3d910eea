package main

import (
	"fmt"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
)

type GameOptions struct {
	Debug   bool
	Watcher *prefabs.Watcher
	Logger  *slog.Logger
}

type Game struct {
	world  *ecs.World
	render *system.RenderSystem
	modes  *system.CameraModeSystem
	logger *slog.Logger

	watchErrs <-chan error

	hud      *HUD
	pauseUI  *ebitenui.UI
	paused   bool
	quitting bool
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	if _, err := entity.NewLevel(world, logger); err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	if _, err := entity.NewPlayer(world); err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	if _, err := entity.NewCamera(world, logger); err != nil {
		return nil, fmt.Errorf("load camera: %w", err)
	}

	spec, err := prefabs.LoadCameraModeSpec()
	if err != nil {
		return nil, err
	}
	scripts, err := system.NewCameraScriptSystem(spec.Script, logger)
	if err != nil {
		return nil, err
	}
	modes := system.NewCameraModeSystem(spec.RecenterRig, logger)

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewPlayerControllerSystem())
	world.AddSystem(system.NewPhysicsSystem())
	world.AddSystem(system.NewCameraRigSystem())
	world.AddSystem(modes)
	world.AddSystem(scripts)

	g := &Game{
		world:  world,
		render: system.NewRenderSystem(opts.Debug),
		modes:  modes,
		logger: logger,
		hud:    NewHUD(),
	}
	if opts.Watcher != nil {
		world.AddSystem(system.NewPrefabReloadSystem(opts.Watcher.Events, modes, scripts, logger))
		g.watchErrs = opts.Watcher.Errors
	}
	world.AddSystem(g.hud)
	world.AddSystem(system.NewCameraSystem())

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quitting {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainWatchErrors()
	g.world.Update()
	g.hud.Sync(g.world, g.modes)
	return nil
}

func (g *Game) drainWatchErrors() {
	for {
		select {
		case err, ok := <-g.watchErrs:
			if !ok {
				g.watchErrs = nil
				return
			}
			g.logger.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
