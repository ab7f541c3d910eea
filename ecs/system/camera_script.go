package system

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// scriptTimeout bounds one hook run so a runaway script cannot stall a frame.
const scriptTimeout = 50 * time.Millisecond

// CameraScriptSystem runs a Tengo hook for each mode-started event. The hook
// sees the globals `mode` and `state` and may set `zoom` and `label`, which
// are copied onto the camera's CameraMode component.
type CameraScriptSystem struct {
	scriptPath string
	compiled   *tengo.Compiled
	logger     *slog.Logger
}

// NewCameraScriptSystem compiles the script at scriptPath. An empty path
// gives a system that does nothing.
func NewCameraScriptSystem(scriptPath string, logger *slog.Logger) (*CameraScriptSystem, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CameraScriptSystem{
		scriptPath: strings.TrimSpace(scriptPath),
		logger:     logger.With("system", "camera_script"),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// ScriptPath returns the script this system runs.
func (s *CameraScriptSystem) ScriptPath() string {
	if s == nil {
		return ""
	}
	return s.scriptPath
}

// Reload recompiles the script. On error the previous script stays active.
func (s *CameraScriptSystem) Reload() error {
	if s == nil || s.scriptPath == "" {
		return nil
	}
	src, err := prefabs.LoadScript(s.scriptPath)
	if err != nil {
		return fmt.Errorf("camera script: load %s: %w", s.scriptPath, err)
	}
	compiled, err := compileModeHook(src)
	if err != nil {
		return fmt.Errorf("camera script: compile %s: %w", s.scriptPath, err)
	}
	s.compiled = compiled
	return nil
}

func compileModeHook(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range []string{"mode", "state"} {
		if err := script.Add(name, ""); err != nil {
			return nil, fmt.Errorf("declare %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (s *CameraScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.compiled == nil {
		return
	}
	for _, evt := range w.Events().Of(ecs.EventModeStarted) {
		started, ok := evt.Data.(ModeStarted)
		if !ok {
			continue
		}
		camMode, ok := ecs.Get(w, evt.Entity, component.CameraModeComponent.Kind())
		if !ok {
			continue
		}
		zoom, label, err := s.run(started)
		if err != nil {
			s.logger.Error("mode hook failed", "mode", started.Mode, "err", err)
			continue
		}
		if zoom > 0 {
			camMode.Zoom = zoom
		}
		camMode.Label = label
	}
}

func (s *CameraScriptSystem) run(started ModeStarted) (float64, string, error) {
	if err := s.compiled.Set("mode", started.Mode.String()); err != nil {
		return 0, "", err
	}
	if err := s.compiled.Set("state", started.State); err != nil {
		return 0, "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return 0, "", err
	}

	var zoom float64
	var label string
	if s.compiled.IsDefined("zoom") {
		zoom = s.compiled.Get("zoom").Float()
	}
	if s.compiled.IsDefined("label") {
		label = s.compiled.Get("label").String()
	}
	return zoom, label, nil
}
