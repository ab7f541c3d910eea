package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

const (
	stickDeadzone = 0.2
	// mouseLookScale converts cursor pixels per frame to stick-like units.
	mouseLookScale = 0.05
)

// InputSource samples one frame of device input.
type InputSource func() component.Input

type InputSystem struct {
	source InputSource
}

// NewInputSystem reads keyboard, mouse and the first gamepad through ebiten.
func NewInputSystem() *InputSystem {
	d := &deviceInput{}
	return &InputSystem{source: d.sample}
}

// NewInputSystemFrom uses source instead of the devices.
func NewInputSystemFrom(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}
	frame := i.source()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = frame
	})
}

type deviceInput struct {
	cursorX, cursorY int
	cursorSeen       bool
}

func (d *deviceInput) sample() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	in.ModeChangeStarted = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	in.RecenterStarted = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.RecenterEnded = inpututil.IsKeyJustReleased(ebiten.KeyR)

	// mouse look only while the right button is held, so the cursor can idle
	cx, cy := ebiten.CursorPosition()
	if d.cursorSeen && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		in.LookX = float64(cx-d.cursorX) * mouseLookScale
		in.LookY = float64(cy-d.cursorY) * mouseLookScale
	}
	d.cursorX, d.cursorY, d.cursorSeen = cx, cy, true

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveX, in.MoveY = lx, ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			in.LookX, in.LookY = rx, ry
		}

		jumpBtn := ebiten.StandardGamepadButtonRightBottom
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, jumpBtn)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, jumpBtn)

		modeBtn := ebiten.StandardGamepadButtonFrontTopLeft
		in.ModeChangeStarted = in.ModeChangeStarted || inpututil.IsStandardGamepadButtonJustPressed(id, modeBtn)

		recenterBtn := ebiten.StandardGamepadButtonRightStick
		in.RecenterStarted = in.RecenterStarted || inpututil.IsStandardGamepadButtonJustPressed(id, recenterBtn)
		in.RecenterEnded = in.RecenterEnded || inpututil.IsStandardGamepadButtonJustReleased(id, recenterBtn)
	}

	return in
}
