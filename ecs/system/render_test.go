package system

import (
	"image/color"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestToNRGBAClamps(t *testing.T) {
	got := toNRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1})
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 127, A: 255}, got)
}

func TestDebugTextShowsModeState(t *testing.T) {
	s := newScene(t)
	s.settle(t)
	s.step(component.Input{ModeChangeStarted: true})

	text := NewRenderSystem(true).debugText(s.w)
	assert.True(t, strings.Contains(text, "mode: locked"), text)
	assert.True(t, strings.Contains(text, "state: StrafeIdle (0)"), text)
	assert.True(t, strings.Contains(text, "grounded: true"), text)
}
