package component

import "github.com/milk9111/thirdperson/camera"

// CameraMode attaches the forward-lock mode controller to the camera entity.
// Label and Zoom are set by the mode hook script.
type CameraMode struct {
	Controller *camera.ModeController
	Label      string
	Zoom       float64
}

var CameraModeComponent = NewComponent[CameraMode]()
