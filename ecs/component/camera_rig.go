package component

import "github.com/milk9111/thirdperson/camera"

// VirtualCamera is one camera inside a rig. Axes are look angles in degrees
// horizontally and normalized [-1,1] vertically.
type VirtualCamera struct {
	Name  string
	AxisX float64
	AxisY float64
}

// CameraRig is a group of virtual cameras switched on and off together.
type CameraRig struct {
	Name    string
	Mode    camera.Mode
	Cameras []VirtualCamera
	// Live indexes the camera that currently drives the view.
	Live   int
	Active bool
	// State is the animation state last applied to the rig.
	State string

	Recenter      bool
	RecenterSpeed float64
	Sensitivity   float64
}

// LiveCamera returns the camera driving the rig, or nil for an empty rig.
func (r *CameraRig) LiveCamera() *VirtualCamera {
	if r == nil || len(r.Cameras) == 0 {
		return nil
	}
	idx := r.Live
	if idx < 0 || idx >= len(r.Cameras) {
		idx = 0
	}
	return &r.Cameras[idx]
}

var CameraRigComponent = NewComponent[CameraRig]()
