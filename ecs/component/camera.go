package component

// Camera follows a target entity. LookDistance scales the active rig's look
// axes into a world-space offset.
type Camera struct {
	TargetName   string
	Zoom         float64
	Smoothness   float64
	LookDistance float64
}

var CameraComponent = NewComponent[Camera]()
