package camera

// Rig is a group of cameras activated and deactivated together.
type Rig interface {
	SetActive(active bool)
	// LiveAxes reports the axes of the camera currently live in the rig.
	LiveAxes() (Axes, bool)
	// SetAxes writes the axes to every camera in the rig.
	SetAxes(a Axes)
}

// StateDriver applies a named animation state to the state-driven camera.
type StateDriver interface {
	Play(state string)
}

// Recenterer toggles automatic recentering of look axes.
type Recenterer interface {
	SetRecenter(enabled bool)
}

// StateDriverFunc adapts a function to StateDriver.
type StateDriverFunc func(state string)

func (f StateDriverFunc) Play(state string) { f(state) }
