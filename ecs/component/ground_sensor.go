package component

// GroundSensor configures the sensor box under a body's feet. Zero values
// pick a box 90% of the body width and 2px tall at the bottom edge.
type GroundSensor struct {
	Width   float64
	Height  float64
	OffsetY float64
}

var GroundSensorComponent = NewComponent[GroundSensor]()

// CollisionState is derived from physics contacts each step.
type CollisionState struct {
	Grounded bool
	// WasGrounded holds last step's Grounded, for edge detection.
	WasGrounded bool
	// GroundGrace keeps Grounded true for a few steps after contact ends.
	GroundGrace int
}

// Landed reports an airborne-to-grounded edge on this step.
func (s *CollisionState) Landed() bool {
	return s != nil && s.Grounded && !s.WasGrounded
}

var CollisionStateComponent = NewComponent[CollisionState]()
