package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and shapes are filled in by the physics world on first step.
type PhysicsBody struct {
	Body        *cp.Body
	Shape       *cp.Shape
	GroundShape *cp.Shape
	Width       float64
	Height      float64
	Mass        float64
	Friction    float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
