package ecs

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
	collisionTypeGroundSensor
)

// groundGraceSteps keeps a body grounded across brief sensor dropouts.
const groundGraceSteps = 2

// Platform is a static solid box in world space.
type Platform struct {
	X, Y, W, H float64
}

// PhysicsWorld owns the Chipmunk space and static collision shapes.
type PhysicsWorld struct {
	space     *cp.Space
	platforms []Platform
	logger    *slog.Logger

	groundToEntity map[*cp.Shape]Entity
	entityStates   map[Entity]*component.CollisionState
	bodies         map[Entity]bodyShapes
}

type bodyShapes struct {
	body   *cp.Body
	shapes []*cp.Shape
}

// NewPhysicsWorld creates a space with downward gravity and the given platforms.
func NewPhysicsWorld(gravity float64, platforms []Platform, logger *slog.Logger) *PhysicsWorld {
	if logger == nil {
		logger = slog.Default()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	pw := &PhysicsWorld{
		space:          space,
		platforms:      append([]Platform(nil), platforms...),
		logger:         logger.With("component", "physics"),
		groundToEntity: make(map[*cp.Shape]Entity),
		entityStates:   make(map[Entity]*component.CollisionState),
		bodies:         make(map[Entity]bodyShapes),
	}
	pw.buildStaticShapes()
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Platforms returns the static boxes the world was built with.
func (pw *PhysicsWorld) Platforms() []Platform {
	if pw == nil {
		return nil
	}
	return pw.platforms
}

// SetEntityState registers the collision state updated for e. A nil state
// unregisters it.
func (pw *PhysicsWorld) SetEntityState(e Entity, state *component.CollisionState) {
	if pw == nil || !e.Valid() {
		return
	}
	if state == nil {
		delete(pw.entityStates, e)
		return
	}
	pw.entityStates[e] = state
}

// EnsureBody creates the Chipmunk body and shapes for e if body has none yet.
// The body is centered on the transform and never rotates.
func (pw *PhysicsWorld) EnsureBody(e Entity, t *component.Transform, body *component.PhysicsBody, g *component.GroundSensor) {
	if pw == nil || pw.space == nil || !e.Valid() || t == nil || body == nil || body.Body != nil {
		return
	}

	mass := body.Mass
	if mass <= 0 {
		mass = 1
	}
	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	shape := cp.NewBox(cpBody, body.Width, body.Height, 0)
	friction := body.Friction
	if friction <= 0 {
		friction = 0.8
	}
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeDynamic)

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	body.Body = cpBody
	body.Shape = shape
	pw.bodies[e] = bodyShapes{body: cpBody, shapes: []*cp.Shape{shape}}

	if g == nil {
		return
	}
	gw, gh := g.Width, g.Height
	if gw <= 0 {
		gw = body.Width * 0.9
	}
	if gh <= 0 {
		gh = 2
	}
	gy := g.OffsetY
	if gy == 0 {
		gy = body.Height / 2
	}
	bb := cp.BB{L: -gw / 2, B: gy, R: gw / 2, T: gy + gh}
	groundShape := cp.NewBox2(cpBody, bb, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypeGroundSensor)
	pw.space.AddShape(groundShape)
	pw.groundToEntity[groundShape] = e
	body.GroundShape = groundShape
	rec := pw.bodies[e]
	rec.shapes = append(rec.shapes, groundShape)
	pw.bodies[e] = rec

	pw.logger.Debug("body created", "entity", e, "width", body.Width, "height", body.Height)
}

// RemoveBody takes e's body and shapes out of the space and forgets its
// collision state. It reports whether e had a body. Must not be called while
// the space is stepping.
func (pw *PhysicsWorld) RemoveBody(e Entity) bool {
	if pw == nil {
		return false
	}
	delete(pw.entityStates, e)
	rec, ok := pw.bodies[e]
	if !ok {
		return false
	}
	delete(pw.bodies, e)
	for _, shape := range rec.shapes {
		delete(pw.groundToEntity, shape)
		if pw.space.ContainsShape(shape) {
			pw.space.RemoveShape(shape)
		}
	}
	if pw.space.ContainsBody(rec.body) {
		pw.space.RemoveBody(rec.body)
	}
	pw.logger.Debug("body removed", "entity", e)
	return true
}

// BodyEntities returns the entities that currently own a body.
func (pw *PhysicsWorld) BodyEntities() []Entity {
	if pw == nil {
		return nil
	}
	out := make([]Entity, 0, len(pw.bodies))
	for e := range pw.bodies {
		out = append(out, e)
	}
	return out
}

// Step advances the simulation. Collision states roll their grounded flag
// forward so that Landed reports edges for this step.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, state := range pw.entityStates {
		state.WasGrounded = state.Grounded
		if state.GroundGrace > 0 {
			state.GroundGrace--
		}
		state.Grounded = false
	}
	pw.space.Step(dt)
	for _, state := range pw.entityStates {
		if state.GroundGrace > 0 {
			state.Grounded = true
		}
	}
}

func (pw *PhysicsWorld) buildStaticShapes() {
	for _, p := range pw.platforms {
		if p.W <= 0 || p.H <= 0 {
			continue
		}
		bb := cp.BB{L: p.X, B: p.Y, R: p.X + p.W, T: p.Y + p.H}
		shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(shape)
	}
}

func (pw *PhysicsWorld) setupHandlers() {
	groundHandler := pw.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = pw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, ok := world.groundToEntity[shapeA]
		if !ok {
			e, ok = world.groundToEntity[shapeB]
		}
		if !ok {
			return true
		}
		if state := world.entityStates[e]; state != nil {
			state.GroundGrace = groundGraceSteps
		}
		return true
	}
}
