package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	// Width and Height are the collider size, also used for drawing.
	Width  float64
	Height float64
}

var PlayerComponent = NewComponent[Player]()
