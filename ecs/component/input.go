package component

// Input stores per-frame input state for an entity.
//
// *Started and *Ended are edges for the frame they happen on. Releasing the
// mode-change action has no effect, so only its press is recorded.
type Input struct {
	MoveX       float64
	MoveY       float64
	LookX       float64
	LookY       float64
	Jump        bool
	JumpPressed bool

	ModeChangeStarted bool

	RecenterStarted bool
	RecenterEnded   bool
}

// Active reports whether any movement or look input is present.
func (i *Input) Active() bool {
	if i == nil {
		return false
	}
	return i.MoveX != 0 || i.MoveY != 0 || i.LookX != 0 || i.LookY != 0
}

var InputComponent = NewComponent[Input]()
