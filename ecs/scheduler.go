package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Scheduler runs a fixed list of systems in order.
type Scheduler struct {
	systems []System
}

// NewScheduler returns a scheduler running systems in the given order. Nil
// entries are skipped.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
