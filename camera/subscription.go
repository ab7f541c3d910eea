package camera

// Listener is notified when a mode starts.
type Listener func(m Mode)

// Subscription removes its listener when Unsubscribe is called.
type Subscription struct {
	c    *ModeController
	mode Mode
	id   uint64
}

// Unsubscribe is safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.c == nil || !s.mode.valid() {
		return
	}
	list := s.c.listeners[s.mode]
	for i, l := range list {
		if l.id == s.id {
			s.c.listeners[s.mode] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// Subscribe registers fn to run each time m is entered through a commit.
func (c *ModeController) Subscribe(m Mode, fn Listener) Subscription {
	if c == nil || fn == nil || !m.valid() {
		return Subscription{}
	}
	c.nextListenerID++
	c.listeners[m] = append(c.listeners[m], listenerEntry{id: c.nextListenerID, fn: fn})
	return Subscription{c: c, mode: m, id: c.nextListenerID}
}

// ListenerCount reports how many listeners are registered for m.
func (c *ModeController) ListenerCount(m Mode) int {
	if c == nil || !m.valid() {
		return 0
	}
	return len(c.listeners[m])
}

func (c *ModeController) notify(m Mode) {
	// copy so listeners may unsubscribe while being notified
	list := append([]listenerEntry(nil), c.listeners[m]...)
	for _, l := range list {
		l.fn(m)
	}
}
