package ecs

// EventType identifies a frame event.
type EventType string

const (
	// EventLanded fires on the frame an entity goes from airborne to grounded.
	EventLanded EventType = "landed"
	// EventModeStarted fires when the camera commits a mode change.
	EventModeStarted EventType = "mode_started"
	// EventPrefabReloaded fires after a prefab file was reloaded from disk.
	EventPrefabReloaded EventType = "prefab_reloaded"
)

// Event is a frame event. Data carries an event-specific payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO of events that lives for one frame. Systems later in
// the order see what earlier systems pushed.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Of returns the queued events of type t in push order.
func (q *EventQueue) Of(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// Len reports how many events are queued.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
