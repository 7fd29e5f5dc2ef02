package dom

// Event is one synthetic notification recorded during snapshot mutation.
type Event struct {
	Type   string
	Target *Element
}

// EventLog records synthetic events emitted while mutating a snapshot.
// Filling code emits input/change/click events the way a live page would
// see them; tests and callers inspect the log to verify emission order.
type EventLog struct {
	events []Event
}

func (l *EventLog) emit(target *Element, types ...string) {
	for _, t := range types {
		l.events = append(l.events, Event{Type: t, Target: target})
	}
}

// Events returns all recorded events in emission order.
func (l *EventLog) Events() []Event {
	return l.events
}

// ForElement returns the event types recorded against one element,
// in emission order.
func (l *EventLog) ForElement(e *Element) []string {
	var types []string
	for _, ev := range l.events {
		if ev.Target.Is(e) {
			types = append(types, ev.Type)
		}
	}
	return types
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.events)
}
