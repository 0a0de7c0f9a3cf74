package event

// EventQueue is a FIFO of events awaiting dispatch
// Owned by the router on the single game timeline, not safe for concurrent use
// Events pushed while a dispatch is running are appended and drained in order
type EventQueue struct {
	events []GameEvent
	head   int
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]GameEvent, 0, 16)}
}

// Push appends an event to the tail
func (eq *EventQueue) Push(ev GameEvent) {
	eq.events = append(eq.events, ev)
}

// Pop removes and returns the oldest event
func (eq *EventQueue) Pop() (GameEvent, bool) {
	if eq.head >= len(eq.events) {
		return GameEvent{}, false
	}
	ev := eq.events[eq.head]
	eq.events[eq.head] = GameEvent{}
	eq.head++

	// Reclaim the backing array once fully drained
	if eq.head == len(eq.events) {
		eq.events = eq.events[:0]
		eq.head = 0
	}
	return ev, true
}

// Len returns pending event count
func (eq *EventQueue) Len() int {
	return len(eq.events) - eq.head
}
