package event

import "time"

// Handler processes specific event types
// Components implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously on the game timeline
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

// Clock stamps emitted events with the current tick and match time
type Clock interface {
	Frame() int64
	Now() time.Duration
}

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded, synchronous delivery
//   - Handlers are invoked in registration order
//   - FIFO across nested emissions: an Emit from inside a handler is queued
//     and delivered after the current event reaches all its handlers
//   - Each emission is delivered at most once to each handler
//   - Register/Unregister take effect from the next dispatched event
type Router struct {
	handlers    map[EventType][]Handler
	queue       *EventQueue
	clock       Clock
	dispatching bool
}

// NewRouter creates a router with an empty queue
func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    NewEventQueue(),
	}
}

// SetClock attaches the frame/time source used to stamp events
func (r *Router) SetClock(c Clock) {
	r.clock = c
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		// Copy-on-write keeps an in-progress dispatch iterating a stable slice
		list := r.handlers[t]
		next := make([]Handler, len(list), len(list)+1)
		copy(next, list)
		r.handlers[t] = append(next, handler)
	}
}

// Unregister removes a handler from all of its declared event types
func (r *Router) Unregister(handler Handler) {
	for _, t := range handler.EventTypes() {
		list := r.handlers[t]
		next := make([]Handler, 0, len(list))
		for _, h := range list {
			if h != handler {
				next = append(next, h)
			}
		}
		if len(next) == 0 {
			delete(r.handlers, t)
			continue
		}
		r.handlers[t] = next
	}
}

// Emit stamps and delivers an event
func (r *Router) Emit(t EventType, payload any) {
	ev := GameEvent{Type: t, Payload: payload}
	if r.clock != nil {
		ev.Frame = r.clock.Frame()
		ev.At = r.clock.Now()
	}
	r.Push(ev)
}

// Push delivers a pre-built event, queuing it if a dispatch is in progress
func (r *Router) Push(ev GameEvent) {
	r.queue.Push(ev)
	if r.dispatching {
		return
	}

	r.dispatching = true
	defer func() { r.dispatching = false }()

	for {
		next, ok := r.queue.Pop()
		if !ok {
			return
		}
		for _, h := range r.handlers[next.Type] {
			h.HandleEvent(next)
		}
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}

// funcHandler adapts a closure to Handler
type funcHandler struct {
	types []EventType
	fn    func(GameEvent)
}

func (f *funcHandler) HandleEvent(ev GameEvent) { f.fn(ev) }
func (f *funcHandler) EventTypes() []EventType  { return f.types }

// HandlerFunc wraps fn as a Handler for the given types
// The returned value is the identity to pass to Unregister
func HandlerFunc(fn func(GameEvent), types ...EventType) Handler {
	return &funcHandler{types: types, fn: fn}
}
