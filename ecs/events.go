package ecs

import (
	"slices"

	"github.com/jakecoffman/cp"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventCollision = "collision"

// CollisionEvent is emitted once per collision recorded on a collider.
// MPV pushes Other out of Entity.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	MPV    cp.Vector
	Solid  bool
}

// EventQueue is a simple FIFO queue. The physics step discards its own
// undrained collision events, other event types are kept until drained.
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

func (q *EventQueue) PushCollision(evt CollisionEvent) {
	q.Push(Event{Type: EventCollision, Data: evt})
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Discard drops every queued event of the given type.
func (q *EventQueue) Discard(typ string) {
	if q == nil {
		return
	}
	q.items = slices.DeleteFunc(q.items, func(evt Event) bool {
		return evt.Type == typ
	})
}

// Drain returns all events and clears the queue. Owners drain once per frame.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Collisions picks the collision payloads out of events.
func Collisions(events []Event) []CollisionEvent {
	var out []CollisionEvent
	for _, evt := range events {
		if c, ok := evt.Data.(CollisionEvent); ok && evt.Type == EventCollision {
			out = append(out, c)
		}
	}
	return out
}
