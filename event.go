package ecs

import "reflect"

// EventBus delivers typed events to subscribers synchronously, in subscription order. The zero
// value is ready to use. A nil *EventBus accepts publishes and drops them.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// NewEventBus returns an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers handler for every event of type E published on bus.
func Subscribe[E any](bus *EventBus, handler func(E)) {
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	t := reflect.TypeFor[E]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish calls every handler subscribed to E. Handlers must not subscribe on the same bus.
func Publish[E any](bus *EventBus, event E) {
	if bus == nil || bus.handlers == nil {
		return
	}
	for _, h := range bus.handlers[reflect.TypeFor[E]()] {
		h.(func(E))(event)
	}
}

// Subscribers returns how many handlers listen for E.
func Subscribers[E any](bus *EventBus) int {
	if bus == nil {
		return 0
	}
	return len(bus.handlers[reflect.TypeFor[E]()])
}

// EntityCreated is published after an entity is created or cloned.
type EntityCreated struct {
	Entity EntityID
}

// EntityDestroyed is published before an entity or any of its components are torn down, so
// handlers can still read its components.
type EntityDestroyed struct {
	Entity EntityID
}

// ComponentAdded is published after a component is attached. Component is already valid.
type ComponentAdded[T any] struct {
	Entity    EntityID
	Component Handle[T]
}

// ComponentRemoved is published before a component is destroyed. Component is still valid while
// handlers run.
type ComponentRemoved[T any] struct {
	Entity    EntityID
	Component Handle[T]
}
