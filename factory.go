package ecs

type factory struct{}

// Factory groups the constructors of the package.
var Factory factory

func (f factory) NewEntityManager(events *EventBus) *EntityManager {
	return NewEntityManager(events)
}

func (f factory) NewEventBus() *EventBus {
	return NewEventBus()
}

func (f factory) NewView(m *EntityManager, families ...Family) View {
	return m.EntitiesWithComponents(families...)
}

func (f factory) NewCursor(view View) *Cursor {
	return newCursor(view)
}

// FactoryNewPool creates a standalone pool of T using the configured block size.
func FactoryNewPool[T any]() *Pool[T] {
	return NewPool[T](Config.BlockSize())
}

// FactoryNewHandle builds a handle to the T held by id without checking it. The handle validates
// on use like any other.
func FactoryNewHandle[T any](m *EntityManager, id EntityID) Handle[T] {
	return Handle[T]{manager: m, id: id}
}
