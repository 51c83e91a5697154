package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// Component operations are package functions because Go methods cannot take type parameters.
// Each one validates the entity first, so a stale id never touches storage.

// Add attaches value to id as a component of type T and returns a handle to it. Each entity holds
// at most one component per type.
func Add[T any](m *EntityManager, id EntityID, value T) (Handle[T], error) {
	if m.Locked() {
		return Handle[T]{}, eris.Wrapf(ErrLocked, "cannot add %s to %s", componentName[T](), id)
	}
	if !m.IsValid(id) {
		return Handle[T]{}, eris.Wrapf(ErrStaleEntity, "cannot add %s to %s", componentName[T](), id)
	}

	p := assurePool[T](m)
	index := id.Index()
	if MaskHas(m.masks[index], p.Family()) {
		return Handle[T]{}, eris.Wrapf(ErrComponentExists, "entity %s already has %s", id, componentName[T]())
	}

	p.Construct(int(index), value)
	m.masks[index].Mark(p.Family())
	p.publishAdded(m, id)
	return Handle[T]{manager: m, id: id}, nil
}

// Has reports whether id holds a T. It never registers T.
func Has[T any](m *EntityManager, id EntityID) (bool, error) {
	if !m.IsValid(id) {
		return false, eris.Wrapf(ErrStaleEntity, "cannot look up %s on %s", componentName[T](), id)
	}
	return m.has(id, reflect.TypeFor[T]()), nil
}

func (m *EntityManager) has(id EntityID, t reflect.Type) bool {
	f, ok := componentFamilies.lookup(t)
	return ok && MaskHas(m.masks[id.Index()], f)
}

// Get returns a handle to the T held by id. When id holds no T the handle is the invalid zero
// Handle and the error wraps ErrComponentNotFound.
func Get[T any](m *EntityManager, id EntityID) (Handle[T], error) {
	ok, err := Has[T](m, id)
	if err != nil {
		return Handle[T]{}, err
	}
	if !ok {
		return Handle[T]{}, eris.Wrapf(ErrComponentNotFound, "entity %s has no %s", id, componentName[T]())
	}
	return Handle[T]{manager: m, id: id}, nil
}

// Remove detaches the T held by id. ComponentRemoved is published while the component is still
// readable and the manager locked, then the component is destroyed.
func Remove[T any](m *EntityManager, id EntityID) error {
	if m.Locked() {
		return eris.Wrapf(ErrLocked, "cannot remove %s from %s", componentName[T](), id)
	}
	ok, err := Has[T](m, id)
	if err != nil {
		return err
	}
	if !ok {
		return eris.Wrapf(ErrComponentNotFound, "cannot remove %s from %s", componentName[T](), id)
	}

	p, _ := lookupPool[T](m)
	index := id.Index()
	m.Lock()
	p.publishRemoved(m, id)
	p.Destroy(int(index))
	m.masks[index].Unmark(p.Family())
	return m.Unlock()
}

// Replace overwrites the T held by id in place. It does not change which components id holds, so
// it is allowed during iteration.
func Replace[T any](m *EntityManager, id EntityID, value T) error {
	ok, err := Has[T](m, id)
	if err != nil {
		return err
	}
	if !ok {
		return eris.Wrapf(ErrComponentNotFound, "cannot replace %s on %s", componentName[T](), id)
	}
	p, _ := lookupPool[T](m)
	*p.Get(int(id.Index())) = value
	return nil
}

func componentName[T any]() string {
	return reflect.TypeFor[T]().String()
}
