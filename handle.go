package ecs

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Handle refers to the T held by an entity. It does not pin the component: every use checks
// that the entity is still alive and still holds a T, so a handle outliving its component
// simply becomes invalid. Handles are comparable; two are equal when they name the same manager
// and entity.
type Handle[T any] struct {
	manager *EntityManager
	id      EntityID
}

// IsValid reports whether the entity is alive and holds a T.
func (h Handle[T]) IsValid() bool {
	if h.manager == nil {
		return false
	}
	ok, err := Has[T](h.manager, h.id)
	return err == nil && ok
}

// Get returns the address of the component. The address stays valid until the component is
// removed.
func (h Handle[T]) Get() (*T, error) {
	if h.manager == nil {
		return nil, eris.Wrapf(ErrInvalidHandle, "%s is not bound to an entity manager", h)
	}
	if !h.manager.IsValid(h.id) {
		return nil, eris.Wrapf(ErrInvalidHandle, "%s: entity is stale", h)
	}
	p, ok := lookupPool[T](h.manager)
	if !ok || !MaskHas(h.manager.masks[h.id.Index()], p.Family()) {
		return nil, eris.Wrapf(ErrInvalidHandle, "%s: component was removed", h)
	}
	return p.Get(int(h.id.Index())), nil
}

// MustGet is Get for callers that already know the handle is valid. It panics otherwise.
func (h Handle[T]) MustGet() *T {
	ptr, err := h.Get()
	if err != nil {
		panic(err)
	}
	return ptr
}

// Remove detaches the component from its entity.
func (h Handle[T]) Remove() error {
	if h.manager == nil {
		return eris.Wrapf(ErrInvalidHandle, "%s is not bound to an entity manager", h)
	}
	return Remove[T](h.manager, h.id)
}

// Entity returns the entity the handle was issued for.
func (h Handle[T]) Entity() EntityID {
	return h.id
}

// Manager returns the manager the handle reads through, nil for the zero Handle.
func (h Handle[T]) Manager() *EntityManager {
	return h.manager
}

// String formats the handle as Handle[T](entity).
func (h Handle[T]) String() string {
	return fmt.Sprintf("Handle[%s](%s)", componentName[T](), h.id)
}
