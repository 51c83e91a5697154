package ecs

import "github.com/rotisserie/eris"

var (
	// ErrStaleEntity is returned when an EntityID no longer matches its slot: the entity was
	// destroyed, and possibly its slot recycled.
	ErrStaleEntity = eris.New("entity is stale or was never created")

	// ErrComponentExists is returned when adding a component type the entity already holds.
	// Components are not stacked.
	ErrComponentExists = eris.New("component already exists on entity")

	// ErrComponentNotFound is returned when removing or fetching a component the entity does
	// not hold.
	ErrComponentNotFound = eris.New("component does not exist on entity")

	// ErrInvalidHandle is returned when dereferencing a handle whose entity or component is gone.
	ErrInvalidHandle = eris.New("component handle is no longer valid")

	// ErrLocked is returned by structural mutations while an iteration holds the manager lock.
	ErrLocked = eris.New("entity manager is locked for iteration")
)
