/*
Package ecs stores typed components for lightweight, generational entities and answers queries
over the set of component types each entity holds.

Core Concepts:

  - EntityID: a slot index plus a version. Destroying an entity bumps its slot's version, so ids
    and handles issued earlier stop validating even after the slot is reused.
  - Family: a small integer assigned to each component type on first use.
  - Pool: block storage for one component type, indexed by entity slot. Addresses never move.
  - ComponentMask: the families an entity slot currently holds.
  - Handle: a re-validating reference to one component of one entity.
  - View: the live entities holding a set of families.

Basic Usage:

	manager := ecs.Factory.NewEntityManager(ecs.NewEventBus())

	player, _ := manager.Create()
	ecs.Add(manager, player, Position{X: 1, Y: 2})
	ecs.Add(manager, player, Velocity{X: 1})

	ecs.Each2(manager, func(id ecs.EntityID, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

	for id := range ecs.View1[Position](manager).All() {
		// ...
	}

While a view is iterated the manager is locked: Create, Destroy, Clone, Add and Remove fail with
ErrLocked. EnqueueCreate, EnqueueDestroy, EnqueueAdd and EnqueueRemove defer the change until the
iteration ends instead.

An EntityManager must be used from one goroutine at a time.
*/
package ecs
