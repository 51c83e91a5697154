package ecs

import (
	"github.com/rotisserie/eris"
)

type operation struct {
	typ    operationType
	entity EntityID
	family Family
	create func(EntityID)
	apply  func(*EntityManager) error
}

type operationType int

const (
	opNoop operationType = iota
	opCreate
	opDestroy
	opAddComponent
	opRemoveComponent
)

func (t operationType) String() string {
	switch t {
	case opCreate:
		return "create"
	case opDestroy:
		return "destroy"
	case opAddComponent:
		return "add_component"
	case opRemoveComponent:
		return "remove_component"
	}
	return "noop"
}

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[EntityID][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[EntityID][]int),
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 && len(q.componentOps) == 0 && len(q.destroyOps) == 0
}

// Pending returns how many deferred operations wait for the last Unlock.
func (m *EntityManager) Pending() int {
	q := &m.opQueue
	n := len(q.createOps) + len(q.destroyOps)
	for _, op := range q.componentOps {
		if op.typ != opNoop {
			n++
		}
	}
	return n
}

func (q *opQueue) enqueueDestroy(id EntityID) {
	if _, queued := q.pendingDestroy[id]; queued {
		return
	}
	q.pendingDestroy[id] = struct{}{}

	// Component changes on an entity about to be destroyed are pointless.
	for _, idx := range q.pendingMods[id] {
		q.componentOps[idx].typ = opNoop
	}
	delete(q.pendingMods, id)

	q.destroyOps = append(q.destroyOps, operation{typ: opDestroy, entity: id})
}

func (q *opQueue) enqueueComponentOp(op operation) {
	if _, destroyed := q.pendingDestroy[op.entity]; destroyed {
		return
	}
	q.pendingMods[op.entity] = append(q.pendingMods[op.entity], len(q.componentOps))
	q.componentOps = append(q.componentOps, op)
}

// processOperationQueue applies deferred operations: creates first, then component changes, then
// destroys. Operations whose entity went stale in the meantime are skipped. Every operation is
// attempted and the first failure is returned.
func (m *EntityManager) processOperationQueue() error {
	if m.opQueue.empty() {
		return nil
	}
	q := m.opQueue
	m.opQueue = newOpQueue()

	var firstErr error
	fail := func(op operation, err error) {
		m.logger.Warn().Err(err).
			Stringer("op", op.typ).
			Stringer("entity", op.entity).
			Msg("failed to apply deferred operation")
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, op := range q.createOps {
		id := m.create()
		Publish(m.events, EntityCreated{Entity: id})
		if op.create != nil {
			op.create(id)
		}
	}

	for _, op := range q.componentOps {
		if op.typ == opNoop {
			continue
		}
		if !m.IsValid(op.entity) {
			m.logger.Warn().
				Stringer("op", op.typ).
				Stringer("entity", op.entity).
				Str("type", FamilyName(op.family)).
				Msg("skipping deferred operation on stale entity")
			continue
		}
		if err := op.apply(m); err != nil {
			fail(op, eris.Wrapf(err, "failed to apply deferred %s", op.typ))
		}
	}

	for _, op := range q.destroyOps {
		if !m.IsValid(op.entity) {
			m.logger.Warn().
				Stringer("op", op.typ).
				Stringer("entity", op.entity).
				Msg("skipping deferred destroy of stale entity")
			continue
		}
		if err := m.Destroy(op.entity); err != nil {
			fail(op, eris.Wrap(err, "failed to apply deferred destroy"))
		}
	}

	return firstErr
}

// EnqueueCreate creates an entity and passes it to fn, which may be nil. While the manager is
// locked, creation waits for the last Unlock.
func (m *EntityManager) EnqueueCreate(fn func(EntityID)) error {
	if !m.Locked() {
		id, err := m.Create()
		if err != nil {
			return err
		}
		if fn != nil {
			fn(id)
		}
		return nil
	}
	m.opQueue.createOps = append(m.opQueue.createOps, operation{typ: opCreate, create: fn})
	return nil
}

// EnqueueDestroy destroys id now, or after the last Unlock while the manager is locked.
func (m *EntityManager) EnqueueDestroy(id EntityID) error {
	if !m.IsValid(id) {
		return eris.Wrapf(ErrStaleEntity, "cannot enqueue destroy of %s", id)
	}
	if !m.Locked() {
		return m.Destroy(id)
	}
	m.opQueue.enqueueDestroy(id)
	return nil
}

// EnqueueAdd adds value to id now, or after the last Unlock while the manager is locked.
func EnqueueAdd[T any](m *EntityManager, id EntityID, value T) error {
	if !m.IsValid(id) {
		return eris.Wrapf(ErrStaleEntity, "cannot enqueue %s for %s", componentName[T](), id)
	}
	if !m.Locked() {
		_, err := Add(m, id, value)
		return err
	}
	m.opQueue.enqueueComponentOp(operation{
		typ:    opAddComponent,
		entity: id,
		family: FamilyOf[T](),
		apply: func(m *EntityManager) error {
			_, err := Add(m, id, value)
			return err
		},
	})
	return nil
}

// EnqueueRemove removes T from id now, or after the last Unlock while the manager is locked.
func EnqueueRemove[T any](m *EntityManager, id EntityID) error {
	if !m.IsValid(id) {
		return eris.Wrapf(ErrStaleEntity, "cannot enqueue removal of %s from %s", componentName[T](), id)
	}
	if !m.Locked() {
		return Remove[T](m, id)
	}
	m.opQueue.enqueueComponentOp(operation{
		typ:    opRemoveComponent,
		entity: id,
		family: FamilyOf[T](),
		apply: func(m *EntityManager) error {
			return Remove[T](m, id)
		},
	})
	return nil
}
