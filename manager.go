package ecs

import (
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/Epiphane/NCW-sub001/internal/assert"
)

// EntityManager owns every entity slot, the component mask of each slot and one Pool per
// component family in use. It is not safe for concurrent use.
type EntityManager struct {
	numEntities uint32 // high-water mark of issued slots
	versions    []uint32
	masks       []ComponentMask
	free        []uint32 // LIFO
	alive       bitmap.Bitmap
	pools       []abstractPool // indexed by family, nil until first Add

	events    *EventBus
	logger    zerolog.Logger
	blockSize int

	lockDepth int
	opQueue   opQueue
}

// NewEntityManager creates an empty manager publishing to events, which may be nil. Pools use
// Config.BlockSize and the manager logs to Config.Logger.
func NewEntityManager(events *EventBus) *EntityManager {
	return &EntityManager{
		events:    events,
		logger:    Config.Logger().With().Str("component", "entity_manager").Logger(),
		blockSize: Config.BlockSize(),
		opQueue:   newOpQueue(),
	}
}

// Events returns the bus the manager publishes to.
func (m *EntityManager) Events() *EventBus {
	return m.events
}

// Logger returns the manager's logger.
func (m *EntityManager) Logger() *zerolog.Logger {
	return &m.logger
}

// Create issues a new entity with no components. A freed slot is reused when one is available,
// under the version its destruction bumped to.
func (m *EntityManager) Create() (EntityID, error) {
	if m.Locked() {
		return 0, eris.Wrap(ErrLocked, "cannot create entity")
	}
	id := m.create()
	Publish(m.events, EntityCreated{Entity: id})
	return id, nil
}

func (m *EntityManager) create() EntityID {
	var index uint32
	if n := len(m.free); n > 0 {
		index = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		index = m.numEntities
		m.numEntities++
		m.versions = append(m.versions, 1)
		m.masks = append(m.masks, ComponentMask{})
		for _, p := range m.pools {
			if p != nil {
				p.Expand(int(m.numEntities))
			}
		}
	}
	m.alive.Set(index)
	return NewEntityID(index, m.versions[index])
}

// Destroy tears down an entity. EntityDestroyed is published first, then ComponentRemoved for each
// component in family order, each followed by the destruction of that component. Afterwards the
// slot's version is bumped, so id and every handle derived from it stop validating. The manager
// is locked while the events run, so handlers must use the Enqueue operations to make structural
// changes.
func (m *EntityManager) Destroy(id EntityID) error {
	if m.Locked() {
		return eris.Wrapf(ErrLocked, "cannot destroy entity %s", id)
	}
	if !m.IsValid(id) {
		return eris.Wrapf(ErrStaleEntity, "cannot destroy entity %s", id)
	}
	return m.destroy(id)
}

// destroy returns the error of the operations handlers deferred during the teardown.
func (m *EntityManager) destroy(id EntityID) error {
	m.Lock()
	Publish(m.events, EntityDestroyed{Entity: id})

	index := id.Index()
	for _, f := range maskFamilies(m.masks[index]) {
		p := m.pools[f]
		p.publishRemoved(m, id)
		p.Destroy(int(index))
		m.masks[index].Unmark(f)
	}
	assert.That(m.masks[index] == ComponentMask{}, "entity %s still has components after destroy", id)

	m.versions[index]++
	if m.versions[index] == 0 {
		// Version 0 would let index 0 alias the zero EntityID.
		m.versions[index] = 1
	}
	m.alive.Remove(index)
	m.free = append(m.free, index)
	return m.Unlock()
}

// Clone creates a new entity holding a copy of every component of id. Components implementing
// Cloner are deep copied through it, the rest are copied by value.
func (m *EntityManager) Clone(id EntityID) (EntityID, error) {
	if m.Locked() {
		return 0, eris.Wrapf(ErrLocked, "cannot clone entity %s", id)
	}
	if !m.IsValid(id) {
		return 0, eris.Wrapf(ErrStaleEntity, "cannot clone entity %s", id)
	}

	clone := m.create()
	src, dst := id.Index(), clone.Index()
	families := maskFamilies(m.masks[src])
	for _, f := range families {
		m.pools[f].copySlot(int(src), int(dst))
	}
	m.masks[dst] = m.masks[src]

	Publish(m.events, EntityCreated{Entity: clone})
	for _, f := range families {
		m.pools[f].publishAdded(m, clone)
	}
	return clone, nil
}

// IsValid reports whether id names a live entity of this manager.
func (m *EntityManager) IsValid(id EntityID) bool {
	index := id.Index()
	return index < m.numEntities && m.versions[index] == id.Version() && m.alive.Contains(index)
}

// Size returns the number of live entities.
func (m *EntityManager) Size() int {
	return int(m.numEntities) - len(m.free)
}

// Capacity returns the number of slots ever issued, live or free.
func (m *EntityManager) Capacity() int {
	return int(m.numEntities)
}

// ComponentMask returns the set of component families id holds.
func (m *EntityManager) ComponentMask(id EntityID) (ComponentMask, error) {
	if !m.IsValid(id) {
		return ComponentMask{}, eris.Wrapf(ErrStaleEntity, "cannot read component mask of %s", id)
	}
	return m.masks[id.Index()], nil
}

// Families lists the component families id holds, in ascending order.
func (m *EntityManager) Families(id EntityID) ([]Family, error) {
	mask, err := m.ComponentMask(id)
	if err != nil {
		return nil, err
	}
	return maskFamilies(mask), nil
}

// Components returns a copy of every component id holds, in family order.
func (m *EntityManager) Components(id EntityID) ([]any, error) {
	families, err := m.Families(id)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(families))
	for i, f := range families {
		values[i] = m.pools[f].value(int(id.Index()))
	}
	return values, nil
}

// Reset destroys every live entity, publishing the usual events. Slots and pools stay allocated.
func (m *EntityManager) Reset() error {
	if m.Locked() {
		return eris.Wrap(ErrLocked, "cannot reset entity manager")
	}
	live := make([]EntityID, 0, m.Size())
	m.alive.Range(func(index uint32) {
		live = append(live, NewEntityID(index, m.versions[index]))
	})
	var firstErr error
	for _, id := range live {
		// Deferred operations of an earlier teardown may have destroyed it already.
		if !m.IsValid(id) {
			continue
		}
		if err := m.destroy(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.logger.Debug().Int("destroyed", len(live)).Msg("reset entity manager")
	return firstErr
}

// Lock marks the manager as being iterated. Until every Lock is matched by an Unlock, structural
// changes fail with ErrLocked and Enqueue operations are deferred.
func (m *EntityManager) Lock() {
	m.lockDepth++
}

// Unlock releases one Lock. Releasing the last one applies the deferred operations and returns
// the first error they produced.
func (m *EntityManager) Unlock() error {
	assert.That(m.lockDepth > 0, "unlock of an entity manager that is not locked")
	m.lockDepth--
	if m.lockDepth > 0 {
		return nil
	}
	return m.processOperationQueue()
}

// Locked reports whether an iteration or an explicit Lock is in progress.
func (m *EntityManager) Locked() bool {
	return m.lockDepth > 0
}

// release is Unlock for iterators, which have no caller to hand an error to.
func (m *EntityManager) release() {
	if err := m.Unlock(); err != nil {
		m.logger.Error().Err(err).Msg("deferred entity operations failed")
	}
}

func (m *EntityManager) pool(f Family) abstractPool {
	if int(f) >= len(m.pools) {
		return nil
	}
	return m.pools[f]
}

// lookupPool returns the pool of T if this manager ever stored a T.
func lookupPool[T any](m *EntityManager) (*Pool[T], bool) {
	f, ok := LookupFamily[T]()
	if !ok {
		return nil, false
	}
	p := m.pool(f)
	if p == nil {
		return nil, false
	}
	return p.(*Pool[T]), true
}

// assurePool returns the pool of T, creating it sized to the high-water mark on first use.
func assurePool[T any](m *EntityManager) *Pool[T] {
	f := FamilyOf[T]()
	if p := m.pool(f); p != nil {
		return p.(*Pool[T])
	}
	if int(f) >= len(m.pools) {
		m.pools = append(m.pools, make([]abstractPool, int(f)+1-len(m.pools))...)
	}
	p := NewPool[T](m.blockSize)
	p.Expand(int(m.numEntities))
	m.pools[f] = p
	m.logger.Debug().
		Uint32("family", f).
		Str("type", FamilyName(f)).
		Int("block_size", p.BlockSize()).
		Msg("created component pool")
	return p
}
