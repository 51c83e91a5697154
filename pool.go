package ecs

import (
	"github.com/kelindar/bitmap"

	"github.com/Epiphane/NCW-sub001/internal/assert"
)

// Destroyer is implemented by components that release resources when they are removed from their
// entity, directly or because the entity is destroyed.
type Destroyer interface {
	Destroy()
}

// Cloner is implemented by components that need a deep copy when their entity is cloned.
// Components without it are copied by value.
type Cloner[T any] interface {
	Clone() T
}

// abstractPool is the type-erased view the entity manager keeps of every Pool, so it can grow,
// destroy and copy components without knowing their type.
type abstractPool interface {
	Family() Family
	Expand(n int)
	Size() int
	Destroy(index int)
	Constructed(index int) bool
	Len() int

	copySlot(src, dst int)
	value(index int) any
	publishAdded(m *EntityManager, id EntityID)
	publishRemoved(m *EntityManager, id EntityID)
}

var _ abstractPool = &Pool[struct{}]{}

// Pool stores every instance of one component family. Storage is allocated in fixed-size blocks
// and indexed by entity slot, so components of neighbouring entities sit next to each other.
// Blocks are never reallocated: an address returned by Get stays valid for the life of the Pool.
type Pool[T any] struct {
	family      Family
	blocks      [][]T
	blockSize   int // in elements, not bytes
	size        int
	capacity    int
	constructed bitmap.Bitmap // slots currently holding a live component
}

// NewPool creates an empty pool for T allocating blockSize elements at a time. A non-positive
// blockSize uses Config.BlockSize.
func NewPool[T any](blockSize int) *Pool[T] {
	if blockSize <= 0 {
		blockSize = Config.BlockSize()
	}
	return &Pool[T]{
		family:    FamilyOf[T](),
		blockSize: blockSize,
	}
}

// Family is the component family the pool stores.
func (p *Pool[T]) Family() Family { return p.family }

// Size is the number of addressable slots.
func (p *Pool[T]) Size() int { return p.size }

// Capacity is the number of allocated slots.
func (p *Pool[T]) Capacity() int { return p.capacity }

// Blocks is the number of allocated blocks.
func (p *Pool[T]) Blocks() int { return len(p.blocks) }

// BlockSize is the number of slots per block.
func (p *Pool[T]) BlockSize() int { return p.blockSize }

// Len is the number of slots currently holding a constructed component.
func (p *Pool[T]) Len() int { return p.constructed.Count() }

// Expand guarantees that slots [0, n) are addressable. Smaller n is a no-op.
func (p *Pool[T]) Expand(n int) {
	if n > p.size {
		if n > p.capacity {
			p.Reserve(n)
		}
		p.size = n
	}
}

// Reserve allocates whole blocks until capacity covers n slots without changing Size.
func (p *Pool[T]) Reserve(n int) {
	for n > p.capacity {
		p.blocks = append(p.blocks, make([]T, p.blockSize))
		p.capacity += p.blockSize
	}
}

// Get returns the address of slot index. The slot must have been covered by Expand.
func (p *Pool[T]) Get(index int) *T {
	assert.That(index >= 0 && index < p.size, "pool slot %d out of range [0, %d)", index, p.size)
	return &p.blocks[index/p.blockSize][index%p.blockSize]
}

// Construct stores value in slot index and marks the slot as holding a component.
func (p *Pool[T]) Construct(index int, value T) *T {
	ptr := p.Get(index)
	*ptr = value
	p.constructed.Set(uint32(index))
	return ptr
}

// Constructed reports whether slot index holds a component.
func (p *Pool[T]) Constructed(index int) bool {
	return index >= 0 && index < p.size && p.constructed.Contains(uint32(index))
}

// Destroy runs the component's Destroyer hook, if any, and zeroes the slot so referenced memory
// can be collected. The slot itself stays allocated for the next Construct.
func (p *Pool[T]) Destroy(index int) {
	ptr := p.Get(index)
	if d, ok := any(ptr).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*ptr = zero
	p.constructed.Remove(uint32(index))
}

func (p *Pool[T]) copySlot(src, dst int) {
	from := p.Get(src)
	value := *from
	if c, ok := any(from).(Cloner[T]); ok {
		value = c.Clone()
	}
	p.Construct(dst, value)
}

func (p *Pool[T]) value(index int) any {
	return *p.Get(index)
}

func (p *Pool[T]) publishAdded(m *EntityManager, id EntityID) {
	if m.events == nil {
		return
	}
	Publish(m.events, ComponentAdded[T]{Entity: id, Component: Handle[T]{manager: m, id: id}})
}

func (p *Pool[T]) publishRemoved(m *EntityManager, id EntityID) {
	if m.events == nil {
		return
	}
	Publish(m.events, ComponentRemoved[T]{Entity: id, Component: Handle[T]{manager: m, id: id}})
}
