package ecs

import (
	"iter"

	"github.com/rs/zerolog"
)

var (
	_ Entities     = &EntityManager{}
	_ Query        = View{}
	_ iCursor      = &Cursor{}
	_ Locker       = &EntityManager{}
	_ ComponentRef = Handle[struct{}]{}
)

// Locker is the iteration lock of an entity store.
type Locker interface {
	Locked() bool
	Lock()
	Unlock() error
}

// Entities is the non-generic surface of EntityManager. Systems can depend on it instead of the
// concrete manager.
type Entities interface {
	Locker
	Create() (EntityID, error)
	Destroy(EntityID) error
	Clone(EntityID) (EntityID, error)
	IsValid(EntityID) bool
	Size() int
	Capacity() int
	ComponentMask(EntityID) (ComponentMask, error)
	Families(EntityID) ([]Family, error)
	EntitiesWithComponents(...Family) View
	EnqueueCreate(func(EntityID)) error
	EnqueueDestroy(EntityID) error
	Reset() error
	Events() *EventBus
	Logger() *zerolog.Logger
}

type Query interface {
	All() iter.Seq[EntityID]
	Cursor() *Cursor
	Count() int
	Entities() []EntityID
	Mask() ComponentMask
}

type iCursor interface {
	Next() bool
	Entity() EntityID
	Reset()
	TotalMatched() int
}

// ComponentRef is the untyped part of a Handle.
type ComponentRef interface {
	IsValid() bool
	Entity() EntityID
	Remove() error
	String() string
}
