package ecs

import "fmt"

// EntityID names a logical entity. It packs two fields:
//
//	| version (32 bit) | index (32 bit) |
//
// index corresponds to a storage slot that can be reused. Once an entity is destroyed its index
// is handed out again with a new version, so stale ids stop validating instead of aliasing the
// new entity.
type EntityID uint64

// NewEntityID combines a slot index and a version.
func NewEntityID(index, version uint32) EntityID {
	return EntityID(uint64(index) | uint64(version)<<32)
}

// Index returns the storage slot of the entity.
func (id EntityID) Index() uint32 {
	return uint32(id & 0xffffffff)
}

// Version returns the generation of the slot this id was issued for.
func (id EntityID) Version() uint32 {
	return uint32(id >> 32)
}

// String shows both the index and the version.
func (id EntityID) String() string {
	if id == 0 {
		return "NoEntity"
	}
	return fmt.Sprintf("%d(v:%d)", id.Index(), id.Version())
}
