package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

// Family is the stable small integer identifying a component type, or separately a system type,
// within the process.
type Family = uint32

const (
	// MaxComponents is the number of component families a ComponentMask is provisioned for.
	MaxComponents = 64
	// MaxSystems is the number of system families that can be registered.
	MaxSystems = 64
)

// FamilyInfo describes a registered type.
type FamilyInfo struct {
	ID   Family
	Name string
	Type reflect.Type
}

// typeRegistry hands out family ids on first observation of a type. Ids start at 0, grow by one
// per new type and are never reused or reset.
type typeRegistry struct {
	mu    sync.RWMutex
	kind  string
	limit int
	ids   map[reflect.Type]Family
	types []reflect.Type
}

var (
	componentFamilies = newTypeRegistry("component", MaxComponents)
	systemFamilies    = newTypeRegistry("system", MaxSystems)
)

func newTypeRegistry(kind string, limit int) *typeRegistry {
	return &typeRegistry{
		kind:  kind,
		limit: limit,
		ids:   make(map[reflect.Type]Family, limit),
		types: make([]reflect.Type, 0, limit),
	}
}

func (r *typeRegistry) familyOf(t reflect.Type) Family {
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= r.limit {
		panic(fmt.Sprintf(
			"cannot register %s %s: maximum number of %s families (%d) reached",
			r.kind, t, r.kind, r.limit,
		))
	}
	id = Family(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

func (r *typeRegistry) lookup(t reflect.Type) (Family, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

func (r *typeRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

func (r *typeRegistry) infos() []FamilyInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]FamilyInfo, len(r.types))
	for i, t := range r.types {
		infos[i] = FamilyInfo{ID: Family(i), Name: t.String(), Type: t}
	}
	return infos
}

func (r *typeRegistry) typeOf(id Family) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) {
		return nil, false
	}
	return r.types[id], true
}

// FamilyOf returns the component family of T, registering T on first use. It panics when more
// than MaxComponents component types are registered: the binary was built with more component
// types than a ComponentMask can hold.
func FamilyOf[T any]() Family {
	return componentFamilies.familyOf(reflect.TypeFor[T]())
}

// LookupFamily returns the component family of T without registering it.
func LookupFamily[T any]() (Family, bool) {
	return componentFamilies.lookup(reflect.TypeFor[T]())
}

// SystemFamilyOf returns the system family of S. System families are numbered independently of
// component families.
func SystemFamilyOf[S any]() Family {
	return systemFamilies.familyOf(reflect.TypeFor[S]())
}

// NumFamilies returns how many component families have been registered in the process.
func NumFamilies() int {
	return componentFamilies.count()
}

// RegisteredComponents lists every registered component family ordered by id.
func RegisteredComponents() []FamilyInfo {
	return componentFamilies.infos()
}

// RegisteredSystems lists every registered system family ordered by id.
func RegisteredSystems() []FamilyInfo {
	return systemFamilies.infos()
}

// FamilyName returns the type name registered for a component family, or "" if none is.
func FamilyName(f Family) string {
	t, ok := componentFamilies.typeOf(f)
	if !ok {
		return ""
	}
	return t.String()
}
