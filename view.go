package ecs

import "iter"

// View selects the live entities holding at least a given set of component families. A View is a
// cheap value; it reads the manager only while iterated, so it always reflects current state.
type View struct {
	manager *EntityManager
	mask    ComponentMask // required, all of
	anyOf   ComponentMask // at least one of, ignored when empty
	without ComponentMask // none of
}

// EntitiesWithComponents returns a view of the entities holding every one of families. With no
// families every live entity matches.
func (m *EntityManager) EntitiesWithComponents(families ...Family) View {
	return View{manager: m, mask: MakeComponentMask(families...)}
}

func View1[A any](m *EntityManager) View {
	return m.EntitiesWithComponents(FamilyOf[A]())
}

func View2[A, B any](m *EntityManager) View {
	return m.EntitiesWithComponents(FamilyOf[A](), FamilyOf[B]())
}

func View3[A, B, C any](m *EntityManager) View {
	return m.EntitiesWithComponents(FamilyOf[A](), FamilyOf[B](), FamilyOf[C]())
}

func View4[A, B, C, D any](m *EntityManager) View {
	return m.EntitiesWithComponents(FamilyOf[A](), FamilyOf[B](), FamilyOf[C](), FamilyOf[D]())
}

// WithAny narrows the view to entities that also hold at least one of families.
func (v View) WithAny(families ...Family) View {
	for _, f := range families {
		v.anyOf.Mark(f)
	}
	return v
}

// Without narrows the view to entities holding none of families.
func (v View) Without(families ...Family) View {
	for _, f := range families {
		v.without.Mark(f)
	}
	return v
}

// Mask returns the families every matching entity holds.
func (v View) Mask() ComponentMask {
	return v.mask
}

func (v View) Manager() *EntityManager {
	return v.manager
}

func (v View) matches(index uint32) bool {
	m := v.manager
	if !m.alive.Contains(index) {
		return false
	}
	mask := m.masks[index]
	if !mask.ContainsAll(v.mask) || !mask.ContainsNone(v.without) {
		return false
	}
	return v.anyOf == ComponentMask{} || mask.ContainsAny(v.anyOf)
}

// All yields matching entities in ascending slot order. Slots issued after iteration starts are
// not visited. The manager is locked for as long as the loop runs, and deferred operations are
// applied when it ends, including when the loop body breaks out early.
func (v View) All() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		m := v.manager
		m.Lock()
		defer m.release()

		end := m.numEntities
		for index := uint32(0); index < end; index++ {
			if !v.matches(index) {
				continue
			}
			if !yield(NewEntityID(index, m.versions[index])) {
				return
			}
		}
	}
}

// Cursor returns a pull-style iterator over the view.
func (v View) Cursor() *Cursor {
	return newCursor(v)
}

// Count returns the number of matching entities.
func (v View) Count() int {
	n := 0
	for index := uint32(0); index < v.manager.numEntities; index++ {
		if v.matches(index) {
			n++
		}
	}
	return n
}

// Entities collects the matching entities.
func (v View) Entities() []EntityID {
	ids := make([]EntityID, 0, v.Count())
	for id := range v.All() {
		ids = append(ids, id)
	}
	return ids
}
