package ecs

// Each1 calls fn with every entity holding an A and the address of that A. fn may change
// component values but not which components exist; use the Enqueue functions for that.
func Each1[A any](m *EntityManager, fn func(EntityID, *A)) {
	view := View1[A](m)
	pa, ok := lookupPool[A](m)
	if !ok {
		return
	}
	for id := range view.All() {
		fn(id, pa.Get(int(id.Index())))
	}
}

func Each2[A, B any](m *EntityManager, fn func(EntityID, *A, *B)) {
	view := View2[A, B](m)
	pa, okA := lookupPool[A](m)
	pb, okB := lookupPool[B](m)
	if !okA || !okB {
		return
	}
	for id := range view.All() {
		i := int(id.Index())
		fn(id, pa.Get(i), pb.Get(i))
	}
}

func Each3[A, B, C any](m *EntityManager, fn func(EntityID, *A, *B, *C)) {
	view := View3[A, B, C](m)
	pa, okA := lookupPool[A](m)
	pb, okB := lookupPool[B](m)
	pc, okC := lookupPool[C](m)
	if !okA || !okB || !okC {
		return
	}
	for id := range view.All() {
		i := int(id.Index())
		fn(id, pa.Get(i), pb.Get(i), pc.Get(i))
	}
}

func Each4[A, B, C, D any](m *EntityManager, fn func(EntityID, *A, *B, *C, *D)) {
	view := View4[A, B, C, D](m)
	pa, okA := lookupPool[A](m)
	pb, okB := lookupPool[B](m)
	pc, okC := lookupPool[C](m)
	pd, okD := lookupPool[D](m)
	if !okA || !okB || !okC || !okD {
		return
	}
	for id := range view.All() {
		i := int(id.Index())
		fn(id, pa.Get(i), pb.Get(i), pc.Get(i), pd.Get(i))
	}
}
