package ecs

import "github.com/TheBitDrifter/mask"

// ComponentMask records which component families an entity slot currently holds. Bit F is set
// iff the slot holds a component of family F.
type ComponentMask = mask.Mask

// MakeComponentMask ORs the given families into a mask.
func MakeComponentMask(families ...Family) ComponentMask {
	var m ComponentMask
	for _, f := range families {
		m.Mark(f)
	}
	return m
}

// MaskHas reports whether family f is set in m.
func MaskHas(m ComponentMask, f Family) bool {
	return m.Contains(f)
}

// maskFamilies returns the families set in m, in ascending order. Only registered families can be
// set, so the scan stops at the registry size.
func maskFamilies(m ComponentMask) []Family {
	n := NumFamilies()
	families := make([]Family, 0, 4)
	for f := Family(0); int(f) < n; f++ {
		if MaskHas(m, f) {
			families = append(families, f)
		}
	}
	return families
}
