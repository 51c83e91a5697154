package ecs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	Current, Max int
}

type Direction struct {
	Angle float64
}

type Inventory struct {
	Items []string
}

func (i Inventory) Clone() Inventory {
	return Inventory{Items: slices.Clone(i.Items)}
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		name    string
		index   uint32
		version uint32
		str     string
	}{
		{"First slot", 0, 1, "0(v:1)"},
		{"Reused slot", 7, 3, "7(v:3)"},
		{"Max index", 0xffffffff, 1, "4294967295(v:1)"},
		{"Max version", 2, 0xffffffff, "2(v:4294967295)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewEntityID(tt.index, tt.version)
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.version, id.Version())
			assert.Equal(t, tt.str, id.String())
		})
	}
}

func TestEntityIDEquality(t *testing.T) {
	assert.Equal(t, NewEntityID(3, 1), NewEntityID(3, 1))
	assert.NotEqual(t, NewEntityID(3, 1), NewEntityID(3, 2))
	assert.NotEqual(t, NewEntityID(3, 1), NewEntityID(4, 1))
	assert.Equal(t, "NoEntity", EntityID(0).String())
}
