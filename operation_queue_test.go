package ecs

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueAppliesImmediatelyWhenUnlocked(t *testing.T) {
	m := newTestManager(t)

	var created EntityID
	require.NoError(t, m.EnqueueCreate(func(id EntityID) { created = id }))
	require.True(t, m.IsValid(created))

	require.NoError(t, EnqueueAdd(m, created, Position{X: 1}))
	ok, _ := Has[Position](m, created)
	assert.True(t, ok)

	require.NoError(t, EnqueueRemove[Position](m, created))
	ok, _ = Has[Position](m, created)
	assert.False(t, ok)

	require.NoError(t, m.EnqueueDestroy(created))
	assert.False(t, m.IsValid(created))
	assert.Equal(t, 0, m.Pending())
}

func TestEnqueueDefersUntilUnlock(t *testing.T) {
	m := newTestManager(t)
	ids := populate(t, m,
		componentSet{position: true},
		componentSet{position: true, velocity: true},
		componentSet{position: true},
	)

	var spawned []EntityID
	for id := range View1[Position](m).All() {
		require.NoError(t, m.EnqueueCreate(func(child EntityID) {
			spawned = append(spawned, child)
			_, err := Add(m, child, Health{Current: 1})
			require.NoError(t, err)
		}))
		if id == ids[1] {
			require.NoError(t, EnqueueRemove[Velocity](m, id))
		} else {
			require.NoError(t, EnqueueAdd(m, id, Velocity{X: 2}))
		}
	}

	assert.Len(t, spawned, 3)
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, 6, m.Size())
	assert.Len(t, View1[Health](m).Entities(), 3)

	assert.Equal(t, []EntityID{ids[0], ids[2]}, View1[Velocity](m).Entities())
}

func TestEnqueueDuringIterationIsNotVisited(t *testing.T) {
	m := newTestManager(t)
	populate(t, m, componentSet{position: true}, componentSet{position: true})

	visited := 0
	for range View1[Position](m).All() {
		visited++
		require.NoError(t, m.EnqueueCreate(func(child EntityID) {
			_, err := Add(m, child, Position{})
			require.NoError(t, err)
		}))
		assert.Equal(t, visited, m.Pending())
	}
	assert.Equal(t, 2, visited)
	assert.Equal(t, 4, View1[Position](m).Count())
}

func TestEnqueueDestroyDropsComponentOps(t *testing.T) {
	m := newTestManager(t)
	ids := populate(t, m, componentSet{position: true}, componentSet{position: true})

	added := 0
	Subscribe(m.Events(), func(ComponentAdded[Velocity]) { added++ })

	m.Lock()
	require.NoError(t, EnqueueAdd(m, ids[0], Velocity{}))
	require.NoError(t, m.EnqueueDestroy(ids[0]))
	require.NoError(t, m.EnqueueDestroy(ids[0]), "destroying twice is coalesced")
	require.NoError(t, EnqueueAdd(m, ids[0], Velocity{}), "ignored, already queued for destroy")
	require.NoError(t, EnqueueAdd(m, ids[1], Velocity{}))
	assert.Equal(t, 2, m.Pending())
	require.NoError(t, m.Unlock())

	assert.Equal(t, 1, added)
	assert.False(t, m.IsValid(ids[0]))
	ok, err := Has[Velocity](m, ids[1])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnqueueValidatesEagerly(t *testing.T) {
	m := newTestManager(t)
	e := mustCreate(t, m)
	require.NoError(t, m.Destroy(e))

	m.Lock()
	assert.ErrorIs(t, m.EnqueueDestroy(e), ErrStaleEntity)
	assert.ErrorIs(t, EnqueueAdd(m, e, Position{}), ErrStaleEntity)
	assert.ErrorIs(t, EnqueueRemove[Position](m, e), ErrStaleEntity)
	assert.Equal(t, 0, m.Pending())
	require.NoError(t, m.Unlock())
}

func TestDeferredOperationErrors(t *testing.T) {
	var buf bytes.Buffer
	Config.SetLogger(zerolog.New(&buf))
	defer Config.SetLogger(zerolog.Nop())

	m := newTestManager(t)
	ids := populate(t, m, componentSet{position: true}, componentSet{})

	m.Lock()
	require.NoError(t, EnqueueAdd(m, ids[0], Position{X: 5}))
	require.NoError(t, EnqueueRemove[Position](m, ids[1]))
	err := m.Unlock()

	require.ErrorIs(t, err, ErrComponentExists)
	assert.Contains(t, buf.String(), "failed to apply deferred operation")
	assert.Contains(t, buf.String(), `"op":"add_component"`)
	assert.Equal(t, 0, m.Pending())
}

func TestDeferredOperationOnStaleEntityIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	Config.SetLogger(zerolog.New(&buf))
	defer Config.SetLogger(zerolog.Nop())

	m := newTestManager(t)
	ids := populate(t, m, componentSet{position: true}, componentSet{position: true})

	// Destroying ids[1] from an event handler during the flush makes the queued add stale.
	Subscribe(m.Events(), func(e ComponentAdded[Health]) {
		if e.Entity == ids[0] {
			require.NoError(t, m.Destroy(ids[1]))
		}
	})

	m.Lock()
	require.NoError(t, EnqueueAdd(m, ids[0], Health{}))
	require.NoError(t, EnqueueAdd(m, ids[1], Health{}))
	require.NoError(t, m.Unlock())

	assert.False(t, m.IsValid(ids[1]))
	assert.Contains(t, buf.String(), "skipping deferred operation on stale entity")
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	m := newTestManager(t)
	assert.Panics(t, func() { _ = m.Unlock() })
}

func TestExplicitLockNests(t *testing.T) {
	m := newTestManager(t)
	m.Lock()
	m.Lock()
	require.NoError(t, m.EnqueueCreate(nil))
	require.NoError(t, m.Unlock())
	assert.True(t, m.Locked())
	assert.Equal(t, 0, m.Size())

	require.NoError(t, m.Unlock())
	assert.False(t, m.Locked())
	assert.Equal(t, 1, m.Size())
}
