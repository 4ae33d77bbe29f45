package lazyecs_test

import (
	"testing"

	"pkg.world.dev/lazyecs"
	"pkg.world.dev/lazyecs/assert"
	"pkg.world.dev/lazyecs/testutils"
)

func TestSetRegistersTypeOnFirstUse(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	// No RegisterComponent call: the typed entry point creates the store.
	assert.NilError(t, lazyecs.Set(world, e, Position{X: 7}))

	pos, err := lazyecs.Get[Position](world, e)
	assert.NilError(t, err)
	assert.Equal(t, pos, Position{X: 7})
	assert.DeepEqual(t, world.RegisteredComponents(), []string{"position"})
}

func TestSetFailsForDeadEntity(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	world.Destroy(e)
	err := lazyecs.Set(world, e, Position{})
	assert.ErrorIs(t, err, lazyecs.ErrEntityNotAlive)
}

func TestSetOverwritesInPlace(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	assert.NilError(t, lazyecs.Set(world, e, Health{Current: 10, Max: 10}))
	assert.NilError(t, lazyecs.Set(world, e, Health{Current: 3, Max: 10}))

	hp, err := lazyecs.Get[Health](world, e)
	assert.NilError(t, err)
	assert.Equal(t, hp.Current, 3)
	assert.Equal(t, world.Stats().Components["health"], 1)
}

func TestGetDistinguishesMissingTypeFromMissingEntry(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()

	// Type never registered anywhere in this world.
	_, err := lazyecs.Get[Velocity](world, e)
	assert.ErrorIs(t, err, lazyecs.ErrComponentNotRegistered)

	// Type registered, but this entity has no entry.
	other := world.Create()
	assert.NilError(t, lazyecs.Set(world, other, Velocity{}))
	_, err = lazyecs.Get[Velocity](world, e)
	assert.ErrorIs(t, err, lazyecs.ErrComponentNotOnEntity)
}

func TestTryGetNeverFails(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	_, ok := lazyecs.TryGet[Position](world, e)
	assert.False(t, ok)

	assert.NilError(t, lazyecs.Set(world, e, Position{Y: 2}))
	pos, ok := lazyecs.TryGet[Position](world, e)
	assert.True(t, ok)
	assert.Equal(t, pos, Position{Y: 2})

	world.Destroy(e)
	_, ok = lazyecs.TryGet[Position](world, e)
	assert.False(t, ok)
}

func TestRemoveIsSilentAndReportsOutcome(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	assert.False(t, lazyecs.Remove[Position](world, e), "type not registered")

	assert.NilError(t, lazyecs.Set(world, e, Position{}))
	assert.True(t, lazyecs.Remove[Position](world, e))
	assert.False(t, lazyecs.Remove[Position](world, e), "already removed")
	assert.True(t, world.Alive(e))
}

func TestUpdateMutatesThroughPointer(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	assert.NilError(t, lazyecs.Set(world, e, Health{Current: 10, Max: 10}))

	assert.NilError(t, lazyecs.Update(world, e, func(h *Health) *Health {
		h.Current -= 4
		return nil
	}))
	hp, err := lazyecs.Get[Health](world, e)
	assert.NilError(t, err)
	assert.Equal(t, hp.Current, 6)
}

func TestUpdateAcceptsReplacementValue(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	assert.NilError(t, lazyecs.Set(world, e, Health{Current: 10, Max: 10}))

	assert.NilError(t, lazyecs.Update(world, e, func(*Health) *Health {
		return &Health{Current: 1, Max: 1}
	}))
	hp, err := lazyecs.Get[Health](world, e)
	assert.NilError(t, err)
	assert.Equal(t, hp, Health{Current: 1, Max: 1})
}

func TestUpdateFailsLikeGet(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	e := world.Create()
	err := lazyecs.Update(world, e, func(h *Health) *Health { return nil })
	assert.ErrorIs(t, err, lazyecs.ErrComponentNotRegistered)

	other := world.Create()
	assert.NilError(t, lazyecs.Set(world, other, Health{}))
	err = lazyecs.Update(world, e, func(h *Health) *Health { return nil })
	assert.ErrorIs(t, err, lazyecs.ErrComponentNotOnEntity)
}
