package lazyecs_test

import (
	"testing"

	"pkg.world.dev/lazyecs"
	"pkg.world.dev/lazyecs/assert"
	"pkg.world.dev/lazyecs/testutils"
)

func TestDebugStateDumpsEveryAliveEntity(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	lazyecs.MustRegisterComponent[Position](world)
	lazyecs.MustRegisterComponent[Velocity](world)

	mover, err := world.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	assert.NilError(t, err)
	stationary, err := world.Spawn(Position{X: 5, Y: 6})
	assert.NilError(t, err)
	gone, err := world.Spawn(Position{})
	assert.NilError(t, err)
	world.Destroy(gone)

	state, err := world.DebugState()
	assert.NilError(t, err)
	assert.Len(t, state, 2)

	assert.Equal(t, mover, state[0].ID)
	assert.Len(t, state[0].Components, 2)
	assert.JSONEq(t, `{"X":1,"Y":2}`, string(state[0].Components["position"]))
	assert.JSONEq(t, `{"DX":3,"DY":4}`, string(state[0].Components["velocity"]))

	assert.Equal(t, stationary, state[1].ID)
	assert.Len(t, state[1].Components, 1)
	assert.JSONEq(t, `{"X":5,"Y":6}`, string(state[1].Components["position"]))
}

func TestDebugStateOfEmptyWorld(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	state, err := world.DebugState()
	assert.NilError(t, err)
	assert.Len(t, state, 0)
}

func TestEntityStateRequiresAliveEntity(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	lazyecs.MustRegisterComponent[Position](world)

	id, err := world.Spawn(Position{X: 9})
	assert.NilError(t, err)
	world.Destroy(id)

	_, err = world.EntityState(id)
	assert.ErrorIs(t, err, lazyecs.ErrEntityNotAlive)
}

func TestEntityStateOfBareEntity(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	id := world.Create()
	elem, err := world.EntityState(id)
	assert.NilError(t, err)
	assert.Equal(t, id, elem.ID)
	assert.Len(t, elem.Components, 0)
}

func TestDebugStateReflectsMutation(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	lazyecs.MustRegisterComponent[Health](world)

	id, err := world.Spawn(Health{Current: 10, Max: 10})
	assert.NilError(t, err)
	assert.NilError(t, lazyecs.Update(world, id, func(h *Health) *Health {
		h.Current -= 7
		return nil
	}))

	state, err := world.DebugState()
	assert.NilError(t, err)
	assert.JSONEq(t, `{"Current":3,"Max":10}`, string(state[0].Components["health"]))
}
