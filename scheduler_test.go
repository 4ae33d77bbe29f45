package lazyecs_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/rotisserie/eris"

	"pkg.world.dev/lazyecs"
	"pkg.world.dev/lazyecs/assert"
	"pkg.world.dev/lazyecs/testutils"
)

// recorder appends a label per Run call so tests can check execution order.
type recorder struct {
	log *[]string
	tag string
}

func (r recorder) Run(*lazyecs.World, float64) error {
	*r.log = append(*r.log, r.tag)
	return nil
}

func namedSystem(*lazyecs.World, float64) error { return nil }

func TestSchedulerOrdersPhasesThenPriority(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	sched := lazyecs.NewScheduler()

	var log []string
	add := func(phase, tag string, priority int) {
		t.Helper()
		assert.NilError(t, sched.AddSystem(phase, recorder{log: &log, tag: tag},
			lazyecs.WithSystemName(tag), lazyecs.WithPriority(priority)))
	}
	// Registration order fixes the phase order (pre_update, update,
	// post_update); priority reorders within a phase only.
	add(lazyecs.PreUpdate, "pre_update[0]", 0)
	add(lazyecs.UpdatePhase, "update[10]", 10)
	add(lazyecs.UpdatePhase, "update[0]", 0)
	add(lazyecs.PostUpdate, "post_update[5]", 5)

	assert.NilError(t, sched.Run(world, 1.0/60))
	assert.DeepEqual(t, log, []string{"pre_update[0]", "update[0]", "update[10]", "post_update[5]"})

	assert.DeepEqual(t, sched.Phases(), []string{"pre_update", "update", "post_update"})
	assert.DeepEqual(t, sched.Systems(), []string{"pre_update[0]", "update[0]", "update[10]", "post_update[5]"})
}

func TestSchedulerKeepsRegistrationOrderForEqualPriority(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	sched := lazyecs.NewScheduler()

	var log []string
	for _, tag := range []string{"a", "b", "c"} {
		assert.NilError(t, sched.AddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: tag},
			lazyecs.WithSystemName(tag)))
	}

	assert.NilError(t, sched.Run(world, 0.1))
	assert.DeepEqual(t, log, []string{"a", "b", "c"})
}

// TestSchedulerOrderInvariantUnderRegistrationOrder drives every permutation
// of four system registrations and checks the executed order always equals a
// stable sort of that permutation.
func TestSchedulerOrderInvariantUnderRegistrationOrder(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)

	type sys struct {
		tag      string
		priority int
	}
	base := []sys{{"s0", 0}, {"s1", 0}, {"s2", 5}, {"s3", 10}}

	for g := testutils.NewGen(); !g.Done(); {
		systems := make([]sys, len(base))
		copy(systems, base)
		testutils.Shuffle(g, systems)

		sched := lazyecs.NewScheduler()
		var log []string
		for _, s := range systems {
			assert.NilError(t, sched.AddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: s.tag},
				lazyecs.WithSystemName(s.tag), lazyecs.WithPriority(s.priority)))
		}
		assert.NilError(t, sched.Run(world, 0.5))

		want := make([]sys, len(systems))
		copy(want, systems)
		sort.SliceStable(want, func(i, j int) bool { return want[i].priority < want[j].priority })
		wantTags := make([]string, len(want))
		for i, s := range want {
			wantTags[i] = s.tag
		}
		assert.DeepEqual(t, log, wantTags)
	}
}

func TestSchedulerPassesDtUnchanged(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	sched := lazyecs.NewScheduler()

	var dts []float64
	sched.MustAddFunc(lazyecs.UpdatePhase, func(_ *lazyecs.World, dt float64) error {
		dts = append(dts, dt)
		return nil
	})

	assert.NilError(t, sched.Run(world, 1.0/60))
	assert.NilError(t, sched.Run(world, 1.0/30))
	assert.DeepEqual(t, dts, []float64{1.0 / 60, 1.0 / 30})
	assert.Equal(t, sched.Tick(), uint64(2))
}

func TestSystemErrorAbortsTick(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	sched := lazyecs.NewScheduler()

	boom := eris.New("boom")
	var log []string
	sched.MustAddFunc(lazyecs.UpdatePhase, func(*lazyecs.World, float64) error {
		log = append(log, "first")
		return nil
	}, lazyecs.WithSystemName("first"))
	sched.MustAddFunc(lazyecs.UpdatePhase, func(*lazyecs.World, float64) error {
		return boom
	}, lazyecs.WithSystemName("exploder"))
	sched.MustAddFunc(lazyecs.UpdatePhase, func(*lazyecs.World, float64) error {
		log = append(log, "third")
		return nil
	}, lazyecs.WithSystemName("third"))

	err := sched.Run(world, 0.1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "boom")
	assert.DeepEqual(t, log, []string{"first"})
	assert.Equal(t, sched.Tick(), uint64(0), "a failed tick must not advance the counter")

	// The next run starts from the top again.
	log = nil
	err = sched.Run(world, 0.1)
	assert.IsError(t, err)
	assert.DeepEqual(t, log, []string{"first"})
}

func TestSystemErrorNamesTheSystem(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	sched := lazyecs.NewScheduler()

	sched.MustAddFunc(lazyecs.UpdatePhase, func(*lazyecs.World, float64) error {
		return eris.New("out of gas")
	}, lazyecs.WithSystemName("engine"))

	err := sched.Run(world, 0.1)
	assert.IsError(t, err)
	assert.Check(t, strings.Contains(err.Error(), "system engine generated an error"),
		"got: %v", err)
}

func TestDuplicateSystemNamesRejected(t *testing.T) {
	t.Parallel()
	sched := lazyecs.NewScheduler()

	var log []string
	assert.NilError(t, sched.AddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: "x"}))
	err := sched.AddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: "y"})
	assert.ErrorIs(t, err, lazyecs.ErrDuplicateSystemName)

	// Naming one of them resolves the clash, even across phases.
	assert.NilError(t, sched.AddSystem(lazyecs.PostUpdate, recorder{log: &log, tag: "y"},
		lazyecs.WithSystemName("recorder-2")))
}

func TestSystemNameDerivation(t *testing.T) {
	t.Parallel()
	sched := lazyecs.NewScheduler()

	// Struct systems are named after their type, functions after their
	// symbol.
	var log []string
	assert.NilError(t, sched.AddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: "a"}))
	assert.NilError(t, sched.AddFunc(lazyecs.UpdatePhase, namedSystem))

	assert.DeepEqual(t, sched.Systems(), []string{"recorder", "lazyecs_test.namedSystem"})
}

func TestSchedulerPanicsPropagate(t *testing.T) {
	t.Parallel()
	world := testutils.NewTestWorld(t)
	sched := lazyecs.NewScheduler()

	sched.MustAddFunc(lazyecs.UpdatePhase, func(*lazyecs.World, float64) error {
		panic("unreachable state")
	}, lazyecs.WithSystemName("panicker"))

	assert.Panics(t, func() {
		_ = sched.Run(world, 0.1)
	})
}

func TestMustAddSystemPanicsOnDuplicate(t *testing.T) {
	t.Parallel()
	sched := lazyecs.NewScheduler()

	var log []string
	sched.MustAddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: "a"})
	assert.Panics(t, func() {
		sched.MustAddSystem(lazyecs.UpdatePhase, recorder{log: &log, tag: "b"})
	})
}

