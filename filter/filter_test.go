package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pkg.world.dev/lazyecs/filter"
	"pkg.world.dev/lazyecs/testutils"
	"pkg.world.dev/lazyecs/types"
)

func TestComponentFilters(t *testing.T) {
	t.Parallel()

	a := testutils.ComponentA{}
	b := testutils.ComponentB{}
	c := testutils.ComponentC{}

	tests := []struct {
		name       string
		filter     filter.ComponentFilter
		components []string
		want       bool
	}{
		{
			name:       "all matches anything",
			filter:     filter.All(),
			components: nil,
			want:       true,
		},
		{
			name:       "contains subset matches",
			filter:     filter.Contains(a),
			components: []string{a.Name(), b.Name()},
			want:       true,
		},
		{
			name:       "contains missing component does not match",
			filter:     filter.Contains(a, c),
			components: []string{a.Name(), b.Name()},
			want:       false,
		},
		{
			name:       "exact same set matches",
			filter:     filter.Exact(a, b),
			components: []string{b.Name(), a.Name()},
			want:       true,
		},
		{
			name:       "exact superset does not match",
			filter:     filter.Exact(a),
			components: []string{a.Name(), b.Name()},
			want:       false,
		},
		{
			name:       "not inverts",
			filter:     filter.Not(filter.Contains(c)),
			components: []string{a.Name()},
			want:       true,
		},
		{
			name:       "and requires every filter",
			filter:     filter.And(filter.Contains(a), filter.Contains(b)),
			components: []string{a.Name()},
			want:       false,
		},
		{
			name:       "or requires any filter",
			filter:     filter.Or(filter.Contains(a), filter.Contains(c)),
			components: []string{c.Name()},
			want:       true,
		},
		{
			name:       "type tag helper",
			filter:     filter.Contains(filter.Component[testutils.ComponentA]()),
			components: []string{a.Name()},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.MatchesComponents(tt.components))
		})
	}
}

// TestFilterLawsExhaustive checks the boolean laws of the filter combinators
// against every pair of generated base filters and every component set an
// entity over three types could carry.
func TestFilterLawsExhaustive(t *testing.T) {
	t.Parallel()

	tags := []types.Component{testutils.ComponentA{}, testutils.ComponentB{}, testutils.ComponentC{}}

	// Every component-name set an entity could carry over these three types.
	var carried [][]string
	for mask := range 1 << len(tags) {
		var names []string
		for i, tag := range tags {
			if mask&(1<<i) != 0 {
				names = append(names, tag.Name())
			}
		}
		carried = append(carried, names)
	}

	checked := 0
	for g := testutils.NewGen(); !g.Done(); {
		f := genBaseFilter(g, tags)
		h := genBaseFilter(g, tags)

		for _, components := range carried {
			fm := f.MatchesComponents(components)
			hm := h.MatchesComponents(components)

			assert.Equal(t, fm, filter.Not(filter.Not(f)).MatchesComponents(components),
				"double negation changed the judgment for %v", components)
			assert.Equal(t, fm, filter.And(f, filter.All()).MatchesComponents(components),
				"All is not neutral for And on %v", components)
			assert.Equal(t, fm && hm, filter.And(f, h).MatchesComponents(components),
				"And is not the conjunction on %v", components)
			assert.Equal(t, fm || hm, filter.Or(f, h).MatchesComponents(components),
				"Or is not the disjunction on %v", components)
			assert.Equal(t, !(fm && hm),
				filter.Or(filter.Not(f), filter.Not(h)).MatchesComponents(components),
				"De Morgan failed on %v", components)
		}
		checked++
	}
	// 17 shapes per operand (All, plus Contains/Exact over each subset), two
	// operands per iteration.
	assert.Equal(t, 17*17, checked)
}

func genBaseFilter(g *testutils.Gen, tags []types.Component) filter.ComponentFilter {
	switch g.Intn(2) {
	case 0:
		return filter.All()
	case 1:
		return filter.Contains(genTagSubset(g, tags)...)
	default:
		return filter.Exact(genTagSubset(g, tags)...)
	}
}

func genTagSubset(g *testutils.Gen, tags []types.Component) []types.Component {
	var subset []types.Component
	for _, tag := range tags {
		if g.Bool() {
			subset = append(subset, tag)
		}
	}
	return subset
}
