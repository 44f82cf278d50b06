package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scored builds a route carrying only totals; with no targets it counts as complete.
func scored(index, hits int, overkill float64) *Route {
	return &Route{Index: index, TotalHits: hits, TotalOverkill: overkill}
}

// incomplete builds a route whose single target was left unreachable.
func incomplete(index, hits int, overkill float64) *Route {
	r := scored(index, hits, overkill)
	r.Targets = []*TargetState{{Name: "X", Status: StatusUnreachable}}
	return r
}

func TestOutranks(t *testing.T) {
	const tol = 1.05
	tests := []struct {
		name string
		a, b *Route
		want bool
	}{
		{"complete beats incomplete regardless of score", scored(0, 9, 900), incomplete(1, 1, 0), true},
		{"incomplete never beats complete", incomplete(0, 1, 0), scored(1, 9, 900), false},
		{"fewer hits win within tolerance", scored(0, 3, 100), scored(1, 4, 98), true},
		{"fewer hits lose past tolerance", scored(0, 3, 100), scored(1, 4, 90), false},
		{"more hits win when the other is past tolerance", scored(0, 4, 90), scored(1, 3, 100), true},
		{"more hits lose within tolerance", scored(0, 4, 98), scored(1, 3, 100), false},
		{"equal hits lower overkill wins", scored(0, 3, 10), scored(1, 3, 11), true},
		{"equal hits equal overkill does not outrank", scored(0, 3, 10), scored(1, 3, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outranks(tt.a, tt.b, tol))
		})
	}
}

func TestSelectBest_RanksAndDeduplicates(t *testing.T) {
	// GIVEN routes with a duplicate signature and an incomplete route
	routes := []*Route{
		incomplete(0, 1, 0),
		scored(1, 4, 20),
		scored(2, 3, 5),
		scored(3, 3, 5),
		scored(4, 3, 7),
	}

	// WHEN selected
	ranked := SelectBest(routes, 1.05)

	// THEN best-first, first of each signature kept, ranks from 1
	require.Len(t, ranked, 4)
	assert.Equal(t, []int{2, 4, 1, 0}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index, ranked[3].Index})
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}
	// input order untouched
	assert.Equal(t, 0, routes[0].Index)
	assert.Equal(t, 4, routes[4].Index)
}

func TestSelectBest_Empty(t *testing.T) {
	assert.Empty(t, SelectBest(nil, 1.05))
}

func TestPlanResult_Top(t *testing.T) {
	ranked := []*Route{scored(0, 1, 0), scored(1, 1, 1), scored(2, 1, 2)}
	res := NewPlanResult(ranked, 3, nil, nil, 0)

	assert.Same(t, ranked[0], res.Best())
	assert.Len(t, res.Top(0), 1)
	assert.Len(t, res.Top(1), 2)
	assert.Len(t, res.Top(10), 3)
	assert.Len(t, res.Top(-1), 1)
	assert.Nil(t, NewPlanResult(nil, 0, nil, nil, 0).Best())
}
