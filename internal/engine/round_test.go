package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/fracmatch/internal/fraction"
)

func makeProblem(i int, numeric, visual fraction.Fraction) Problem {
	id := fmt.Sprintf("problem-%d", i)
	return Problem{
		ID:      id,
		Numeric: Item{ID: id + "-numeric", Kind: KindNumeric, Fraction: numeric},
		Visual: Item{
			ID:       id + "-visual",
			Kind:     KindVisual,
			Fraction: visual,
			Visual:   &fraction.Visual{Fraction: visual, Shape: fraction.ShapeCircle, Color: "#34D399"},
		},
	}
}

func threeProblems() []Problem {
	return []Problem{
		makeProblem(0, fraction.New(1, 2), fraction.New(2, 4)),
		makeProblem(1, fraction.New(1, 3), fraction.New(3, 9)),
		makeProblem(2, fraction.New(3, 4), fraction.New(6, 8)),
	}
}

// requireConserved checks every visual item sits in exactly one place.
func requireConserved(t *testing.T, r *Round) {
	t.Helper()
	where := map[string]int{}
	for _, it := range r.Source {
		where[it.ID]++
	}
	for _, occupant := range r.Slots {
		if occupant != nil {
			where[occupant.ID]++
		}
	}
	require.Len(t, where, len(r.Problems))
	for _, p := range r.Problems {
		require.Equal(t, 1, where[p.Visual.ID], "item %s", p.Visual.ID)
	}
	require.Equal(t, len(r.Problems), len(r.Source)+r.Placed())
}

func TestNewRound_AllItemsStartInSource(t *testing.T) {
	r := NewRound(threeProblems(), NewRand(1))

	assert.Len(t, r.Source, 3)
	assert.Len(t, r.Slots, 3)
	for _, p := range r.Problems {
		occupant, ok := r.Slots[p.Numeric.ID]
		assert.True(t, ok)
		assert.Nil(t, occupant)
	}
	assert.False(t, r.IsComplete())
	requireConserved(t, r)
}

func TestPlace_DisplacesPreviousOccupant(t *testing.T) {
	r := NewRound(threeProblems(), NewRand(1))
	requireConserved(t, r)

	_, moved := r.Place("problem-0-numeric", "problem-0-visual")
	require.True(t, moved)
	requireConserved(t, r)

	displaced, moved := r.Place("problem-0-numeric", "problem-1-visual")
	require.True(t, moved)
	require.NotNil(t, displaced)
	assert.Equal(t, "problem-0-visual", displaced.ID)
	requireConserved(t, r)

	occupant, ok := r.Occupant("problem-0-numeric")
	require.True(t, ok)
	assert.Equal(t, "problem-1-visual", occupant.ID)
	assert.Equal(t, "problem-0-visual", r.Source[len(r.Source)-1].ID, "displaced item is appended")
}

func TestPlace_IgnoresUnknownOrPlacedItems(t *testing.T) {
	cases := []struct {
		name   string
		target string
		item   string
	}{
		{name: "unknown item", target: "problem-0-numeric", item: "nope"},
		{name: "unknown target", target: "nope", item: "problem-1-visual"},
		{name: "item already in a slot", target: "problem-1-numeric", item: "problem-2-visual"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRound(threeProblems(), NewRand(2))
			_, moved := r.Place("problem-2-numeric", "problem-2-visual")
			require.True(t, moved)
			before := r.Clone()

			_, moved = r.Place(tc.target, tc.item)
			assert.False(t, moved)
			assert.Equal(t, before, r.Clone())
			requireConserved(t, r)
		})
	}
}

func TestReturnToSource(t *testing.T) {
	r := NewRound(threeProblems(), NewRand(3))
	r.Place("problem-1-numeric", "problem-0-visual")
	require.Len(t, r.Source, 2)

	target, ok := r.ReturnToSource("problem-0-visual")
	require.True(t, ok)
	assert.Equal(t, "problem-1-numeric", target)
	assert.Nil(t, r.Slots["problem-1-numeric"])
	assert.Len(t, r.Source, 3)
	requireConserved(t, r)

	// A second return finds the item in the pool and must not duplicate it.
	_, ok = r.ReturnToSource("problem-0-visual")
	assert.False(t, ok)
	assert.Len(t, r.Source, 3)
	requireConserved(t, r)
}

func TestIsCompleteAndCheck(t *testing.T) {
	r := NewRound(threeProblems(), NewRand(4))
	r.Place("problem-0-numeric", "problem-0-visual")
	r.Place("problem-1-numeric", "problem-2-visual")
	assert.False(t, r.IsComplete())

	r.Place("problem-2-numeric", "problem-1-visual")
	assert.True(t, r.IsComplete())
	assert.Empty(t, r.Source)

	correct, total := r.Check()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 3, total)
}

func TestCheck_EmptySlotIsNotCorrect(t *testing.T) {
	r := NewRound([]Problem{makeProblem(0, fraction.New(0, 5), fraction.New(0, 10))}, NewRand(5))
	correct, total := r.Check()
	assert.Equal(t, 0, correct)
	assert.Equal(t, 1, total)
}

func TestClone_IsIndependent(t *testing.T) {
	r := NewRound(threeProblems(), NewRand(6))
	r.Place("problem-0-numeric", "problem-0-visual")

	c := r.Clone()
	r.ReturnToSource("problem-0-visual")
	r.Problems[0].Visual.Visual.Color = "#000000"

	occupant, ok := c.Occupant("problem-0-numeric")
	require.True(t, ok)
	assert.Equal(t, "problem-0-visual", occupant.ID)
	assert.Equal(t, "#34D399", c.Problems[0].Visual.Visual.Color)
}
