package engine

import (
	"math/rand"
	"slices"

	"github.com/DoyleJ11/fracmatch/internal/fraction"
)

// Round is one playable instance of a level. Every visual item is either in
// Source or in exactly one slot. Slot keys are the numeric item ids and never
// change for the lifetime of the round.
type Round struct {
	Problems []Problem        `json:"problems"`
	Source   []Item           `json:"source"`
	Slots    map[string]*Item `json:"slots"`
}

func NewRound(problems []Problem, rng *rand.Rand) *Round {
	r := &Round{
		Problems: problems,
		Source:   make([]Item, 0, len(problems)),
		Slots:    make(map[string]*Item, len(problems)),
	}
	for _, p := range problems {
		r.Source = append(r.Source, p.Visual.clone())
		r.Slots[p.Numeric.ID] = nil
	}
	rng.Shuffle(len(r.Source), func(i, j int) { r.Source[i], r.Source[j] = r.Source[j], r.Source[i] })
	return r
}

// Place moves itemID from the source pool into targetID's slot. A previous
// occupant goes back to the end of the source pool. It reports whether
// anything moved; unknown targets and items not in the pool are ignored.
func (r *Round) Place(targetID, itemID string) (displaced *Item, moved bool) {
	if _, ok := r.Slots[targetID]; !ok {
		return nil, false
	}
	idx := slices.IndexFunc(r.Source, func(it Item) bool { return it.ID == itemID })
	if idx < 0 {
		return nil, false
	}

	item := r.Source[idx]
	r.Source = slices.Delete(r.Source, idx, idx+1)

	if prev := r.Slots[targetID]; prev != nil {
		r.Source = append(r.Source, *prev)
		displaced = prev
	}
	r.Slots[targetID] = &item
	return displaced, true
}

// ReturnToSource empties the slot holding itemID and appends the item to the
// source pool. It returns the slot it was taken from.
func (r *Round) ReturnToSource(itemID string) (string, bool) {
	for target, occupant := range r.Slots {
		if occupant != nil && occupant.ID == itemID {
			r.Slots[target] = nil
			r.Source = append(r.Source, *occupant)
			return target, true
		}
	}
	return "", false
}

func (r *Round) IsComplete() bool {
	for _, occupant := range r.Slots {
		if occupant == nil {
			return false
		}
	}
	return true
}

func (r *Round) Occupant(targetID string) (Item, bool) {
	occupant := r.Slots[targetID]
	if occupant == nil {
		return Item{}, false
	}
	return *occupant, true
}

// Check counts the problems whose slot holds an equivalent fraction.
func (r *Round) Check() (correct, total int) {
	for _, p := range r.Problems {
		if occupant, ok := r.Occupant(p.Numeric.ID); ok && fraction.Equivalent(p.Numeric.Fraction, occupant.Fraction) {
			correct++
		}
	}
	return correct, len(r.Problems)
}

// Placed is the number of occupied slots.
func (r *Round) Placed() int {
	n := 0
	for _, occupant := range r.Slots {
		if occupant != nil {
			n++
		}
	}
	return n
}

func (r *Round) Clone() Round {
	out := Round{
		Problems: make([]Problem, len(r.Problems)),
		Source:   make([]Item, len(r.Source)),
		Slots:    make(map[string]*Item, len(r.Slots)),
	}
	for i, p := range r.Problems {
		out.Problems[i] = Problem{ID: p.ID, Numeric: p.Numeric.clone(), Visual: p.Visual.clone()}
	}
	for i, it := range r.Source {
		out.Source[i] = it.clone()
	}
	for target, occupant := range r.Slots {
		if occupant == nil {
			out.Slots[target] = nil
			continue
		}
		c := occupant.clone()
		out.Slots[target] = &c
	}
	return out
}
