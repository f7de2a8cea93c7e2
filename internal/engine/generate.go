package engine

import (
	"fmt"
	"math/rand"

	"github.com/DoyleJ11/fracmatch/internal/fraction"
)

func ProblemCount(level int) int {
	return min(2+clampLevel(level)/2, MaxProblems)
}

// Generate builds the problems for a level. Each visual fraction is the numeric
// fraction scaled by a multiplier drawn from [2, level+2].
func Generate(level int, rng *rand.Rand) []Problem {
	level = clampLevel(level)
	table := BaseFractions(TierForLevel(level))
	rng.Shuffle(len(table), func(i, j int) { table[i], table[j] = table[j], table[i] })

	count := ProblemCount(level)
	problems := make([]Problem, 0, count)
	for i := 0; i < count; i++ {
		base := table[i%len(table)]
		multiplier := 2 + rng.Intn(level+1)
		equivalent := base.Scale(multiplier)

		id := fmt.Sprintf("problem-%d", i)
		problems = append(problems, Problem{
			ID: id,
			Numeric: Item{
				ID:       id + "-numeric",
				Kind:     KindNumeric,
				Fraction: base,
			},
			Visual: Item{
				ID:       id + "-visual",
				Kind:     KindVisual,
				Fraction: equivalent,
				Visual: &fraction.Visual{
					Fraction: equivalent,
					Shape:    Shapes[i%len(Shapes)],
					Color:    Palette[i%len(Palette)],
				},
			},
		})
	}
	return problems
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}
