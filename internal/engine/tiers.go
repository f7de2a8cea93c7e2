package engine

import "github.com/DoyleJ11/fracmatch/internal/fraction"

type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// MaxProblems caps the number of problems in a round.
const MaxProblems = 6

var baseFractions = map[Tier][]fraction.Fraction{
	TierEasy: {
		{Numerator: 1, Denominator: 2},
		{Numerator: 1, Denominator: 3},
		{Numerator: 2, Denominator: 3},
		{Numerator: 1, Denominator: 4},
		{Numerator: 3, Denominator: 4},
	},
	TierMedium: {
		{Numerator: 1, Denominator: 5},
		{Numerator: 2, Denominator: 5},
		{Numerator: 3, Denominator: 5},
		{Numerator: 4, Denominator: 5},
		{Numerator: 1, Denominator: 6},
		{Numerator: 5, Denominator: 6},
	},
	TierHard: {
		{Numerator: 1, Denominator: 8},
		{Numerator: 3, Denominator: 8},
		{Numerator: 5, Denominator: 8},
		{Numerator: 2, Denominator: 7},
		{Numerator: 3, Denominator: 7},
		{Numerator: 4, Denominator: 9},
	},
}

var Shapes = []fraction.Shape{fraction.ShapeCircle, fraction.ShapeBar}

var Palette = []string{"#34D399", "#60A5FA", "#FBBF24", "#F87171", "#A78BFA", "#EC4899"}

func TierForLevel(level int) Tier {
	switch {
	case level <= 2:
		return TierEasy
	case level <= 4:
		return TierMedium
	default:
		return TierHard
	}
}

// EntryLevel is the level a learner starts at when picking the tier.
func (t Tier) EntryLevel() int {
	switch t {
	case TierMedium:
		return 3
	case TierHard:
		return 5
	default:
		return 1
	}
}

func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierEasy, TierMedium, TierHard:
		return Tier(s), true
	default:
		return "", false
	}
}

// BaseFractions returns a copy of the tier's table.
func BaseFractions(t Tier) []fraction.Fraction {
	return append([]fraction.Fraction(nil), baseFractions[t]...)
}
