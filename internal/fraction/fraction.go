package fraction

import "fmt"

type Fraction struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

func New(numerator, denominator int) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

// Scale multiplies both terms by m. The result is never reduced.
func (f Fraction) Scale(m int) Fraction {
	return Fraction{Numerator: f.Numerator * m, Denominator: f.Denominator * m}
}

func (f Fraction) Valid() bool {
	return f.Numerator >= 0 && f.Denominator > 0
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Equivalent reports whether a and b denote the same rational value.
// A zero denominator on either side is never equivalent to anything.
func Equivalent(a, b Fraction) bool {
	if a.Denominator == 0 || b.Denominator == 0 {
		return false
	}
	return a.Numerator*b.Denominator == a.Denominator*b.Numerator
}

type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeBar    Shape = "bar"
)

func ParseShape(s string) (Shape, bool) {
	switch s {
	case "circle":
		return ShapeCircle, true
	case "bar":
		return ShapeBar, true
	default:
		return "", false
	}
}

// Visual describes how a fraction is drawn. Shape and color are cosmetic.
type Visual struct {
	Fraction
	Shape Shape  `json:"shape"`
	Color string `json:"color"`
}
