package pais

// Prediction is one candidate future draw produced by a strategy. Value
// type: created by a strategy, consumed by the assembler and presentation
// layers, no further lifecycle.
type Prediction struct {
	Strategy     StrategyKind `json:"-"`
	StrategyName string       `json:"strategy"`
	Numbers      []int        `json:"numbers"`       // Exactly 6 distinct numbers in [1,37], ascending
	StrongNumber int          `json:"strong_number"` // In [1,7]
}

// Validate checks the shared post-condition of every strategy: exactly 6
// distinct ascending main numbers in [1,37] and one strong number in [1,7]
func (p *Prediction) Validate() error {
	if len(p.Numbers) != MainNumbersPerDraw {
		return ErrInvalidRange.WithDetails("prediction must contain exactly 6 numbers")
	}

	prev := 0
	for _, n := range p.Numbers {
		if n < MainNumberMin || n > MainNumberMax {
			return ErrInvalidRange.WithDetails("predicted number out of range [1,37]")
		}
		if n <= prev {
			return ErrInvalidRange.WithDetails("predicted numbers must be distinct and ascending")
		}
		prev = n
	}

	if p.StrongNumber < StrongNumberMin || p.StrongNumber > StrongNumberMax {
		return ErrInvalidRange.WithDetails("predicted strong number out of range [1,7]")
	}

	return nil
}

// SameNumbers reports whether two predictions share an identical main
// number set. Both sides are kept ascending, so positional comparison works.
func (p *Prediction) SameNumbers(other *Prediction) bool {
	if len(p.Numbers) != len(other.Numbers) {
		return false
	}
	for i, n := range p.Numbers {
		if n != other.Numbers[i] {
			return false
		}
	}
	return true
}
