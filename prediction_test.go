package pais

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrediction_Validate(t *testing.T) {
	valid := Prediction{
		Strategy:     StrategyFrequency,
		StrategyName: "frequency",
		Numbers:      []int{4, 11, 17, 23, 29, 36},
		StrongNumber: 5,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Prediction)
	}{
		{"too few numbers", func(p *Prediction) { p.Numbers = p.Numbers[:5] }},
		{"out of range", func(p *Prediction) { p.Numbers[5] = 38 }},
		{"not ascending", func(p *Prediction) { p.Numbers[0], p.Numbers[1] = p.Numbers[1], p.Numbers[0] }},
		{"duplicate", func(p *Prediction) { p.Numbers[1] = p.Numbers[0] }},
		{"strong too large", func(p *Prediction) { p.StrongNumber = 8 }},
		{"strong too small", func(p *Prediction) { p.StrongNumber = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Numbers = append([]int(nil), valid.Numbers...)
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidRange)
		})
	}
}

func TestPrediction_SameNumbers(t *testing.T) {
	a := Prediction{Numbers: []int{1, 2, 3, 4, 5, 6}, StrongNumber: 1}
	b := Prediction{Numbers: []int{1, 2, 3, 4, 5, 6}, StrongNumber: 7}
	c := Prediction{Numbers: []int{1, 2, 3, 4, 5, 7}, StrongNumber: 1}

	assert.True(t, a.SameNumbers(&b), "the strong number does not participate")
	assert.False(t, a.SameNumbers(&c))
}
