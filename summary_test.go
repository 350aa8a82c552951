package pais

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	draws := []DrawRecord{
		testDraw(100, []int{1, 2, 3, 4, 5, 6}, 3),
		testDraw(101, []int{1, 2, 3, 10, 11, 12}, 3),
		testDraw(102, []int{1, 2, 20, 21, 22, 23}, 5),
	}
	an := analyzeFixture(t, draws, 0)

	summary := Summarize(an)
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.TotalDraws)
	assert.Equal(t, []int{1, 2, 3}, summary.HotNumbers[:3])
	assert.Len(t, summary.ColdNumbers, MainNumbersPerDraw)
	assert.Len(t, summary.OverdueNumbers, MainNumbersPerDraw)

	assert.Equal(t, 3, summary.MainFrequencies[1])
	assert.Equal(t, 1, summary.MainFrequencies[10])
	assert.Equal(t, 0, summary.MainFrequencies[37])
	assert.Equal(t, 2, summary.StrongFrequencies[3])

	assert.Equal(t, 1, summary.MostCommonMain)
	assert.Equal(t, 7, summary.LeastCommonMain, "ties at zero resolve to the smallest unseen number")
	assert.Equal(t, 3, summary.MostCommonStrong)
	assert.Equal(t, 1, summary.LeastCommonStrong)
}
