package pais

import (
	"math"
	"sort"
)

// Supplementary heuristics. These are selectable by explicit request and do
// not participate in the default strategy cycle.

// applyRecentTrends takes the six hottest numbers over the trailing draws
func applyRecentTrends(an *Analysis) ([]int, error) {
	ranked := rankStats(an.RecentMainStats, func(a, b NumberStatistic) bool {
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.GapSinceLastSeen < b.GapSinceLastSeen
	})
	if len(ranked) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 recent-trend candidates")
	}
	return append([]int(nil), ranked[:MainNumbersPerDraw]...), nil
}

// applyPairs accumulates numbers from the most frequent co-occurring pairs,
// extending from the hot ranking when the leading pairs yield fewer than six
// distinct numbers
func applyPairs(an *Analysis) ([]int, error) {
	type pairCount struct {
		pair  [2]int
		count int
	}

	pairs := make([]pairCount, 0, len(an.PairCounts))
	for pair, count := range an.PairCounts {
		pairs = append(pairs, pairCount{pair: pair, count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		if pairs[i].pair[0] != pairs[j].pair[0] {
			return pairs[i].pair[0] < pairs[j].pair[0]
		}
		return pairs[i].pair[1] < pairs[j].pair[1]
	})
	if len(pairs) > TopPairCount {
		pairs = pairs[:TopPairCount]
	}

	selected := make([]int, 0, MainNumbersPerDraw)
	chosen := make(map[int]bool, MainNumbersPerDraw)
	add := func(n int) {
		if len(selected) < MainNumbersPerDraw && !chosen[n] {
			selected = append(selected, n)
			chosen[n] = true
		}
	}

	for _, pc := range pairs {
		add(pc.pair[0])
		add(pc.pair[1])
		if len(selected) == MainNumbersPerDraw {
			break
		}
	}

	for _, n := range an.HotNumbers(MainNumberMax) {
		if len(selected) == MainNumbersPerDraw {
			break
		}
		add(n)
	}

	if len(selected) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 pair candidates")
	}
	return selected, nil
}

// applySum samples uniform distinct sets targeting the historical mean draw
// sum within ±10%. After the retry budget the last sample is kept unchanged.
func applySum(an *Analysis, rng RNG) ([]int, error) {
	targetSum := int(math.Round(an.MeanSum))
	minSum := targetSum - targetSum/10
	maxSum := targetSum + targetSum/10

	var numbers []int
	for attempt := 0; attempt < SumRetryBudget; attempt++ {
		numbers = uniformSample(rng)
		sum := 0
		for _, n := range numbers {
			sum += n
		}
		if sum >= minSum && sum <= maxSum {
			break
		}
	}
	return numbers, nil
}

// uniformSample draws 6 distinct numbers uniformly from the main domain
func uniformSample(rng RNG) []int {
	domain := make([]int, MainNumberMax-MainNumberMin+1)
	for i := range domain {
		domain[i] = MainNumberMin + i
	}

	numbers := make([]int, 0, MainNumbersPerDraw)
	for len(numbers) < MainNumbersPerDraw {
		idx := rng.Intn(len(domain))
		numbers = append(numbers, domain[idx])
		domain = append(domain[:idx], domain[idx+1:]...)
	}
	return numbers
}

// applyOddEven mixes the top three odd and top three even numbers by
// frequency
func applyOddEven(an *Analysis) ([]int, error) {
	hotRank := an.HotNumbers(MainNumberMax)

	selected := make([]int, 0, MainNumbersPerDraw)
	oddCount, evenCount := 0, 0
	for _, n := range hotRank {
		if n%2 == 1 && oddCount < 3 {
			selected = append(selected, n)
			oddCount++
		} else if n%2 == 0 && evenCount < 3 {
			selected = append(selected, n)
			evenCount++
		}
		if len(selected) == MainNumbersPerDraw {
			break
		}
	}

	if len(selected) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 odd/even candidates")
	}
	return selected, nil
}

// spreadSegments are the sextile segments of the main domain
var spreadSegments = [MainNumbersPerDraw][2]int{
	{1, 6}, {7, 12}, {13, 18}, {19, 24}, {25, 30}, {31, 37},
}

// applySpread picks the most frequent number of each segment so the set
// covers the whole range without clustering
func applySpread(an *Analysis) ([]int, error) {
	selected := make([]int, 0, MainNumbersPerDraw)
	for _, segment := range spreadSegments {
		best := segment[0]
		bestFreq := -1
		for n := segment[0]; n <= segment[1]; n++ {
			if stat := an.MainStats[n]; stat.Frequency > bestFreq {
				best = n
				bestFreq = stat.Frequency
			}
		}
		selected = append(selected, best)
	}
	return selected, nil
}
