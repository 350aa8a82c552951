package pais

import (
	"math"
	"sort"
)

// StrategyKind identifies one selection heuristic. The set is closed:
// strategies are dispatched through Apply rather than a type hierarchy.
type StrategyKind int

const (
	// StrategyFrequency takes the six hottest numbers
	StrategyFrequency StrategyKind = iota

	// StrategyBalanced mixes the top three hot and bottom three cold numbers
	StrategyBalanced

	// StrategyOverdue takes the six numbers with the largest gaps
	StrategyOverdue

	// StrategyPattern samples by frequency under even/low count constraints
	StrategyPattern

	// StrategyAverage takes the six numbers closest to the mean frequency
	StrategyAverage

	// StrategyRecentTrends takes the hottest numbers of the trailing draws
	StrategyRecentTrends

	// StrategyPairs builds a set from the most frequent co-occurring pairs
	StrategyPairs

	// StrategySum samples toward the historical mean draw sum
	StrategySum

	// StrategyOddEven mixes the top three odd and top three even numbers
	StrategyOddEven

	// StrategySpread picks the hottest number of each sextile segment
	StrategySpread
)

// DefaultStrategies is the fixed invocation order used when no explicit
// strategy list is requested
var DefaultStrategies = []StrategyKind{
	StrategyFrequency,
	StrategyBalanced,
	StrategyOverdue,
	StrategyPattern,
	StrategyAverage,
}

var strategyNames = map[StrategyKind]string{
	StrategyFrequency:    "frequency",
	StrategyBalanced:     "balanced",
	StrategyOverdue:      "overdue",
	StrategyPattern:      "pattern",
	StrategyAverage:      "average",
	StrategyRecentTrends: "recent-trends",
	StrategyPairs:        "pairs",
	StrategySum:          "sum",
	StrategyOddEven:      "odd-even",
	StrategySpread:       "spread",
}

// String returns the strategy identifier used to label predictions
func (k StrategyKind) String() string {
	if name, ok := strategyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Apply runs one strategy as a pure function of the analysis and the random
// source and returns a single prediction. Every strategy shares the same
// post-condition: exactly 6 distinct main numbers in [1,37], ascending, and
// one strong number in [1,7].
func Apply(kind StrategyKind, an *Analysis, rng RNG) (Prediction, error) {
	if an == nil {
		return Prediction{}, ErrInvalidParameters.WithDetails("nil analysis")
	}

	var (
		numbers []int
		err     error
	)

	switch kind {
	case StrategyFrequency:
		numbers, err = applyFrequency(an)
	case StrategyBalanced:
		numbers, err = applyBalanced(an)
	case StrategyOverdue:
		numbers, err = applyOverdue(an)
	case StrategyPattern:
		numbers, err = applyPattern(an, rng)
	case StrategyAverage:
		numbers, err = applyAverage(an)
	case StrategyRecentTrends:
		numbers, err = applyRecentTrends(an)
	case StrategyPairs:
		numbers, err = applyPairs(an)
	case StrategySum:
		numbers, err = applySum(an, rng)
	case StrategyOddEven:
		numbers, err = applyOddEven(an)
	case StrategySpread:
		numbers, err = applySpread(an)
	default:
		return Prediction{}, ErrUnknownStrategy.WithMetadata("kind", int(kind))
	}
	if err != nil {
		return Prediction{}, err
	}

	strong, err := pickStrongNumber(an, rng)
	if err != nil {
		return Prediction{}, err
	}

	sort.Ints(numbers)
	prediction := Prediction{
		Strategy:     kind,
		StrategyName: kind.String(),
		Numbers:      numbers,
		StrongNumber: strong,
	}
	if err := prediction.Validate(); err != nil {
		return Prediction{}, err
	}

	return prediction, nil
}

// applyFrequency takes the top 6 hot numbers, fully deterministic
func applyFrequency(an *Analysis) ([]int, error) {
	hot := an.HotNumbers(MainNumbersPerDraw)
	if len(hot) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 hot candidates")
	}
	return append([]int(nil), hot...), nil
}

// applyBalanced mixes the top 3 hot and bottom 3 cold numbers. When the two
// sets overlap, the selection extends alternately from the next-ranked hot
// and cold candidates until 6 distinct numbers are reached.
func applyBalanced(an *Analysis) ([]int, error) {
	hotRank := an.HotNumbers(MainNumberMax)
	coldRank := an.ColdNumbers(MainNumberMax)

	selected := make([]int, 0, MainNumbersPerDraw)
	chosen := make(map[int]bool, MainNumbersPerDraw)
	add := func(n int) {
		if len(selected) < MainNumbersPerDraw && !chosen[n] {
			selected = append(selected, n)
			chosen[n] = true
		}
	}

	for i := 0; i < 3 && i < len(hotRank); i++ {
		add(hotRank[i])
	}
	for i := 0; i < 3 && i < len(coldRank); i++ {
		add(coldRank[i])
	}

	for i := 3; len(selected) < MainNumbersPerDraw && (i < len(hotRank) || i < len(coldRank)); i++ {
		if i < len(hotRank) {
			add(hotRank[i])
		}
		if i < len(coldRank) {
			add(coldRank[i])
		}
	}

	if len(selected) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 balanced candidates")
	}
	return selected, nil
}

// applyOverdue takes the top 6 numbers by gap since last seen
func applyOverdue(an *Analysis) ([]int, error) {
	overdue := an.OverdueNumbers()
	if len(overdue) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 overdue candidates")
	}
	return append([]int(nil), overdue[:MainNumbersPerDraw]...), nil
}

// applyPattern performs weighted sampling without replacement from the full
// domain, weighted by frequency, rejecting attempts that overshoot the
// historical even-count or low-count targets by more than 1. After the retry
// budget is exhausted it falls back to an unconstrained weighted sample.
func applyPattern(an *Analysis, rng RNG) ([]int, error) {
	entries := buildWeighted(an.MainStats, 0)
	if len(entries) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 weighted candidates")
	}

	targetEven := int(math.Round(an.MeanEvenCount))
	targetLow := int(math.Round(an.MeanLowCount))

	for attempt := 0; attempt < PatternRetryBudget; attempt++ {
		if numbers, ok := constrainedSample(entries, targetEven, targetLow, rng); ok {
			return numbers, nil
		}
	}

	return sampleWithoutReplacement(entries, MainNumbersPerDraw, rng)
}

// constrainedSample draws 6 numbers weighted by frequency, failing as soon
// as the partial draw overshoots either target by more than 1
func constrainedSample(entries []weightedEntry, targetEven, targetLow int, rng RNG) ([]int, bool) {
	pool := cloneWeighted(entries)
	numbers := make([]int, 0, MainNumbersPerDraw)
	evenCount, lowCount := 0, 0

	for len(numbers) < MainNumbersPerDraw {
		if len(pool) == 0 {
			return nil, false
		}

		n := takeWeighted(&pool, rng)
		if n%2 == 0 {
			evenCount++
		}
		if n <= LowNumberMax {
			lowCount++
		}
		if evenCount > targetEven+1 || lowCount > targetLow+1 {
			return nil, false
		}
		numbers = append(numbers, n)
	}

	return numbers, true
}

// applyAverage selects the 6 numbers whose frequency is closest to the mean
// frequency across the whole main domain
func applyAverage(an *Analysis) ([]int, error) {
	total := 0
	for _, stat := range an.MainStats {
		total += stat.Frequency
	}
	mean := float64(total) / float64(len(an.MainStats))

	closest := rankStats(an.MainStats, func(a, b NumberStatistic) bool {
		da := math.Abs(float64(a.Frequency) - mean)
		db := math.Abs(float64(b.Frequency) - mean)
		return da < db
	})
	if len(closest) < MainNumbersPerDraw {
		return nil, ErrInvalidRange.WithDetails("fewer than 6 average candidates")
	}

	return append([]int(nil), closest[:MainNumbersPerDraw]...), nil
}

// pickStrongNumber draws the strong number weighted by its frequency.
// Numbers never observed receive a minimum weight of 1 so every strong
// number stays reachable.
func pickStrongNumber(an *Analysis, rng RNG) (int, error) {
	entries := buildWeighted(an.StrongStats, 1)
	if len(entries) == 0 {
		return 0, ErrInvalidRange.WithDetails("empty strong number statistics")
	}

	pool := cloneWeighted(entries)
	return takeWeighted(&pool, rng), nil
}

// weightedEntry is one candidate number with its sampling weight and the
// running cumulative weight up through this entry
type weightedEntry struct {
	number     int
	weight     int
	cumulative int
}

// buildWeighted turns a statistics mapping into a cumulative-weight slice
// ordered by number, so that sampling is deterministic under a fixed RNG.
// Entries with frequency below minWeight are raised to minWeight; entries
// that end up non-positive are dropped.
func buildWeighted(stats map[int]NumberStatistic, minWeight int) []weightedEntry {
	numbers := make([]int, 0, len(stats))
	for n := range stats {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	entries := make([]weightedEntry, 0, len(numbers))
	total := 0
	for _, n := range numbers {
		weight := stats[n].Frequency
		if weight < minWeight {
			weight = minWeight
		}
		if weight <= 0 {
			continue
		}
		total += weight
		entries = append(entries, weightedEntry{number: n, weight: weight, cumulative: total})
	}
	return entries
}

func cloneWeighted(entries []weightedEntry) []weightedEntry {
	clone := make([]weightedEntry, len(entries))
	copy(clone, entries)
	return clone
}

// takeWeighted removes and returns one weighted pick from the pool,
// adjusting the cumulative weights of the remaining entries
func takeWeighted(pool *[]weightedEntry, rng RNG) int {
	entries := *pool
	totalWeight := entries[len(entries)-1].cumulative

	r := rng.Intn(totalWeight)
	pick := sort.Search(len(entries), func(i int) bool {
		return entries[i].cumulative > r
	})

	picked := entries[pick]
	entries = append(entries[:pick], entries[pick+1:]...)
	for i := pick; i < len(entries); i++ {
		entries[i].cumulative -= picked.weight
	}

	*pool = entries
	return picked.number
}

// sampleWithoutReplacement draws count distinct numbers from the weighted
// pool with no further constraints
func sampleWithoutReplacement(entries []weightedEntry, count int, rng RNG) ([]int, error) {
	if len(entries) < count {
		return nil, ErrInvalidRange.WithDetails("weighted pool smaller than requested count")
	}

	pool := cloneWeighted(entries)
	numbers := make([]int, 0, count)
	for len(numbers) < count {
		numbers = append(numbers, takeWeighted(&pool, rng))
	}
	return numbers, nil
}
