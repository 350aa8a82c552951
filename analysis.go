package pais

import "sort"

// NumberStatistic holds the derived statistics of a single number within its
// domain. Recomputed per request, never persisted.
type NumberStatistic struct {
	Number           int `json:"number"`
	Frequency        int `json:"frequency"`           // Occurrences across the analyzed window
	GapSinceLastSeen int `json:"gap_since_last_seen"` // Draws since last seen; window size if never seen
}

// Analysis is the output of one analyzer pass over a window of draws. All
// fields are derived from the window alone, so strategies stay pure
// functions of (Analysis, RNG).
type Analysis struct {
	MainStats   map[int]NumberStatistic // Keyed 1..37
	StrongStats map[int]NumberStatistic // Keyed 1..7

	WindowSize int // Number of draws actually analyzed

	MeanEvenCount float64 // Mean even main numbers per draw
	MeanLowCount  float64 // Mean main numbers <= LowNumberMax per draw
	MeanSum       float64 // Mean sum of main numbers per draw

	PairCounts map[[2]int]int // Co-occurrence counts of main number pairs (a < b)

	RecentMainStats map[int]NumberStatistic // Stats over the trailing RecentTrendWindow draws
}

// Analyzer computes per-number statistics over an ordered draw history
type Analyzer struct {
	logger Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{logger: &DefaultLogger{}}
}

// NewAnalyzerWithLogger creates a new analyzer with a custom logger
func NewAnalyzerWithLogger(logger Logger) *Analyzer {
	if logger == nil {
		logger = &DefaultLogger{}
	}
	return &Analyzer{logger: logger}
}

// Analyze computes statistics over the most recent `window` draws. The draws
// must be ordered ascending by draw number. A window of zero (or one larger
// than the history) means the full history.
func (a *Analyzer) Analyze(draws []DrawRecord, window int) (*Analysis, error) {
	if len(draws) == 0 {
		a.logger.Error("Analyze failed: empty draw history")
		return nil, ErrInsufficientData
	}

	if window <= 0 || window > len(draws) {
		window = len(draws)
	}
	windowed := draws[len(draws)-window:]

	a.logger.Debug("Analyze called: history=%d, window=%d", len(draws), window)

	an := &Analysis{
		MainStats:       make(map[int]NumberStatistic, MainNumberMax),
		StrongStats:     make(map[int]NumberStatistic, StrongNumberMax),
		WindowSize:      window,
		PairCounts:      make(map[[2]int]int),
		RecentMainStats: make(map[int]NumberStatistic, MainNumberMax),
	}

	// A gap equal to the window size signals "never observed" without a
	// sentinel value.
	for n := MainNumberMin; n <= MainNumberMax; n++ {
		an.MainStats[n] = NumberStatistic{Number: n, GapSinceLastSeen: window}
	}
	for n := StrongNumberMin; n <= StrongNumberMax; n++ {
		an.StrongStats[n] = NumberStatistic{Number: n, GapSinceLastSeen: window}
	}

	var evenTotal, lowTotal, sumTotal int
	for _, draw := range windowed {
		for _, n := range draw.MainNumbers {
			stat := an.MainStats[n]
			stat.Frequency++
			an.MainStats[n] = stat

			if n%2 == 0 {
				evenTotal++
			}
			if n <= LowNumberMax {
				lowTotal++
			}
			sumTotal += n
		}

		strong := an.StrongStats[draw.StrongNumber]
		strong.Frequency++
		an.StrongStats[draw.StrongNumber] = strong

		countPairs(an.PairCounts, draw.MainNumbers)
	}

	// Gaps count backward from the most recent draw; 0 means present in it.
	for idx := range windowed {
		draw := windowed[len(windowed)-1-idx]
		for _, n := range draw.MainNumbers {
			if stat := an.MainStats[n]; stat.GapSinceLastSeen == window && stat.Frequency > 0 {
				stat.GapSinceLastSeen = idx
				an.MainStats[n] = stat
			}
		}
		if stat := an.StrongStats[draw.StrongNumber]; stat.GapSinceLastSeen == window && stat.Frequency > 0 {
			stat.GapSinceLastSeen = idx
			an.StrongStats[draw.StrongNumber] = stat
		}
	}

	an.MeanEvenCount = float64(evenTotal) / float64(window)
	an.MeanLowCount = float64(lowTotal) / float64(window)
	an.MeanSum = float64(sumTotal) / float64(window)

	a.analyzeRecent(windowed, an)

	return an, nil
}

// analyzeRecent fills the trailing-draws statistics used by the
// recent-trends strategy
func (a *Analyzer) analyzeRecent(windowed []DrawRecord, an *Analysis) {
	recent := windowed
	if len(recent) > RecentTrendWindow {
		recent = recent[len(recent)-RecentTrendWindow:]
	}

	for n := MainNumberMin; n <= MainNumberMax; n++ {
		an.RecentMainStats[n] = NumberStatistic{Number: n, GapSinceLastSeen: len(recent)}
	}
	for _, draw := range recent {
		for _, n := range draw.MainNumbers {
			stat := an.RecentMainStats[n]
			stat.Frequency++
			an.RecentMainStats[n] = stat
		}
	}
	for idx := range recent {
		draw := recent[len(recent)-1-idx]
		for _, n := range draw.MainNumbers {
			if stat := an.RecentMainStats[n]; stat.GapSinceLastSeen == len(recent) && stat.Frequency > 0 {
				stat.GapSinceLastSeen = idx
				an.RecentMainStats[n] = stat
			}
		}
	}
}

// countPairs accumulates co-occurrence counts for every pair in one draw
func countPairs(counts map[[2]int]int, numbers []int) {
	for i := 0; i < len(numbers); i++ {
		for j := i + 1; j < len(numbers); j++ {
			a, b := numbers[i], numbers[j]
			if a > b {
				a, b = b, a
			}
			counts[[2]int{a, b}]++
		}
	}
}

// rankStats orders a statistics mapping with an explicit comparison, always
// breaking final ties by numeric value ascending for determinism
func rankStats(stats map[int]NumberStatistic, less func(a, b NumberStatistic) bool) []int {
	ordered := make([]NumberStatistic, 0, len(stats))
	for _, stat := range stats {
		ordered = append(ordered, stat)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.Number < b.Number
	})

	numbers := make([]int, len(ordered))
	for i, stat := range ordered {
		numbers[i] = stat.Number
	}
	return numbers
}

// HotNumbers returns the top k main numbers by frequency descending, ties
// broken by smaller gap (more recently seen), then numeric value ascending
func (an *Analysis) HotNumbers(k int) []int {
	ranked := rankStats(an.MainStats, func(a, b NumberStatistic) bool {
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.GapSinceLastSeen < b.GapSinceLastSeen
	})
	return clampRank(ranked, k)
}

// ColdNumbers returns the bottom k main numbers by frequency ascending, ties
// broken by larger gap (not recently seen first), then numeric value ascending
func (an *Analysis) ColdNumbers(k int) []int {
	ranked := rankStats(an.MainStats, func(a, b NumberStatistic) bool {
		if a.Frequency != b.Frequency {
			return a.Frequency < b.Frequency
		}
		return a.GapSinceLastSeen > b.GapSinceLastSeen
	})
	return clampRank(ranked, k)
}

// OverdueNumbers returns all main numbers ordered by gap descending, ties
// broken by numeric value ascending
func (an *Analysis) OverdueNumbers() []int {
	return rankStats(an.MainStats, func(a, b NumberStatistic) bool {
		return a.GapSinceLastSeen > b.GapSinceLastSeen
	})
}

func clampRank(ranked []int, k int) []int {
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
