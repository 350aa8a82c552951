package pais

// Summary is a presentation-friendly digest of one analysis pass
type Summary struct {
	TotalDraws int `json:"total_draws"`

	HotNumbers     []int `json:"hot_numbers"`     // Top 6 by frequency
	ColdNumbers    []int `json:"cold_numbers"`    // Bottom 6 by frequency
	OverdueNumbers []int `json:"overdue_numbers"` // Top 6 by gap

	MainFrequencies   map[int]int `json:"main_frequencies"`
	StrongFrequencies map[int]int `json:"strong_frequencies"`

	MostCommonMain    int `json:"most_common_main"`
	LeastCommonMain   int `json:"least_common_main"`
	MostCommonStrong  int `json:"most_common_strong"`
	LeastCommonStrong int `json:"least_common_strong"`
}

// Summarize digests an analysis into a Summary
func Summarize(an *Analysis) *Summary {
	summary := &Summary{
		TotalDraws:        an.WindowSize,
		HotNumbers:        an.HotNumbers(MainNumbersPerDraw),
		ColdNumbers:       an.ColdNumbers(MainNumbersPerDraw),
		OverdueNumbers:    clampRank(an.OverdueNumbers(), MainNumbersPerDraw),
		MainFrequencies:   make(map[int]int, len(an.MainStats)),
		StrongFrequencies: make(map[int]int, len(an.StrongStats)),
	}

	for n, stat := range an.MainStats {
		summary.MainFrequencies[n] = stat.Frequency
	}
	for n, stat := range an.StrongStats {
		summary.StrongFrequencies[n] = stat.Frequency
	}

	summary.MostCommonMain, summary.LeastCommonMain = frequencyExtremes(an.MainStats)
	summary.MostCommonStrong, summary.LeastCommonStrong = frequencyExtremes(an.StrongStats)

	return summary
}

// frequencyExtremes returns the most and least frequent numbers of a
// domain, ties resolved toward the smaller number
func frequencyExtremes(stats map[int]NumberStatistic) (most, least int) {
	ranked := rankStats(stats, func(a, b NumberStatistic) bool {
		return a.Frequency > b.Frequency
	})
	if len(ranked) == 0 {
		return 0, 0
	}

	most = ranked[0]
	least = ranked[len(ranked)-1]

	// The tail of a descending ranking carries the larger number on equal
	// frequency, so rescan for the smallest number at the minimum.
	minFreq := stats[least].Frequency
	for _, n := range ranked {
		if stats[n].Frequency == minFreq && n < least {
			least = n
		}
	}
	return most, least
}
