package pais

import (
	"context"
	"time"
)

// Assembler orchestrates one prediction request: a single repository fetch,
// one analyzer pass, then one strategy invocation per requested prediction.
type Assembler struct {
	repo     DrawRepository
	analyzer *Analyzer
	logger   Logger
	monitor  *Monitor
	window   int
}

// NewAssembler creates an assembler analyzing the full history
func NewAssembler(repo DrawRepository) *Assembler {
	logger := &DefaultLogger{}
	return &Assembler{
		repo:     repo,
		analyzer: NewAnalyzerWithLogger(logger),
		logger:   logger,
		monitor:  NewMonitor(),
		window:   DefaultWindow,
	}
}

// NewAssemblerWithConfig creates an assembler with an explicit window and logger
func NewAssemblerWithConfig(repo DrawRepository, config *PredictorConfig, logger Logger) *Assembler {
	if logger == nil {
		logger = &DefaultLogger{}
	}

	window := DefaultWindow
	if config != nil {
		window = config.Window
	}

	return &Assembler{
		repo:     repo,
		analyzer: NewAnalyzerWithLogger(logger),
		logger:   logger,
		monitor:  NewMonitor(),
		window:   window,
	}
}

// Monitor returns the assembler's metrics collector
func (a *Assembler) Monitor() *Monitor { return a.monitor }

// Generate fetches the history once and produces count predictions in
// invocation order. With no explicit kinds the five default strategies run
// in their fixed order, cycling when count exceeds five. A nil rng selects
// the secure source; pass a SeededRNG for reproducible output.
func (a *Assembler) Generate(ctx context.Context, count int, rng RNG, kinds ...StrategyKind) ([]Prediction, error) {
	start := time.Now()

	draws, err := a.repo.FetchAll(ctx)
	if err != nil {
		a.logger.Error("Generate failed to fetch draws: %v", err)
		a.monitor.RecordRepositoryError()
		a.monitor.RecordGenerate(false, time.Since(start))
		return nil, err
	}

	predictions, err := a.GenerateFromDraws(draws, count, rng, kinds...)
	a.monitor.RecordGenerate(err == nil, time.Since(start))
	return predictions, err
}

// GenerateFromDraws produces count predictions from an already-fetched
// history. Either a complete ordered sequence is returned or the request
// fails entirely; no partial results.
func (a *Assembler) GenerateFromDraws(draws []DrawRecord, count int, rng RNG, kinds ...StrategyKind) ([]Prediction, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if count > MaxPredictionCount {
		return nil, ErrInvalidCount.WithDetails("requested count exceeds the per-request maximum")
	}
	if rng == nil {
		rng = NewSecureRNG()
	}
	if len(kinds) == 0 {
		kinds = DefaultStrategies
	}

	analyzeStart := time.Now()
	analysis, err := a.analyzer.Analyze(draws, a.window)
	if err != nil {
		return nil, err
	}
	a.monitor.RecordAnalyze(time.Since(analyzeStart))

	predictions := make([]Prediction, 0, count)
	for i := 0; i < count; i++ {
		kind := kinds[i%len(kinds)]

		prediction, err := Apply(kind, analysis, rng)
		if err != nil {
			a.logger.Error("Generate strategy %s failed: %v", kind, err)
			return nil, err
		}
		a.monitor.RecordStrategy(kind)

		// A later prediction colliding with an earlier one is regenerated
		// once with the advanced RNG state. A second collision is kept:
		// duplicates among short heuristics are expected, not an error.
		if collidesWith(predictions, &prediction) {
			a.logger.Debug("Generate regenerating duplicate prediction from strategy %s", kind)
			a.monitor.RecordDuplicateRegeneration()

			retried, err := Apply(kind, analysis, rng)
			if err != nil {
				return nil, err
			}
			prediction = retried
		}

		predictions = append(predictions, prediction)
	}

	a.logger.Info("Generate produced %d predictions over window of %d draws",
		len(predictions), analysis.WindowSize)
	return predictions, nil
}

// collidesWith reports whether the candidate shares a main number set with
// any earlier prediction
func collidesWith(predictions []Prediction, candidate *Prediction) bool {
	for i := range predictions {
		if predictions[i].SameNumbers(candidate) {
			return true
		}
	}
	return false
}
