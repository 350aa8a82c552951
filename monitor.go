package pais

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics is a snapshot of the assembler's counters
type Metrics struct {
	TotalGenerates      int64 `json:"total_generates"`
	SuccessfulGenerates int64 `json:"successful_generates"`
	FailedGenerates     int64 `json:"failed_generates"`

	TotalGenerateTime int64 `json:"total_generate_time"` // Nanoseconds
	TotalAnalyzeTime  int64 `json:"total_analyze_time"`  // Nanoseconds
	AnalyzeRuns       int64 `json:"analyze_runs"`

	StrategyInvocations    map[string]int64 `json:"strategy_invocations"`
	DuplicateRegenerations int64            `json:"duplicate_regenerations"`
	RepositoryErrors       int64            `json:"repository_errors"`

	StartTime      int64 `json:"start_time"`
	LastUpdateTime int64 `json:"last_update_time"`
}

// SuccessRate returns the generate success rate as a percentage
func (m *Metrics) SuccessRate() float64 {
	if m.TotalGenerates == 0 {
		return 0.0
	}
	return float64(m.SuccessfulGenerates) / float64(m.TotalGenerates) * 100.0
}

// AverageGenerateTime returns the mean duration of a generate call
func (m *Metrics) AverageGenerateTime() time.Duration {
	if m.TotalGenerates == 0 {
		return 0
	}
	return time.Duration(m.TotalGenerateTime / m.TotalGenerates)
}

// AverageAnalyzeTime returns the mean duration of one analyzer pass
func (m *Metrics) AverageAnalyzeTime() time.Duration {
	if m.AnalyzeRuns == 0 {
		return 0
	}
	return time.Duration(m.TotalAnalyzeTime / m.AnalyzeRuns)
}

// Monitor collects assembler metrics with atomic counters
type Monitor struct {
	totalGenerates      int64
	successfulGenerates int64
	failedGenerates     int64
	totalGenerateTime   int64
	totalAnalyzeTime    int64
	analyzeRuns         int64

	strategyCounts         sync.Map // StrategyKind -> *int64
	duplicateRegenerations int64
	repositoryErrors       int64

	startTime      int64
	lastUpdateTime int64

	mu      sync.RWMutex
	enabled bool
}

// NewMonitor creates an enabled monitor
func NewMonitor() *Monitor {
	now := time.Now().UnixNano()
	return &Monitor{
		enabled:        true,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// Enable turns metric collection on
func (m *Monitor) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}

// Disable turns metric collection off
func (m *Monitor) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

// IsEnabled reports whether metrics are being collected
func (m *Monitor) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// RecordGenerate records one generate call
func (m *Monitor) RecordGenerate(success bool, duration time.Duration) {
	if !m.IsEnabled() {
		return
	}

	atomic.AddInt64(&m.totalGenerates, 1)
	atomic.AddInt64(&m.totalGenerateTime, int64(duration))
	if success {
		atomic.AddInt64(&m.successfulGenerates, 1)
	} else {
		atomic.AddInt64(&m.failedGenerates, 1)
	}
	atomic.StoreInt64(&m.lastUpdateTime, time.Now().UnixNano())
}

// RecordAnalyze records one analyzer pass
func (m *Monitor) RecordAnalyze(duration time.Duration) {
	if !m.IsEnabled() {
		return
	}

	atomic.AddInt64(&m.analyzeRuns, 1)
	atomic.AddInt64(&m.totalAnalyzeTime, int64(duration))
	atomic.StoreInt64(&m.lastUpdateTime, time.Now().UnixNano())
}

// RecordStrategy records one strategy invocation
func (m *Monitor) RecordStrategy(kind StrategyKind) {
	if !m.IsEnabled() {
		return
	}

	counter, _ := m.strategyCounts.LoadOrStore(kind, new(int64))
	atomic.AddInt64(counter.(*int64), 1)
	atomic.StoreInt64(&m.lastUpdateTime, time.Now().UnixNano())
}

// RecordDuplicateRegeneration records one duplicate-prediction retry
func (m *Monitor) RecordDuplicateRegeneration() {
	if !m.IsEnabled() {
		return
	}

	atomic.AddInt64(&m.duplicateRegenerations, 1)
	atomic.StoreInt64(&m.lastUpdateTime, time.Now().UnixNano())
}

// RecordRepositoryError records one failed repository call
func (m *Monitor) RecordRepositoryError() {
	if !m.IsEnabled() {
		return
	}

	atomic.AddInt64(&m.repositoryErrors, 1)
	atomic.StoreInt64(&m.lastUpdateTime, time.Now().UnixNano())
}

// GetMetrics returns a snapshot of the current counters
func (m *Monitor) GetMetrics() Metrics {
	strategyInvocations := make(map[string]int64)
	m.strategyCounts.Range(func(key, value any) bool {
		strategyInvocations[key.(StrategyKind).String()] = atomic.LoadInt64(value.(*int64))
		return true
	})

	return Metrics{
		TotalGenerates:         atomic.LoadInt64(&m.totalGenerates),
		SuccessfulGenerates:    atomic.LoadInt64(&m.successfulGenerates),
		FailedGenerates:        atomic.LoadInt64(&m.failedGenerates),
		TotalGenerateTime:      atomic.LoadInt64(&m.totalGenerateTime),
		TotalAnalyzeTime:       atomic.LoadInt64(&m.totalAnalyzeTime),
		AnalyzeRuns:            atomic.LoadInt64(&m.analyzeRuns),
		StrategyInvocations:    strategyInvocations,
		DuplicateRegenerations: atomic.LoadInt64(&m.duplicateRegenerations),
		RepositoryErrors:       atomic.LoadInt64(&m.repositoryErrors),
		StartTime:              atomic.LoadInt64(&m.startTime),
		LastUpdateTime:         atomic.LoadInt64(&m.lastUpdateTime),
	}
}

// ResetMetrics zeroes all counters
func (m *Monitor) ResetMetrics() {
	atomic.StoreInt64(&m.totalGenerates, 0)
	atomic.StoreInt64(&m.successfulGenerates, 0)
	atomic.StoreInt64(&m.failedGenerates, 0)
	atomic.StoreInt64(&m.totalGenerateTime, 0)
	atomic.StoreInt64(&m.totalAnalyzeTime, 0)
	atomic.StoreInt64(&m.analyzeRuns, 0)
	atomic.StoreInt64(&m.duplicateRegenerations, 0)
	atomic.StoreInt64(&m.repositoryErrors, 0)

	m.strategyCounts.Range(func(key, _ any) bool {
		m.strategyCounts.Delete(key)
		return true
	})

	now := time.Now().UnixNano()
	atomic.StoreInt64(&m.startTime, now)
	atomic.StoreInt64(&m.lastUpdateTime, now)
}
