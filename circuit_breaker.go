package pais

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
)

// BreakerRepository wraps a DrawRepository with a circuit breaker so that a
// failing store sheds load instead of being hammered by every request
type BreakerRepository struct {
	repo DrawRepository

	breaker *gobreaker.CircuitBreaker
	logger  Logger
	config  *CircuitBreakerConfig
}

// NewBreakerRepository creates a circuit-breaker wrapper around repo. When
// the breaker is disabled in config the wrapper is a passthrough.
func NewBreakerRepository(repo DrawRepository, config *CircuitBreakerConfig, logger Logger) *BreakerRepository {
	if logger == nil {
		logger = &DefaultLogger{}
	}
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}

	if !config.Enabled {
		return &BreakerRepository{
			repo:   repo,
			logger: logger,
			config: config,
		}
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= config.MinRequests &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if config.OnStateChange {
				logger.Info("Circuit breaker '%s' state changed from %s to %s", name, from, to)
			}
		},
	}

	return &BreakerRepository{
		repo:    repo,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
		config:  config,
	}
}

// executeWithBreaker runs one repository operation through the breaker
func (b *BreakerRepository) executeWithBreaker(operation func() (any, error)) (any, error) {
	if b.breaker == nil {
		return operation()
	}

	result, err := b.breaker.Execute(operation)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, ErrCircuitBreakerOpen.WithDetails("repository requests are being rejected")
		}
		if errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitBreakerOpen.WithDetails("too many requests while half-open")
		}
	}

	return result, err
}

// FetchAll loads the full history through the breaker
func (b *BreakerRepository) FetchAll(ctx context.Context) ([]DrawRecord, error) {
	result, err := b.executeWithBreaker(func() (any, error) {
		return b.repo.FetchAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]DrawRecord), nil
}

// Append stores a record through the breaker. Domain rejections are not
// store failures, so they must not trip the breaker.
func (b *BreakerRepository) Append(ctx context.Context, record DrawRecord) error {
	result, err := b.executeWithBreaker(func() (any, error) {
		appendErr := b.repo.Append(ctx, record)
		if errors.Is(appendErr, ErrDuplicateDraw) || errors.Is(appendErr, ErrValidation) {
			// Report as success to the breaker, surface to the caller
			return appendErr, nil
		}
		return nil, appendErr
	})
	if err != nil {
		return err
	}
	if domainErr, ok := result.(error); ok {
		return domainErr
	}
	return nil
}
