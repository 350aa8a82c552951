package pais

import "time"

const (
	// MainNumberMin is the smallest valid main number
	MainNumberMin = 1

	// MainNumberMax is the largest valid main number
	MainNumberMax = 37

	// StrongNumberMin is the smallest valid strong number
	StrongNumberMin = 1

	// StrongNumberMax is the largest valid strong number
	StrongNumberMax = 7

	// MainNumbersPerDraw is the number of main numbers in a single draw
	MainNumbersPerDraw = 6

	// LowNumberMax is the boundary for classifying a main number as "low"
	LowNumberMax = 18

	// PatternRetryBudget is the number of constrained sampling attempts the
	// pattern strategy performs before falling back to an unconstrained sample
	PatternRetryBudget = 100

	// SumRetryBudget is the number of sampling attempts the sum strategy
	// performs before keeping the last unconstrained sample
	SumRetryBudget = 100

	// RecentTrendWindow is the number of trailing draws the recent-trends
	// strategy considers
	RecentTrendWindow = 10

	// TopPairCount is the number of leading pairs the pair strategy inspects
	TopPairCount = 10
)

const (
	// DrawKeyPrefix is the prefix for Redis draw record keys
	DrawKeyPrefix = "pais:draw:"

	// DrawIndexKey is the Redis sorted set indexing draw numbers
	DrawIndexKey = "pais:draws"

	// DefaultRepositoryRetryAttempts is the default number of retries for
	// repository operations that hit retriable Redis errors
	DefaultRepositoryRetryAttempts = 3

	// DefaultRepositoryRetryInterval is the base delay between repository retries
	DefaultRepositoryRetryInterval = 100 * time.Millisecond

	// MaxRepositoryRetryDelay caps the exponential backoff delay
	MaxRepositoryRetryDelay = 5 * time.Second
)

const (
	// DefaultWindow analyzes the full history when zero
	DefaultWindow = 0

	// DefaultPredictionCount is the default number of predictions per request
	DefaultPredictionCount = 5

	// MaxPredictionCount is the upper bound for a single request
	MaxPredictionCount = 50

	// DefaultRNGCacheSize is the default cache size of the secure random source
	DefaultRNGCacheSize = 1024
)

const (
	// DefaultCircuitBreakerName is the default name for the repository breaker
	DefaultCircuitBreakerName = "pais-repository"

	// DefaultCircuitBreakerMaxRequests is the default max requests in half-open state
	DefaultCircuitBreakerMaxRequests = 3

	// DefaultCircuitBreakerInterval is the default counting interval
	DefaultCircuitBreakerInterval = 60 * time.Second

	// DefaultCircuitBreakerTimeout is the default open-state timeout
	DefaultCircuitBreakerTimeout = 30 * time.Second

	// DefaultCircuitBreakerFailureRatio is the default trip ratio
	DefaultCircuitBreakerFailureRatio = 0.6

	// DefaultCircuitBreakerMinRequests is the default minimum request count before tripping
	DefaultCircuitBreakerMinRequests = 3

	// DefaultCircuitBreakerOnStateChange enables state change logging by default
	DefaultCircuitBreakerOnStateChange = true
)

const (
	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPassword     = ""
	DefaultRedisDB           = 0
	DefaultRedisPoolSize     = 50
	DefaultRedisMinIdleConns = 10
	DefaultRedisMaxRetries   = 3
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisPoolTimeout  = 4 * time.Second
)
