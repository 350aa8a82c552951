package pais

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisDrawRepository stores draw records in Redis: one JSON record per draw
// under DrawKeyPrefix plus a sorted-set index scored by draw number, which
// gives FetchAll its ascending order for free.
type RedisDrawRepository struct {
	redisClient    *redis.Client
	logger         Logger
	retryAttempts  int
	retryBaseDelay time.Duration
}

// NewRedisDrawRepository creates a Redis-backed repository with default retry settings
func NewRedisDrawRepository(redisClient *redis.Client, logger Logger) *RedisDrawRepository {
	if logger == nil {
		logger = &DefaultLogger{}
	}
	return &RedisDrawRepository{
		redisClient:    redisClient,
		logger:         logger,
		retryAttempts:  DefaultRepositoryRetryAttempts,
		retryBaseDelay: DefaultRepositoryRetryInterval,
	}
}

// NewRedisDrawRepositoryWithRetry creates a Redis-backed repository with custom retry settings
func NewRedisDrawRepositoryWithRetry(
	redisClient *redis.Client, logger Logger, retryAttempts int, retryDelay time.Duration,
) *RedisDrawRepository {
	repo := NewRedisDrawRepository(redisClient, logger)
	repo.retryAttempts = retryAttempts
	repo.retryBaseDelay = retryDelay
	return repo
}

// drawKey returns the record key for one draw number
func drawKey(drawNumber int) string {
	return DrawKeyPrefix + strconv.Itoa(drawNumber)
}

// Append stores a new record. SETNX on the record key enforces draw number
// uniqueness before the index is touched.
func (r *RedisDrawRepository) Append(ctx context.Context, record DrawRecord) error {
	if err := record.Validate(); err != nil {
		r.logger.Error("Append validation failed: draw=%d, error=%v", record.DrawNumber, err)
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}

	key := drawKey(record.DrawNumber)

	var created bool
	err = r.executeWithRetry(ctx, "append", func() error {
		var setErr error
		created, setErr = r.redisClient.SetNX(ctx, key, data, 0).Result()
		return setErr
	})
	if err != nil {
		r.logger.Error("Append failed to store record: draw=%d, error=%v", record.DrawNumber, err)
		return ErrStoreSaveFailure.WithCause(err).WithMetadata("draw_number", record.DrawNumber)
	}
	if !created {
		r.logger.Debug("Append rejected duplicate draw number %d", record.DrawNumber)
		return ErrDuplicateDraw.WithMetadata("draw_number", record.DrawNumber)
	}

	err = r.executeWithRetry(ctx, "index", func() error {
		return r.redisClient.ZAdd(ctx, DrawIndexKey, &redis.Z{
			Score:  float64(record.DrawNumber),
			Member: strconv.Itoa(record.DrawNumber),
		}).Err()
	})
	if err != nil {
		r.logger.Error("Append failed to index record: draw=%d, error=%v", record.DrawNumber, err)
		return ErrStoreSaveFailure.WithCause(err).WithMetadata("draw_number", record.DrawNumber)
	}

	r.logger.Info("Append stored draw %d", record.DrawNumber)
	return nil
}

// FetchAll loads the full history ascending by draw number
func (r *RedisDrawRepository) FetchAll(ctx context.Context) ([]DrawRecord, error) {
	var members []string
	err := r.executeWithRetry(ctx, "fetch index", func() error {
		var rangeErr error
		members, rangeErr = r.redisClient.ZRange(ctx, DrawIndexKey, 0, -1).Result()
		return rangeErr
	})
	if err != nil {
		r.logger.Error("FetchAll failed to read index: %v", err)
		return nil, ErrStoreLoadFailure.WithCause(err)
	}

	if len(members) == 0 {
		return []DrawRecord{}, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		drawNumber, convErr := strconv.Atoi(member)
		if convErr != nil {
			return nil, ErrMalformedStoredDraw.WithDetails("non-numeric index member: " + member)
		}
		keys[i] = drawKey(drawNumber)
	}

	var values []any
	err = r.executeWithRetry(ctx, "fetch records", func() error {
		var getErr error
		values, getErr = r.redisClient.MGet(ctx, keys...).Result()
		return getErr
	})
	if err != nil {
		r.logger.Error("FetchAll failed to read records: %v", err)
		return nil, ErrStoreLoadFailure.WithCause(err)
	}

	records := make([]DrawRecord, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			return nil, ErrMalformedStoredDraw.WithDetails("missing record for key " + keys[i])
		}

		var record DrawRecord
		if unmarshalErr := json.Unmarshal([]byte(raw), &record); unmarshalErr != nil {
			return nil, ErrMalformedStoredDraw.WithCause(unmarshalErr).WithDetails("key " + keys[i])
		}
		records = append(records, record)
	}

	r.logger.Debug("FetchAll loaded %d records", len(records))
	return records, nil
}

// executeWithRetry runs a Redis operation with exponential backoff on
// retriable errors
func (r *RedisDrawRepository) executeWithRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.retryAttempts; attempt++ {
		if attempt > 0 {
			delay := r.retryBaseDelay * time.Duration(1<<(attempt-1))
			if delay > MaxRepositoryRetryDelay {
				delay = MaxRepositoryRetryDelay
			}

			r.logger.Debug("Retrying %s operation (attempt %d/%d) after %v",
				operation, attempt, r.retryAttempts, delay)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryableError(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
