package pais

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies an error class
type ErrorCode string

const (
	// System errors (1000-1999)
	ErrCodeSystem          ErrorCode = "PAIS_1000"
	ErrCodeRedisConnection ErrorCode = "PAIS_1001"
	ErrCodeRedisTimeout    ErrorCode = "PAIS_1002"
	ErrCodeConfigInvalid   ErrorCode = "PAIS_1003"

	// Analysis and strategy errors (2000-2999)
	ErrCodeInvalidParameters ErrorCode = "PAIS_2000"
	ErrCodeInvalidRange      ErrorCode = "PAIS_2001"
	ErrCodeInsufficientData  ErrorCode = "PAIS_2002"
	ErrCodeInvalidCount      ErrorCode = "PAIS_2003"
	ErrCodeUnknownStrategy   ErrorCode = "PAIS_2004"
	ErrCodeValidation        ErrorCode = "PAIS_2005"

	// Repository errors (3000-3999)
	ErrCodeDuplicateDraw       ErrorCode = "PAIS_3000"
	ErrCodeStoreSaveFailure    ErrorCode = "PAIS_3001"
	ErrCodeStoreLoadFailure    ErrorCode = "PAIS_3002"
	ErrCodeSerializationFailed ErrorCode = "PAIS_3003"
	ErrCodeCircuitBreakerOpen  ErrorCode = "PAIS_3004"
	ErrCodeRecordNotFound      ErrorCode = "PAIS_3005"
	ErrCodeMalformedStoredDraw ErrorCode = "PAIS_3006"
)

// ErrorSeverity ranks how serious an error is
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "critical"
	SeverityHigh     ErrorSeverity = "high"
	SeverityMedium   ErrorSeverity = "medium"
	SeverityLow      ErrorSeverity = "low"
)

// PredictError is the enriched error type used across the package
type PredictError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Details    string         `json:"details,omitempty"`
	Severity   ErrorSeverity  `json:"severity"`
	Timestamp  time.Time      `json:"timestamp"`
	Operation  string         `json:"operation,omitempty"`
	StackTrace string         `json:"stack_trace,omitempty"`
	Cause      error          `json:"-"`
	Retryable  bool           `json:"retryable"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Error implements the error interface
func (e *PredictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PredictError) Unwrap() error {
	return e.Cause
}

// Is matches on error code
func (e *PredictError) Is(target error) bool {
	if t, ok := target.(*PredictError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithCause attaches the underlying cause
func (e *PredictError) WithCause(cause error) *PredictError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// WithDetails attaches a detail string
func (e *PredictError) WithDetails(details string) *PredictError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithOperation attaches the failing operation name
func (e *PredictError) WithOperation(operation string) *PredictError {
	clone := *e
	clone.Operation = operation
	return &clone
}

// WithMetadata attaches a metadata key/value pair
func (e *PredictError) WithMetadata(key string, value any) *PredictError {
	clone := *e
	if clone.Metadata == nil {
		clone.Metadata = make(map[string]any, 1)
	} else {
		md := make(map[string]any, len(clone.Metadata)+1)
		for k, v := range clone.Metadata {
			md[k] = v
		}
		clone.Metadata = md
	}
	clone.Metadata[key] = value
	return &clone
}

// WithStackTrace captures the current goroutine stack
func (e *PredictError) WithStackTrace() *PredictError {
	clone := *e
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	clone.StackTrace = string(buf[:n])
	return &clone
}

// NewError creates a new non-retryable error
func NewError(code ErrorCode, message string) *PredictError {
	return &PredictError{
		Code:      code,
		Message:   message,
		Severity:  SeverityMedium,
		Timestamp: time.Now(),
		Retryable: false,
	}
}

// NewRetryableError creates a new retryable error
func NewRetryableError(code ErrorCode, message string) *PredictError {
	return &PredictError{
		Code:      code,
		Message:   message,
		Severity:  SeverityMedium,
		Timestamp: time.Now(),
		Retryable: true,
	}
}

// NewCriticalError creates a critical error with a stack trace
func NewCriticalError(code ErrorCode, message string) *PredictError {
	err := &PredictError{
		Code:      code,
		Message:   message,
		Severity:  SeverityCritical,
		Timestamp: time.Now(),
		Retryable: false,
	}
	return err.WithStackTrace()
}

// Predefined error instances
var (
	// System errors
	ErrSystemError           = NewCriticalError(ErrCodeSystem, "system error occurred")
	ErrRedisConnectionFailed = NewRetryableError(ErrCodeRedisConnection, "Redis connection failed")
	ErrRedisTimeout          = NewRetryableError(ErrCodeRedisTimeout, "Redis operation timeout")
	ErrConfigInvalid         = NewCriticalError(ErrCodeConfigInvalid, "configuration is invalid")

	// Analysis and strategy errors
	ErrInvalidParameters = NewError(ErrCodeInvalidParameters, "invalid parameters provided")
	ErrInvalidRange      = NewError(ErrCodeInvalidRange, "generated number or count violates domain bounds")
	ErrInsufficientData  = NewError(ErrCodeInsufficientData, "statistics requested over zero draws")
	ErrInvalidCount      = NewError(ErrCodeInvalidCount, "invalid count: must be greater than 0")
	ErrUnknownStrategy   = NewError(ErrCodeUnknownStrategy, "unknown prediction strategy")
	ErrValidation        = NewError(ErrCodeValidation, "draw record violates domain invariants")

	// Repository errors
	ErrDuplicateDraw       = NewError(ErrCodeDuplicateDraw, "draw number already exists")
	ErrStoreSaveFailure    = NewRetryableError(ErrCodeStoreSaveFailure, "failed to save draw record")
	ErrStoreLoadFailure    = NewRetryableError(ErrCodeStoreLoadFailure, "failed to load draw records")
	ErrSerializationFailed = NewError(ErrCodeSerializationFailed, "draw record serialization failed")
	ErrCircuitBreakerOpen  = NewRetryableError(ErrCodeCircuitBreakerOpen, "circuit breaker is open")
	ErrMalformedStoredDraw = NewError(ErrCodeMalformedStoredDraw, "stored draw record is malformed")
)

// IsRetryableError reports whether an error looks transient
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var predictErr *PredictError
	if errors.As(err, &predictErr) {
		return predictErr.Retryable
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"network is unreachable",
		"temporary failure",
		"server closed",
		"broken pipe",
		"i/o timeout",
		"dial tcp",
		"read tcp",
		"write tcp",
		"connection timed out",
		"no route to host",
		"host is down",
		"connection aborted",
		"redis: connection pool timeout",
		"redis: client is closed",
		"context deadline exceeded",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
