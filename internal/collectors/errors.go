package collectors

import (
	"errors"

	"access-analytics/internal/shared/svcerrors"
)

// Sentinel errors surfaced by the collector itself. ErrQueueFull is the
// backpressure signal: callers drop and count, never block.
var (
	ErrQueueFull       = errors.New("collector queue full")
	ErrCollectorClosed = errors.New("collector closed")
)

// Collector error codes
const (
	codeValidationFailed = "COL_1000"
	codeQueueFull        = "COL_2000"
	codeCollectorClosed  = "COL_2001"
)

// errValidationFailed returns an error for event validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errQueueFull returns the rejection surfaced when the bounded queue is full.
func errQueueFull() *svcerrors.ServiceError {
	return svcerrors.NewResourceExhaustedError(codeQueueFull, "event queue full", ErrQueueFull)
}

// errCollectorClosed returns the rejection surfaced during shutdown.
func errCollectorClosed() *svcerrors.ServiceError {
	return svcerrors.NewResourceExhaustedError(codeCollectorClosed, "collector is shutting down", ErrCollectorClosed)
}
