package processors

import (
	"fmt"

	"access-analytics/internal/shared/svcerrors"
)

const (
	codeInternalPersistenceFailed = "PRO_9000"
	codeInternalAggregationFailed = "PRO_9001"
)

// errPersistenceFailed returns an error when the durable insert fails. The
// flush worker treats any flush error as retryable; the idempotent insert
// makes the retry safe.
func errPersistenceFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPersistenceFailed, fmt.Errorf("persistenceFailed: %w", cause))
}

// errAggregationFailed returns an error when the statistic update fails
// after the events were persisted.
func errAggregationFailed(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("aggregationFailed for %s: %w", date, cause))
}
