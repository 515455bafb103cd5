package http

import (
	"access-analytics/internal/shared/svcerrors"
)

// HTTP layer error codes
const (
	codeMalformedBody = "HTTP_1000"
	codeInvalidDate   = "HTTP_1001"
	codeInvalidTopic  = "HTTP_1002"
)

func errMalformedBody(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedBody, "request body is not valid JSON", cause)
}

func errInvalidDate(date string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidDate, "date must be formatted YYYY-MM-DD: "+date, nil)
}

func errInvalidTopic(topic string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidTopic, "unknown topic: "+topic, nil)
}
