package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldBatchID      = "batch_id"
	FieldBatchSize    = "batch_size"
	FieldAttempt      = "attempt"
	FieldStatDate     = "stat_date"
	FieldCacheKey     = "cache_key"
	FieldCacheTier    = "cache_tier"
	FieldTopic        = "topic"
	FieldSubscriberID = "subscriber_id"
)
