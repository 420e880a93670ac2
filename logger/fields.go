package logger

import (
	"time"
)

// Field keys shared by the gateway's log lines.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"
	FieldMessageType   = "message_type"
	FieldAttempt       = "attempt"
	FieldBackoff       = "backoff_ms"
	FieldPending       = "pending"
	FieldAddress       = "address"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
// Pairs with a non-string key are skipped.
//
//	log.Info("done", logger.Fields("op", "submit", "batches", 3))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// MessageFields identifies one validator message.
func MessageFields(correlationID, messageType string) map[string]interface{} {
	return map[string]interface{}{
		FieldCorrelationID: correlationID,
		FieldMessageType:   messageType,
	}
}

// RetryFields describes a scheduled retry. err may be nil.
func RetryFields(attempt int, backoff time.Duration, err error) map[string]interface{} {
	m := map[string]interface{}{
		FieldAttempt: attempt,
		FieldBackoff: backoff.Milliseconds(),
	}
	if err != nil {
		m[FieldError] = err.Error()
	}
	return m
}
