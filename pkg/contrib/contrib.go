// Package contrib provides conventionalized emitters for common event
// shapes: API requests, database queries, authentication events. They are
// pure call-site sugar over the logger facade with an agreed field set,
// adding no state or concurrency of their own.
package contrib

import (
	"fmt"

	"github.com/joeydtaylor/structura/pkg/builder"
)

// slowQueryThresholdMS marks a database query as slow.
const slowQueryThresholdMS = 1000.0

// APIRequest logs one handled HTTP request. Status codes at or above 400
// log at warning with status "error".
func APIRequest(l builder.Logger, method string, path string, statusCode int, durationMS float64, keysAndValues ...interface{}) error {
	level := builder.InfoLevel
	status := "success"
	if statusCode >= 400 {
		level = builder.WarnLevel
		status = "error"
	}

	kvs := append([]interface{}{
		"event", "api_request",
		"status", status,
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration_ms", durationMS,
	}, keysAndValues...)
	return l.Log(level, fmt.Sprintf("%s %s -> %d", method, path, statusCode), kvs...)
}

// DBQuery logs one database query. Queries slower than a second log at
// warning with status "slow".
func DBQuery(l builder.Logger, queryType string, table string, durationMS float64, keysAndValues ...interface{}) error {
	level := builder.DebugLevel
	status := "ok"
	if durationMS > slowQueryThresholdMS {
		level = builder.WarnLevel
		status = "slow"
	}

	msg := fmt.Sprintf("DB %s", queryType)
	if table != "" {
		msg += fmt.Sprintf(" on %s", table)
	}

	kvs := append([]interface{}{
		"event", "db_query",
		"status", status,
		"query_type", queryType,
		"table", table,
		"duration_ms", durationMS,
	}, keysAndValues...)
	return l.Log(level, msg, kvs...)
}

// AuthEvent logs one authentication event, e.g. "login" or "logout".
// Failures log at warning.
func AuthEvent(l builder.Logger, eventType string, username string, success bool, keysAndValues ...interface{}) error {
	level := builder.InfoLevel
	status := "success"
	if !success {
		level = builder.WarnLevel
		status = "failed"
	}

	if username == "" {
		username = "unknown"
	}

	kvs := append([]interface{}{
		"event", "auth_" + eventType,
		"status", status,
		"username", username,
	}, keysAndValues...)
	return l.Log(level, fmt.Sprintf("Authentication %s for %s", eventType, username), kvs...)
}
