package postgresengine

import (
	"math"
	"time"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (sm SchemaManager) logQueryWithDuration(
	sqlQuery string,
	action string,
	duration time.Duration,
) {
	if sm.logger != nil {
		sm.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, sm.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (sm SchemaManager) logOperation(action string, args ...any) {
	if sm.logger != nil {
		sm.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (sm SchemaManager) logError(
	message string,
	err error,
	args ...any,
) {
	if sm.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		sm.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (sm SchemaManager) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
