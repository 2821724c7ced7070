package jenkins

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/buildbeaver/jenkins2gha/common/logger"
)

type leveledLoggerWrapper struct {
	realLogger logger.Log
}

// NewLeveledLogger provides a LeveledLogger interface on top of the standard logging interface.
// This can be provided to retryableClient so that it can produce log messages at appropriate levels.
func NewLeveledLogger(realLogger logger.Log) retryablehttp.LeveledLogger {
	return &leveledLoggerWrapper{realLogger: realLogger}
}

func (l *leveledLoggerWrapper) Error(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Error(msg)
}

func (l *leveledLoggerWrapper) Info(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Info(msg)
}

// Debug messages from retryablehttp are emitted for every request, so they are logged at trace.
func (l *leveledLoggerWrapper) Debug(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Trace(msg)
}

func (l *leveledLoggerWrapper) Warn(msg string, keysAndValues ...interface{}) {
	l.withFields(keysAndValues).Warn(msg)
}

// withFields converts alternating keys and values into structured log fields.
func (l *leveledLoggerWrapper) withFields(keysAndValues []interface{}) logger.Log {
	if len(keysAndValues) == 0 {
		return l.realLogger
	}
	fields := make(logger.Fields, len(keysAndValues)/2+1)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields[key] = keysAndValues[i+1]
		} else {
			fields[key] = nil
		}
	}
	return l.realLogger.WithFields(fields)
}
