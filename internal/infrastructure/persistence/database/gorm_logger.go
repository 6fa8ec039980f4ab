package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger routes gorm's query log through zap. Lookups that find no
// row are expected and stay out of the error log.
func newGormLogger(log *zap.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(
		&gormLogWriter{logger: log.Named("gorm")},
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// gormLogWriter implements gorm's logger.Writer
type gormLogWriter struct {
	logger *zap.Logger
}

func (w *gormLogWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	switch {
	case strings.Contains(msg, "SLOW SQL"), strings.Contains(format, "[warn]"):
		w.logger.Warn("Slow database query", zap.String("message", msg))
	case strings.Contains(format, "[error]"), carriesError(args):
		w.logger.Error("Database query failed", zap.String("message", msg))
	default:
		w.logger.Debug("Database query", zap.String("message", msg))
	}
}

func carriesError(args []interface{}) bool {
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			return true
		}
	}
	return false
}
