// Package telemetry builds the structured logger the reference CLI host
// uses. Nothing here is a package-level global: NewLogger returns a fresh
// *zap.Logger owned by its caller. The kernel packages take no logger.
package telemetry

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a FOODOPS_LOG_LEVEL value.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
	LevelTrace Level = "trace"
)

// NewLogger builds a zap.Logger at the requested level. "trace" has no zap
// equivalent and is mapped to debug (the most verbose level zap supports).
func NewLogger(level Level) (*zap.Logger, error) {
	zapLevel, err := toZapLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("telemetry: building logger: %w", err)
	}
	return logger, nil
}

func toZapLevel(level Level) (zapcore.Level, error) {
	switch level {
	case LevelError:
		return zapcore.ErrorLevel, nil
	case LevelWarn:
		return zapcore.WarnLevel, nil
	case LevelInfo, "":
		return zapcore.InfoLevel, nil
	case LevelDebug, LevelTrace:
		return zapcore.DebugLevel, nil
	default:
		return 0, fmt.Errorf("telemetry: unknown log level %q", level)
	}
}

// ForTurn returns a child logger carrying the turn and restaurant id as
// structured fields.
func ForTurn(base *zap.Logger, turn int, restaurantID string) *zap.Logger {
	return base.With(zap.Int("turn", turn), zap.String("restaurant_id", restaurantID))
}
