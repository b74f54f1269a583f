// Package plog wraps zap as the structured logger used across the binary:
// stderr-bound, level-gated by -v/--verbosity, with a Warnf method that
// satisfies every subsystem's WarnLogger interface.
package plog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger.
type Logger struct {
	z *zap.SugaredLogger
}

// New builds a Logger writing to stderr at the level verbosity selects:
// 0 -> warn, 1 -> info, 2+ -> debug.
func New(verbosity int) *Logger {
	level := zapcore.WarnLevel
	switch {
	case verbosity >= 2:
		level = zapcore.DebugLevel
	case verbosity == 1:
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		// Falling back to zap's no-op logger keeps the pipeline running
		// even if stderr somehow can't be opened for structured output.
		z = zap.NewNop()
	}
	return &Logger{z: z.Sugar()}
}

// Nop returns a Logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

func (l *Logger) Debugf(format string, args ...any) { l.z.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.z.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.z.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.z.Errorf(format, args...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error { return l.z.Sync() }
