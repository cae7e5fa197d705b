// Package logging wires zap as the renderer's structured logger (the
// ambient stack the distilled spec omits; see SPEC_FULL.md and
// DESIGN.md).
package logging

import (
	"go.uber.org/zap"
)

// Logger is the narrow surface the render pipeline logs through, so
// the main command doesn't need to know about zap's full API.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Sync() error
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a human-readable, console-encoded production logger.
func New() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "t"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: logger.Sugar()}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *zapLogger) Sync() error                               { return l.sugar.Sync() }
