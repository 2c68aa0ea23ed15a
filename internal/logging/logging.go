// Package logging builds the zap logger chore writes diagnostics to.
package logging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/opal-lang/chore/internal/config"
)

// New builds a logger from cfg. Every entry carries a run_id that is unique
// to this invocation. Without an output path the logger discards
// everything, so failures reach the user only through the CLI formatter.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if len(cfg.Output) == 0 {
		return Nop(), nil
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	zc.OutputPaths = cfg.Output

	if !cfg.JSON {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("run_id", NewRunID())), nil
}

// NewRunID returns a fresh invocation id.
func NewRunID() string {
	return uuid.NewString()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
