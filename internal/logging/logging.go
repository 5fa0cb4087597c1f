// Package logging builds the zap loggers used by the javagen command.
package logging

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Nop returns a logger that discards everything. Library code falls back to it
// when no logger is configured.
func Nop() *zap.Logger { return zap.NewNop() }

// New builds a logger writing to stderr. JSON output uses the production
// encoder for machine consumption; otherwise a compact console encoder is used.
// Debug entries are only kept when verbose is set.
func New(json, verbose bool) (*zap.Logger, error) {
	return NewTo(zapcore.Lock(os.Stderr), json, verbose)
}

// NewTo is New with an explicit sink.
func NewTo(sink zapcore.WriteSyncer, json, verbose bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}

	var enc zapcore.Encoder
	if json {
		config := zap.NewProductionConfig()
		config.Level = level
		enc = zapcore.NewJSONEncoder(config.EncoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	}
	if sink == nil {
		return nil, errors.New("logging: nil sink")
	}
	return zap.New(zapcore.NewCore(enc, sink, level)), nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	// Timestamps and callers add noise to a short-lived CLI run.
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
