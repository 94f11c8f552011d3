// Package logging builds the zap logger shared by the server and CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr at the given level.
// Format "json" produces production-style structured output, anything else a
// human-readable console encoding.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(zap.NewAtomicLevelAt(lvl), format)
}

// NewWithLevel is like New, but the returned logger follows atom, so its level
// can be changed while it is in use.
func NewWithLevel(atom zap.AtomicLevel, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = atom
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// SetLevel parses level and applies it to atom.
func SetLevel(atom zap.AtomicLevel, level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	atom.SetLevel(lvl)
	return nil
}

func parseLevel(level string) (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
