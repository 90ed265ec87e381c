// Package logging builds the zap logger used across the app.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapConfig struct {
	Level    string
	Encoding string
	// OutputPath is a file path, "stderr" or "stdout". Empty means stderr.
	OutputPath string
}

// Init returns a logger for cfg. Console encoding uses the development
// encoder, json the production one.
func Init(cfg ZapConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var zc zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Encoding)) {
	case "", "console":
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("logging: unsupported encoding %q", cfg.Encoding)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = "stderr"
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
