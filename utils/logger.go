package utils

import (
	"log"
	"sync"

	"salora/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitializeLogger builds the process-wide logger: JSON at Info in
// production, colored console at Debug everywhere else.
func InitializeLogger() {
	loggerOnce.Do(func() {
		var cfg zap.Config
		if config.IsProduction() {
			cfg = zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		built, err := cfg.Build()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger = built
		zap.ReplaceGlobals(built)
	})
}

// GetLogger returns the global logger, building it on first use.
func GetLogger() *zap.Logger {
	InitializeLogger()
	return logger
}
