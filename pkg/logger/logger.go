// Package logger wraps zap behind a process-wide logger with a small
// Init/Get/Sync lifecycle.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger settings
type Config struct {
	ServiceName string
	Development bool
}

// Logger wraps *zap.Logger
type Logger struct {
	*zap.Logger
}

var (
	mu     sync.RWMutex
	global = &Logger{zap.NewNop()}
)

// Init builds the global logger. Development mode uses console encoding
// with human-readable timestamps; production logs JSON.
func Init(cfg *Config) error {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	log, err := zapCfg.Build(zap.Fields(zap.String("service", cfg.ServiceName)))
	if err != nil {
		return err
	}

	mu.Lock()
	global = &Logger{log}
	mu.Unlock()
	return nil
}

// Get returns the global logger
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes buffered log entries
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = global.Logger.Sync()
}
