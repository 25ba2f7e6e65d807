// Package log provides structured logging for perfindex.
//
// Components obtain a named Logger and attach key/value context with With.
// The default implementation is backed by github.com/rs/zerolog; see
// NewZerologProvider.
//
//	logger := log.GetLoggerWithName("linear").With(log.ComponentKey, "linear")
//	logger.Info("Training started", log.SamplesKey, r, log.FeaturesKey, c)
package log

import (
	"os"
	"sync"
)

// Structured field keys.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model_name"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	PredsKey      = "predictions"
	DurationMsKey = "duration_ms"
	PathKey       = "path"
	SeedKey       = "seed"
	MethodKey     = "method"
	RouteKey      = "route"
	StatusKey     = "status"
	RequestIDKey  = "request_id"
)

// Operation and phase values.
const (
	OperationLoad     = "load"
	OperationSplit    = "split"
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"

	PhaseData       = "data"
	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"
)

// Logger is the logging interface used across the module. Fields are
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider creates loggers.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
}

var (
	mu       sync.RWMutex
	provider LoggerProvider = NewZerologProvider(LevelInfo, os.Stderr)
)

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

// SetupLogger installs a zerolog provider writing to stderr at the given level.
func SetupLogger(level string) {
	SetProvider(NewZerologProvider(ToLogLevel(level), os.Stderr))
}

// GetLogger returns the root logger of the global provider.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with name.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// LogError logs err at error level with msg and optional fields.
func LogError(err error, msg string, fields ...interface{}) {
	GetLogger().Error(msg, append([]interface{}{err}, fields...)...)
}
