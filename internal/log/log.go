// Package log builds the logr loggers used across the module.
package log

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// MaxVerbosity is the most detailed level in use: 0 is info, 1 is debug
// and 2 is trace.
const MaxVerbosity = 2

// GetLogger returns a stdr logger named "ucot" and sets the global stdr
// verbosity to v. Values outside [0, MaxVerbosity] fall back to 0.
func GetLogger(v int) logr.Logger {
	logger := stdr.New(nil).WithName("ucot")
	if v > MaxVerbosity || v < 0 {
		logger.Info("invalid verbosity, logging info level messages only", "verbosity", v)
		v = 0
	}
	stdr.SetVerbosity(v)
	return logger
}

// ContextWithLogger returns a copy of ctx carrying logger.
func ContextWithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

var (
	fallbackOnce sync.Once
	fallback     logr.Logger
)

// defaultLogger is built once and leaves the stdr verbosity as it is.
func defaultLogger() logr.Logger {
	fallbackOnce.Do(func() {
		fallback = stdr.New(nil).WithName("ucot")
	})
	return fallback
}

// FromContext returns the logger carried by ctx, or a shared stdr logger
// if there is none. A non-empty name is appended to the logger name.
func FromContext(ctx context.Context, name string) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = defaultLogger()
	}
	if name != "" {
		return logger.WithName(name)
	}
	return logger
}
