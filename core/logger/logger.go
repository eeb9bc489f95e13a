// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package logger

// Logger is the logging interface handed to every component. Components
// never reach for a global logger; they are given one at construction.
type Logger interface {
	// Criticalf logs a message at the critical level.
	Criticalf(msg string, args ...any)

	// Errorf logs a message at the error level.
	Errorf(msg string, args ...any)

	// Warningf logs a message at the warning level.
	Warningf(msg string, args ...any)

	// Infof logs a message at the info level.
	Infof(msg string, args ...any)

	// Debugf logs a message at the debug level.
	Debugf(msg string, args ...any)

	// Tracef logs a message at the trace level.
	Tracef(msg string, args ...any)

	// IsDebugEnabled returns true if the debug level is enabled.
	IsDebugEnabled() bool

	// Child returns a logger whose module name is this logger's module
	// name with the given name appended.
	Child(name string) Logger
}
