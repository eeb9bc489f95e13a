// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"

	"github.com/juju/cloudinstall/core/logger"
)

// NoopLogger is a logger.Logger that does nothing.
type NoopLogger struct{}

func (NoopLogger) Criticalf(string, ...any) {}
func (NoopLogger) Errorf(string, ...any)    {}
func (NoopLogger) Warningf(string, ...any)  {}
func (NoopLogger) Infof(string, ...any)     {}
func (NoopLogger) Debugf(string, ...any)    {}
func (NoopLogger) Tracef(string, ...any)    {}

func (NoopLogger) IsDebugEnabled() bool { return false }

func (n NoopLogger) Child(string) logger.Logger { return n }

// CheckLog is an interface that can be used to log messages to a
// *testing.T or *check.C.
type CheckLog interface {
	Logf(string, ...any)
}

// CheckLogger is a logger.Logger that logs to a *testing.T or *check.C.
type CheckLogger struct {
	Log    CheckLog
	module string
}

// NewCheckLogger returns a CheckLogger that logs to the given CheckLog.
func NewCheckLogger(log CheckLog) CheckLogger {
	return CheckLogger{Log: log}
}

func (c CheckLogger) logf(level, msg string, args ...any) {
	prefix := level
	if c.module != "" {
		prefix = fmt.Sprintf("%s %s", level, c.module)
	}
	c.Log.Logf(fmt.Sprintf("%s: %s", prefix, msg), args...)
}

func (c CheckLogger) Criticalf(msg string, args ...any) { c.logf("CRITICAL", msg, args...) }
func (c CheckLogger) Errorf(msg string, args ...any)    { c.logf("ERROR", msg, args...) }
func (c CheckLogger) Warningf(msg string, args ...any)  { c.logf("WARNING", msg, args...) }
func (c CheckLogger) Infof(msg string, args ...any)     { c.logf("INFO", msg, args...) }
func (c CheckLogger) Debugf(msg string, args ...any)    { c.logf("DEBUG", msg, args...) }
func (c CheckLogger) Tracef(msg string, args ...any)    { c.logf("TRACE", msg, args...) }

func (c CheckLogger) IsDebugEnabled() bool { return true }

func (c CheckLogger) Child(name string) logger.Logger {
	module := name
	if c.module != "" {
		module = c.module + "." + name
	}
	return CheckLogger{Log: c.Log, module: module}
}

// RecordingLogger collects formatted warnings and errors so tests can
// assert on them.
type RecordingLogger struct {
	NoopLogger
	Warnings []string
	Errors   []string
}

func (r *RecordingLogger) Warningf(msg string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(msg, args...))
}

func (r *RecordingLogger) Errorf(msg string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(msg, args...))
}

func (r *RecordingLogger) Child(string) logger.Logger { return r }
