// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package logger

import (
	"github.com/juju/loggo"

	corelogger "github.com/juju/cloudinstall/core/logger"
)

// rootModule prefixes every logger handed out by this package.
const rootModule = "cloudinstall"

// GetLogger returns a loggo backed logger for the named module,
// rooted under "cloudinstall".
func GetLogger(name string) corelogger.Logger {
	return WrapLoggo(loggo.GetLogger(rootModule + "." + name))
}

// WrapLoggo wraps a loggo.Logger so it satisfies [corelogger.Logger].
func WrapLoggo(l loggo.Logger) corelogger.Logger {
	return loggoLogger{l: l}
}

type loggoLogger struct {
	l loggo.Logger
}

func (g loggoLogger) Criticalf(msg string, args ...any) { g.l.Criticalf(msg, args...) }
func (g loggoLogger) Errorf(msg string, args ...any)    { g.l.Errorf(msg, args...) }
func (g loggoLogger) Warningf(msg string, args ...any)  { g.l.Warningf(msg, args...) }
func (g loggoLogger) Infof(msg string, args ...any)     { g.l.Infof(msg, args...) }
func (g loggoLogger) Debugf(msg string, args ...any)    { g.l.Debugf(msg, args...) }
func (g loggoLogger) Tracef(msg string, args ...any)    { g.l.Tracef(msg, args...) }

func (g loggoLogger) IsDebugEnabled() bool {
	return g.l.IsDebugEnabled()
}

func (g loggoLogger) Child(name string) corelogger.Logger {
	return loggoLogger{l: g.l.Child(name)}
}
