// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cloudplace implements the cloud-place command, which shows how
// the services of an install would be spread over the available machines.
package cloudplace

import (
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
)

// LoggingConfigEnvKey names the environment variable holding the default
// logging configuration.
const LoggingConfigEnvKey = "CLOUDPLACE_LOGGING_CONFIG"

// Version is the version reported by the command.
var Version = "0.1.0"

const superDoc = `
cloud-place plans where the services of a cloud install are deployed.

It reads the machines from MAAS or a saved juju status document, seeds a
default layout and lets individual services be moved between machines.
`

// NewSuperCommand returns the cloud-place command with all of its
// subcommands registered.
func NewSuperCommand() *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "cloud-place",
		Doc:     superDoc,
		Version: Version,
		Log: &cmd.Log{
			DefaultConfig: os.Getenv(LoggingConfigEnvKey),
		},
		NotifyRun: func(name string) {
			logger.Infof("running %s [%s %s %s]", name, Version, runtime.Compiler, runtime.Version())
		},
	})
	super.Register(NewMachinesCommand())
	super.Register(NewServicesCommand())
	super.Register(NewPlacementCommand())
	return super
}
