// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package placement

import (
	"github.com/juju/cloudinstall/core/charm"
	"github.com/juju/cloudinstall/core/machine"
)

// GenerateDefaults seeds a layout from the live machines (placeholder and
// containers excluded) and the enabled services, both in their declared
// order.
//
// The first machine becomes the controller machine and takes every
// service that does not need isolation. Each isolated service takes the
// next machine in order. Once the machines run out, the controller
// machine and all remaining isolated services fall back to the
// FirstAvailable placeholder; there is no wrap-around to the first machine.
func GenerateDefaults(machines []machine.Machine, services []charm.Definition) Assignments {
	cursor := 0
	next := func() machine.Machine {
		m := machine.FirstAvailable
		if cursor < len(machines) {
			m = machines[cursor]
		}
		cursor++
		return m
	}

	assignments := make(Assignments)
	controller := next()
	for _, svc := range services {
		target := controller
		if svc.Isolate {
			target = next()
		}
		id := target.InstanceID()
		assignments[id] = append(assignments[id], svc)
	}
	return assignments
}
