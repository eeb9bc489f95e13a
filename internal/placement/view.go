// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package placement

import (
	"github.com/juju/cloudinstall/core/charm"
	"github.com/juju/cloudinstall/core/machine"
)

// Unassigned is shown for services without a machine.
const Unassigned = "Unassigned"

// MachineAssignment pairs a machine with the services assigned to it.
type MachineAssignment struct {
	Machine  machine.Machine
	Services []charm.Definition
}

// ServiceAssignment pairs a service with the machine it is assigned to.
// Machine is nil when the service has no machine in the inventory.
type ServiceAssignment struct {
	Service charm.Definition
	Machine machine.Machine
}

// Hostname returns the assigned machine's hostname or Unassigned.
func (a ServiceAssignment) Hostname() string {
	if a.Machine == nil {
		return Unassigned
	}
	return a.Machine.Hostname()
}

// MachineAssignments returns every inventory machine, placeholder first,
// with its assigned services, joined against a single assignment
// snapshot. Assignments to machines no longer in the inventory are not
// reported.
func (c *Controller) MachineAssignments() []MachineAssignment {
	machines := c.Machines()
	assignments := c.Assignments()

	result := make([]MachineAssignment, len(machines))
	for i, m := range machines {
		services := assignments[m.InstanceID()]
		if services == nil {
			services = []charm.Definition{}
		}
		result[i] = MachineAssignment{Machine: m, Services: services}
	}
	return result
}

// ServiceAssignments returns every enabled service, in catalog order, with
// the machine it is assigned to, joined against a single assignment
// snapshot.
func (c *Controller) ServiceAssignments() []ServiceAssignment {
	assignments := c.Assignments()

	result := make([]ServiceAssignment, len(c.services))
	for i, svc := range c.services {
		result[i] = ServiceAssignment{Service: svc}
		if id, ok := assignments.holder(svc.Name); ok {
			if m, ok := c.inventory.MachineByID(id); ok {
				result[i].Machine = m
			}
		}
	}
	return result
}
