// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package placement tracks which services are assigned to which machines
// and seeds a default layout.
package placement

import (
	"slices"
	"sync"

	"github.com/juju/errors"

	"github.com/juju/cloudinstall/core/charm"
	"github.com/juju/cloudinstall/core/logger"
	"github.com/juju/cloudinstall/core/machine"
)

// Inventory describes the machine inventory the controller places
// services onto.
type Inventory interface {
	// Machines returns the placeholder followed by the live machines.
	Machines() []machine.Machine

	// MachineByID returns the machine with the given instance id.
	MachineByID(id string) (machine.Machine, bool)
}

// Controller owns the assignment map. It is the only place assignments
// are changed. All methods are safe for concurrent use; each holds the
// controller lock for its whole duration.
type Controller struct {
	inventory Inventory
	services  []charm.Definition
	logger    logger.Logger

	mu          sync.Mutex
	assignments Assignments
}

// NewController returns a controller placing the catalog's enabled
// services onto the inventory's machines. The assignment map starts out as
// the default layout.
func NewController(inventory Inventory, catalog []charm.Definition, logger logger.Logger) *Controller {
	c := &Controller{
		inventory: inventory,
		services:  charm.Enabled(catalog),
		logger:    logger,
	}
	c.assignments = c.GenerateDefaults()
	return c
}

// Machines returns the assignable machines, placeholder first.
func (c *Controller) Machines() []machine.Machine {
	return c.inventory.Machines()
}

// ServiceDefinitions returns the enabled services in catalog order.
func (c *Controller) ServiceDefinitions() []charm.Definition {
	return slices.Clone(c.services)
}

// Assign places svc on the machine with the given id, first removing it
// from whichever machine held it. Assigning a service to the machine that
// already holds it changes nothing. The id is not checked against the
// inventory.
func (c *Controller) Assign(machineID string, svc charm.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if holder, ok := c.assignments.holder(svc.Name); ok {
		if holder == machineID {
			return
		}
		c.assignments.remove(holder, svc.Name)
		c.logger.Debugf("moving %q from %q to %q", svc.Name, holder, machineID)
	}
	c.assignments[machineID] = append(c.assignments[machineID], svc)
}

// MachineForService returns the machine svc is assigned to. It returns
// false if svc is unassigned or its machine is no longer in the inventory.
func (c *Controller) MachineForService(svc charm.Definition) (machine.Machine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.machineForService(svc.Name)
}

func (c *Controller) machineForService(name string) (machine.Machine, bool) {
	id, ok := c.assignments.holder(name)
	if !ok {
		return nil, false
	}
	return c.inventory.MachineByID(id)
}

// RemoveAssignment removes svc from the machine with the given id. It does
// nothing if the service is not assigned there.
func (c *Controller) RemoveAssignment(machineID string, svc charm.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.assignments.remove(machineID, svc.Name)
}

// ClearAssignments removes every service from the machine with the given
// id.
func (c *Controller) ClearAssignments(machineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.assignments, machineID)
}

// AssignmentsFor returns the services assigned to the machine with the
// given id, in assignment order. The result is never nil.
func (c *Controller) AssignmentsFor(machineID string) []charm.Definition {
	c.mu.Lock()
	defer c.mu.Unlock()

	services := c.assignments[machineID]
	if services == nil {
		return []charm.Definition{}
	}
	return slices.Clone(services)
}

// ReplaceAll swaps in a copy of assignments. If any service is placed more
// than once an error satisfying [InvalidAssignmentState] is returned and
// the current assignments are left untouched.
func (c *Controller) ReplaceAll(assignments Assignments) error {
	if err := assignments.Validate(); err != nil {
		return errors.Trace(err)
	}
	replacement := assignments.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.assignments = replacement
	return nil
}

// Assignments returns a copy of the current assignment map.
func (c *Controller) Assignments() Assignments {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.assignments.Clone()
}

// GenerateDefaults computes the default layout for the current inventory
// without applying it.
func (c *Controller) GenerateDefaults() Assignments {
	var live []machine.Machine
	for _, m := range c.inventory.Machines() {
		if !machine.IsPlaceholder(m) {
			live = append(live, m)
		}
	}
	assignments := GenerateDefaults(live, c.services)
	if c.logger.IsDebugEnabled() {
		for _, id := range assignments.MachineIDs() {
			c.logger.Debugf("default assignment %q: %v", id, serviceNames(assignments[id]))
		}
	}
	return assignments
}

// ResetToDefaults replaces the assignments with a freshly generated
// default layout.
func (c *Controller) ResetToDefaults() {
	defaults := c.GenerateDefaults()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.assignments = defaults
}

// UnassignedServices returns the enabled services that have no machine in
// the current inventory, in catalog order.
func (c *Controller) UnassignedServices() []charm.Definition {
	c.mu.Lock()
	defer c.mu.Unlock()

	unassigned := []charm.Definition{}
	for _, svc := range c.services {
		if _, ok := c.machineForService(svc.Name); !ok {
			unassigned = append(unassigned, svc)
		}
	}
	return unassigned
}

func serviceNames(services []charm.Definition) []string {
	names := make([]string, len(services))
	for i, svc := range services {
		names[i] = svc.Name
	}
	return names
}
