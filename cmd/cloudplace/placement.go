// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/cloudinstall/core/charm"
	"github.com/juju/cloudinstall/core/machine"
	"github.com/juju/cloudinstall/internal/inventory"
	"github.com/juju/cloudinstall/internal/placement"
)

const placementDoc = `
Shows where each service would be placed. Placement starts from the
default layout: the first machine hosts every service that does not need
a machine of its own, and each isolated service takes the next machine.
Once the machines run out, services are left on the "first-available"
placeholder.

The layout can be adjusted with --assign, --remove and --clear, which are
applied in the order given. Machines may be named by instance id or
hostname.
`

const placementExamples = `
    cloud-place placement --status-file status.yaml
    cloud-place placement --status-file status.yaml --assign nova-compute=node3.maas
    cloud-place placement --clear first-available --assign ceph=node4.maas --format yaml
`

// NewPlacementCommand returns a command showing the service placement.
func NewPlacementCommand() cmd.Command {
	return &placementCommand{}
}

type placementOp struct {
	kind    string
	service string
	machine string
}

// opValue implements gnuflag.Value, collecting one kind of placement
// operation into a list shared by all kinds.
type opValue struct {
	kind string
	ops  *[]placementOp
}

func (v opValue) String() string {
	return ""
}

func (v opValue) Set(s string) error {
	op := placementOp{kind: v.kind}
	switch v.kind {
	case "assign":
		service, machine, ok := strings.Cut(s, "=")
		if !ok || service == "" || machine == "" {
			return errors.NotValidf("assignment %q (expected <service>=<machine>)", s)
		}
		op.service, op.machine = service, machine
	case "remove":
		op.service = s
	case "clear":
		op.machine = s
	}
	*v.ops = append(*v.ops, op)
	return nil
}

type placementCommand struct {
	baseCommand

	out cmd.Output
	ops []placementOp
}

// Info implements cmd.Command.
func (c *placementCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "placement",
		Purpose:  "Show and adjust where services are placed.",
		Doc:      placementDoc,
		Examples: placementExamples,
		SeeAlso:  []string{"machines", "services"},
	}
}

// SetFlags implements cmd.Command.
func (c *placementCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.Var(opValue{kind: "assign", ops: &c.ops}, "assign", "Place a service on a machine (<service>=<machine>)")
	f.Var(opValue{kind: "remove", ops: &c.ops}, "remove", "Leave a service unassigned")
	f.Var(opValue{kind: "clear", ops: &c.ops}, "clear", "Remove every service from a machine")
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatPlacementTabular,
	})
}

// Run implements cmd.Command.
func (c *placementCommand) Run(ctx *cmd.Context) error {
	if err := c.resolveSettings(ctx); err != nil {
		return errors.Trace(err)
	}
	cat, err := c.loadCatalog(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	inv, _, err := c.newInventory(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	ctrl := placement.NewController(inv, cat.Definitions(), logger.Child("placement"))
	for _, op := range c.ops {
		if err := c.apply(ctrl, inv, op); err != nil {
			return errors.Trace(err)
		}
	}
	return c.out.Write(ctx, newPlacementInfo(ctrl))
}

func (c *placementCommand) apply(ctrl *placement.Controller, inv *inventory.Inventory, op placementOp) error {
	switch op.kind {
	case "assign":
		svc, err := findService(ctrl, op.service)
		if err != nil {
			return errors.Trace(err)
		}
		m, err := findMachine(inv, op.machine)
		if err != nil {
			return errors.Trace(err)
		}
		ctrl.Assign(m.InstanceID(), svc)
	case "remove":
		svc, err := findService(ctrl, op.service)
		if err != nil {
			return errors.Trace(err)
		}
		for id, services := range ctrl.Assignments() {
			for _, assigned := range services {
				if assigned.Name == svc.Name {
					ctrl.RemoveAssignment(id, svc)
				}
			}
		}
	case "clear":
		m, err := findMachine(inv, op.machine)
		if err != nil {
			return errors.Trace(err)
		}
		ctrl.ClearAssignments(m.InstanceID())
	}
	return nil
}

func findService(ctrl *placement.Controller, name string) (charm.Definition, error) {
	for _, svc := range ctrl.ServiceDefinitions() {
		if svc.Name == name {
			return svc, nil
		}
	}
	return charm.Definition{}, errors.NotFoundf("service %q", name)
}

// findMachine resolves a machine by instance id, then by hostname.
func findMachine(inv *inventory.Inventory, name string) (machine.Machine, error) {
	if m, ok := inv.MachineByID(name); ok {
		return m, nil
	}
	for _, m := range inv.Machines() {
		if m.Hostname() == name {
			return m, nil
		}
	}
	return nil, errors.NotFoundf("machine %q", name)
}
