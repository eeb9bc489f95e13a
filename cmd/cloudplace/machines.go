// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"time"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/worker/v4"

	"github.com/juju/cloudinstall/internal/inventory"
)

const machinesDoc = `
Lists the machines services can be placed on. The "first-available"
placeholder is always listed first, followed by the machines reported by
the configured source.

Machines are read from a saved juju status document (--status-file) or
from a MAAS server (--maas-server and --maas-oauth). With neither, only the
placeholder is listed.

With --watch the source is polled at the given interval and the listing
is written again after every successful refresh, until interrupted.
`

const machinesExamples = `
    cloud-place machines --status-file status.yaml
    cloud-place machines --containers --status-file status.yaml
    cloud-place machines --maas-server http://maas.example/MAAS --maas-oauth a:b:c
    cloud-place machines --watch 30s --maas-server http://maas.example/MAAS --maas-oauth a:b:c
`

// NewMachinesCommand returns a command listing the machine inventory.
func NewMachinesCommand() cmd.Command {
	return &machinesCommand{}
}

type machinesCommand struct {
	baseCommand

	out        cmd.Output
	containers bool
	watch      time.Duration

	// stop ends a watch in place of an interrupt.
	stop <-chan struct{}
	// rendered, if set, is called after each watch listing is written.
	rendered func()
}

// Info implements cmd.Command.
func (c *machinesCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "machines",
		Purpose:  "List the machines available for placement.",
		Doc:      machinesDoc,
		Examples: machinesExamples,
		SeeAlso:  []string{"placement", "services"},
	}
}

// SetFlags implements cmd.Command.
func (c *machinesCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.BoolVar(&c.containers, "containers", false, "Include the containers hosted on each machine")
	f.DurationVar(&c.watch, "watch", 0, "Poll the machine source at this interval and list again after each refresh")
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatMachinesTabular,
	})
}

// Init implements cmd.Command.
func (c *machinesCommand) Init(args []string) error {
	if c.watch < 0 {
		return errors.NotValidf("negative --watch interval")
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *machinesCommand) Run(ctx *cmd.Context) error {
	if err := c.resolveSettings(ctx); err != nil {
		return errors.Trace(err)
	}
	inv, refresher, err := c.newInventory(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	if c.watch == 0 {
		return c.write(ctx, inv)
	}
	if refresher == nil {
		return errors.New("--watch needs --status-file or --maas-server")
	}
	return errors.Trace(c.watchMachines(ctx, inv, refresher))
}

func (c *machinesCommand) write(ctx *cmd.Context, inv *inventory.Inventory) error {
	machines := []machineInfo{}
	for _, m := range inv.Machines() {
		machines = append(machines, newMachineInfo(m, c.containers))
	}
	return c.out.Write(ctx, machines)
}

// watchMachines runs an inventory poller and writes the listing after each
// refresh until the user interrupts.
func (c *machinesCommand) watchMachines(ctx *cmd.Context, inv *inventory.Inventory, refresher inventory.Refresher) error {
	refreshed := make(chan struct{}, 1)
	poller, err := inventory.NewPoller(inventory.PollerConfig{
		Refresher: refresher,
		Clock:     c.getClock(),
		Interval:  c.watch,
		Logger:    logger.Child("poller"),
		Refreshed: func() {
			select {
			case refreshed <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer func() { _ = worker.Stop(poller) }()

	stdCtx, cancel := interruptContext(ctx)
	defer cancel()
	for {
		select {
		case <-stdCtx.Done():
			return nil
		case <-c.stop:
			return nil
		case <-refreshed:
			if err := c.write(ctx, inv); err != nil {
				return errors.Trace(err)
			}
			if c.rendered != nil {
				c.rendered()
			}
		}
	}
}
