// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
)

// NewWatchingMachinesCommandForTest returns a machines command driven by
// clk. Closing stop ends a watch; rendered is called after each listing.
func NewWatchingMachinesCommandForTest(clk clock.Clock, stop <-chan struct{}, rendered func()) cmd.Command {
	c := &machinesCommand{stop: stop, rendered: rendered}
	c.clock = clk
	return c
}
