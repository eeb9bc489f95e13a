// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/cloudinstall/core/charm"
)

const servicesDoc = `
Lists the services of the catalog in catalog order. Disabled services are
left out unless --all is given. With --deploy-order the services are
listed in the order they are deployed.
`

const servicesExamples = `
    cloud-place services
    cloud-place services --all --format yaml
    cloud-place services --catalog-file my-catalog.yaml --deploy-order
`

// NewServicesCommand returns a command listing the service catalog.
func NewServicesCommand() cmd.Command {
	return &servicesCommand{}
}

type servicesCommand struct {
	baseCommand

	out         cmd.Output
	all         bool
	deployOrder bool
}

// Info implements cmd.Command.
func (c *servicesCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "services",
		Purpose:  "List the services that can be placed.",
		Doc:      servicesDoc,
		Examples: servicesExamples,
		SeeAlso:  []string{"machines", "placement"},
	}
}

// SetFlags implements cmd.Command.
func (c *servicesCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.BoolVar(&c.all, "all", false, "Include disabled services")
	f.BoolVar(&c.deployOrder, "deploy-order", false, "List services in deployment order")
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatServicesTabular,
	})
}

// Run implements cmd.Command.
func (c *servicesCommand) Run(ctx *cmd.Context) error {
	if err := c.resolveSettings(ctx); err != nil {
		return errors.Trace(err)
	}
	cat, err := c.loadCatalog(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	defs := cat.Definitions()
	if !c.all {
		defs = charm.Enabled(defs)
	}
	if c.deployOrder {
		charm.SortByDeployPriority(defs)
	}
	services := []serviceInfo{}
	for _, d := range defs {
		services = append(services, newServiceInfo(d))
	}
	return c.out.Write(ctx, services)
}
