// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/cloudinstall/internal/charm/catalog"
	"github.com/juju/cloudinstall/internal/inventory"
	internallogger "github.com/juju/cloudinstall/internal/logger"
	"github.com/juju/cloudinstall/provider/jujustatus"
	"github.com/juju/cloudinstall/provider/maas"
)

var logger = internallogger.GetLogger("cmd")

// baseCommand holds the flags shared by every cloud-place command: where
// the machines come from and which catalog to place.
type baseCommand struct {
	cmd.CommandBase

	configFile string
	settings   fileConfig

	// clock drives MAAS retries and inventory polling.
	clock clock.Clock
}

// SetFlags implements cmd.Command.
func (c *baseCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Path to a YAML file with default settings")
	f.StringVar(&c.settings.StatusFile, "status-file", "", "Read machines from a saved 'juju status --format yaml' document")
	f.StringVar(&c.settings.MAASServer, "maas-server", "", "Read machines from the MAAS server at this URL")
	f.StringVar(&c.settings.MAASOAuth, "maas-oauth", "", "MAAS API key (consumer:token:secret)")
	f.StringVar(&c.settings.MAASAgentName, "maas-agent-name", "", "Only list MAAS machines acquired by this agent")
	f.StringVar(&c.settings.CatalogFile, "catalog-file", "", "Read the service catalog from this YAML file")
}

// resolveSettings merges the config file, if any, under the flags.
// Relative paths in the file are taken relative to the file itself.
func (c *baseCommand) resolveSettings(ctx *cmd.Context) error {
	if c.configFile == "" {
		return nil
	}
	path := ctx.AbsPath(c.configFile)
	fromFile, err := readConfigFile(path)
	if err != nil {
		return errors.Trace(err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&fromFile.StatusFile, &fromFile.CatalogFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	c.settings.merge(fromFile)
	return nil
}

func (c *baseCommand) loadCatalog(ctx *cmd.Context) (*catalog.Catalog, error) {
	if c.settings.CatalogFile == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(ctx.AbsPath(c.settings.CatalogFile))
	return cat, errors.Trace(err)
}

// newInventory builds the inventory from the configured source and takes
// its first snapshot. The source is also returned so callers can keep it
// fresh; it is nil when no source is configured and the inventory holds
// only the placeholder.
func (c *baseCommand) newInventory(ctx *cmd.Context) (*inventory.Inventory, inventory.Refresher, error) {
	s := c.settings
	if s.StatusFile != "" && s.MAASServer != "" {
		return nil, nil, errors.New("--status-file and --maas-server cannot be used together")
	}

	var source interface {
		inventory.Source
		inventory.Refresher
	}
	switch {
	case s.StatusFile != "":
		source = jujustatus.NewFileSource(ctx.AbsPath(s.StatusFile), logger.Child("jujustatus"))
	case s.MAASServer != "":
		attrs := map[string]interface{}{
			maas.ServerKey:    s.MAASServer,
			maas.OAuthKey:     s.MAASOAuth,
			maas.AgentNameKey: s.MAASAgentName,
		}
		cfg, err := maas.ParseConfig(attrs)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		src, err := maas.NewSource(cfg, c.getClock(), logger.Child("maas"))
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		source = src
	default:
		logger.Debugf("no machine source configured")
		return inventory.New(nil, logger.Child("inventory")), nil, nil
	}

	stdCtx, cancel := interruptContext(ctx)
	defer cancel()
	if err := source.Refresh(stdCtx); err != nil {
		return nil, nil, errors.Trace(err)
	}
	return inventory.New(source, logger.Child("inventory")), source, nil
}

func (c *baseCommand) getClock() clock.Clock {
	if c.clock == nil {
		return clock.WallClock
	}
	return c.clock
}

// interruptContext returns a context that is cancelled when the user
// presses ctrl+c.
func interruptContext(ctx *cmd.Context) (context.Context, func()) {
	stdCtx, cancel := context.WithCancel(context.Background())
	interrupted := make(chan os.Signal, 1)
	ctx.InterruptNotify(interrupted)
	done := make(chan struct{})
	go func() {
		select {
		case <-interrupted:
			ctx.Infof("ctrl+c detected, aborting...")
			cancel()
		case <-done:
		}
	}()
	return stdCtx, func() {
		ctx.StopInterruptNotify(interrupted)
		close(done)
		cancel()
	}
}
