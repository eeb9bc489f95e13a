// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package inventory

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/worker/v4"
	"gopkg.in/tomb.v2"

	"github.com/juju/cloudinstall/core/logger"
)

// PollerConfig holds the dependencies of a Poller.
type PollerConfig struct {
	Refresher Refresher
	Clock     clock.Clock
	Interval  time.Duration
	Logger    logger.Logger

	// Refreshed, if set, is called after every successful refresh.
	Refreshed func()
}

// Validate returns an error if the config cannot drive a Poller.
func (config PollerConfig) Validate() error {
	if config.Refresher == nil {
		return errors.NotValidf("nil Refresher")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Interval <= 0 {
		return errors.NotValidf("non-positive Interval")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	return nil
}

// Poller is a worker that keeps a cached inventory source fresh. It
// refreshes immediately on start and then once per interval. Refresh
// failures are logged and retried on the next tick.
type Poller struct {
	tomb   tomb.Tomb
	config PollerConfig
}

var _ worker.Worker = (*Poller)(nil)

// NewPoller starts a Poller.
func NewPoller(config PollerConfig) (*Poller, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	p := &Poller{config: config}
	p.tomb.Go(p.loop)
	return p, nil
}

// Kill is part of the worker.Worker interface.
func (p *Poller) Kill() {
	p.tomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (p *Poller) Wait() error {
	return p.tomb.Wait()
}

func (p *Poller) loop() error {
	ctx := p.tomb.Context(context.Background())
	for {
		p.refresh(ctx)
		select {
		case <-p.tomb.Dying():
			return tomb.ErrDying
		case <-p.config.Clock.After(p.config.Interval):
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.config.Refresher.Refresh(ctx); err != nil {
		if ctx.Err() == nil {
			p.config.Logger.Warningf("refreshing inventory: %v", err)
		}
		return
	}
	p.config.Logger.Debugf("inventory refreshed")
	if p.config.Refreshed != nil {
		p.config.Refreshed()
	}
}
