// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package maas lists the machines of a MAAS server as an inventory source.
package maas

import (
	"context"
	"strings"
	"sync"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gomaasapi/v2"
	"github.com/juju/retry"

	"github.com/juju/cloudinstall/core/logger"
	"github.com/juju/cloudinstall/core/machine"
	"github.com/juju/cloudinstall/internal/inventory"
)

const mib = 1024 * 1024

// getController is patched in tests.
var getController = func(server, apiKey string) (gomaasapi.Controller, error) {
	return gomaasapi.NewController(gomaasapi.ControllerArgs{
		BaseURL: server,
		APIKey:  apiKey,
	})
}

// Source is an inventory source backed by a MAAS server. Machines returns
// the snapshot taken by the last successful Refresh.
type Source struct {
	config Config
	clock  clock.Clock
	logger logger.Logger

	mu         sync.Mutex
	controller gomaasapi.Controller
	machines   []machine.Machine
	fetched    bool
}

var (
	_ inventory.Source    = (*Source)(nil)
	_ inventory.Refresher = (*Source)(nil)
)

// NewSource returns a Source for the given config. No request is made
// until Refresh is called.
func NewSource(config Config, clock clock.Clock, logger logger.Logger) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if clock == nil {
		return nil, errors.NotValidf("nil clock")
	}
	return &Source{
		config: config,
		clock:  clock,
		logger: logger,
	}, nil
}

// Machines is part of the inventory.Source interface. It fails until a
// Refresh has succeeded.
func (s *Source) Machines() ([]machine.Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetched {
		return nil, errors.NotYetAvailablef("machines from %s", s.config.Server)
	}
	return append([]machine.Machine(nil), s.machines...), nil
}

// Refresh is part of the inventory.Refresher interface. It lists the
// machines from MAAS, retrying transient failures, and replaces the
// snapshot on success. On failure the previous snapshot is kept.
func (s *Source) Refresh(ctx context.Context) error {
	var listed []gomaasapi.Machine
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			controller, err := s.getController()
			if err != nil {
				return errors.Trace(err)
			}
			listed, err = controller.Machines(gomaasapi.MachinesArgs{
				AgentName: s.config.AgentName,
			})
			return errors.Trace(err)
		},
		IsFatalError: isFatal,
		NotifyFunc: func(err error, attempt int) {
			s.logger.Debugf("attempt %d listing machines from %s: %v", attempt, s.config.Server, err)
		},
		Attempts: s.config.Attempts,
		Delay:    s.config.RetryDelay,
		Clock:    s.clock,
		Stop:     ctx.Done(),
	})
	if retry.IsAttemptsExceeded(err) || retry.IsDurationExceeded(err) || retry.IsRetryStopped(err) {
		err = retry.LastError(err)
	}
	if err != nil {
		return errors.Annotatef(err, "listing machines from %s", s.config.Server)
	}

	machines := make([]machine.Machine, 0, len(listed))
	for _, m := range listed {
		machines = append(machines, toNode(m))
	}
	s.logger.Debugf("listed %d machines from %s", len(machines), s.config.Server)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines = machines
	s.fetched = true
	return nil
}

func (s *Source) getController() (gomaasapi.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller != nil {
		return s.controller, nil
	}
	controller, err := getController(s.config.Server, s.config.APIKey)
	if err != nil {
		return nil, errors.Annotate(err, "connecting to MAAS")
	}
	s.controller = controller
	return controller, nil
}

// isFatal reports whether retrying cannot help.
func isFatal(err error) bool {
	cause := errors.Cause(err)
	return gomaasapi.IsPermissionError(cause) ||
		gomaasapi.IsUnsupportedVersionError(cause) ||
		gomaasapi.IsBadRequestError(cause)
}

func toNode(m gomaasapi.Machine) *machine.Node {
	var hw machine.Hardware
	// MAAS reports architectures as "amd64/generic".
	if arch, _, _ := strings.Cut(m.Architecture(), "/"); arch != "" {
		hw.Arch = &arch
	}
	if cores := m.CPUCount(); cores > 0 {
		n := uint64(cores)
		hw.CPUCores = &n
	}
	if mem := m.Memory(); mem > 0 {
		n := uint64(mem)
		hw.Mem = &n
	}
	var disk uint64
	for _, device := range m.PhysicalBlockDevices() {
		disk += device.Size()
	}
	if disk > 0 {
		n := disk / mib
		hw.RootDisk = &n
	}

	dnsName := m.FQDN()
	if dnsName == "" {
		dnsName = m.Hostname()
	}
	return machine.NewNode(machine.NodeArgs{
		MachineID:  m.Hostname(),
		InstanceID: m.SystemID(),
		DNSName:    dnsName,
		AgentState: strings.ToLower(m.StatusName()),
		Hardware:   hw,
	})
}
