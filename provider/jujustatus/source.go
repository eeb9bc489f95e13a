// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package jujustatus

import (
	"context"
	"os"
	"sync"

	"github.com/juju/errors"

	"github.com/juju/cloudinstall/core/logger"
	"github.com/juju/cloudinstall/core/machine"
	"github.com/juju/cloudinstall/internal/inventory"
)

// FileSource is an inventory source reading a saved juju status document.
// Machines returns the snapshot taken by the last successful Refresh.
type FileSource struct {
	path   string
	logger logger.Logger

	mu       sync.Mutex
	machines []machine.NodeArgs
	fetched  bool
}

var (
	_ inventory.Source    = (*FileSource)(nil)
	_ inventory.Refresher = (*FileSource)(nil)
)

// NewFileSource returns a source for the status document at path. The
// file is not read until Refresh is called.
func NewFileSource(path string, logger logger.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Machines is part of the inventory.Source interface. Each call returns
// fresh Nodes built from the last snapshot.
func (s *FileSource) Machines() ([]machine.Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetched {
		return nil, errors.NotYetAvailablef("machines from %q", s.path)
	}
	result := make([]machine.Machine, len(s.machines))
	for i, args := range s.machines {
		result[i] = machine.NewNode(args)
	}
	return result, nil
}

// Refresh is part of the inventory.Refresher interface. A document that
// cannot be read or parsed leaves the previous snapshot in place.
func (s *FileSource) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return errors.Annotate(err, "reading juju status")
	}
	defer func() { _ = f.Close() }()

	machines, err := Read(f)
	if err != nil {
		return errors.Annotatef(err, "reading %q", s.path)
	}
	s.logger.Debugf("read %d machines from %q", len(machines), s.path)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines = machines
	s.fetched = true
	return nil
}
