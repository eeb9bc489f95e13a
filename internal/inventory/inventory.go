// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package inventory presents the set of machines services can be assigned
// to: the FirstAvailable placeholder followed by the machines reported by
// a provider.
package inventory

import (
	"context"
	"iter"
	"slices"

	"github.com/juju/collections/set"

	"github.com/juju/cloudinstall/core/logger"
	"github.com/juju/cloudinstall/core/machine"
)

// Source supplies the machines known to a provider, in provider order.
type Source interface {
	Machines() ([]machine.Machine, error)
}

// Refresher is implemented by sources that cache a remote snapshot and
// need to be told when to re-fetch it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Inventory is a read-only view over the assignable machines.
// It is safe for concurrent use if its Source is.
type Inventory struct {
	source Source
	logger logger.Logger
}

// New returns an Inventory over source. A nil source reports no machines.
func New(source Source, logger logger.Logger) *Inventory {
	return &Inventory{
		source: source,
		logger: logger,
	}
}

// Machines returns the placeholder followed by the source's machines in
// source order. It never fails: if the source does, only the placeholder is
// returned. Machines whose id is already taken are dropped.
func (i *Inventory) Machines() []machine.Machine {
	return append([]machine.Machine{machine.FirstAvailable}, i.live()...)
}

func (i *Inventory) live() []machine.Machine {
	if i.source == nil {
		return nil
	}
	machines, err := i.source.Machines()
	if err != nil {
		i.logger.Warningf("cannot list machines, using placeholder only: %v", err)
		return nil
	}

	seen := set.NewStrings(machine.FirstAvailableID)
	result := make([]machine.Machine, 0, len(machines))
	for _, m := range machines {
		if m == nil {
			continue
		}
		id := m.InstanceID()
		if seen.Contains(id) {
			i.logger.Warningf("ignoring machine %q: duplicate instance id %q", m.Hostname(), id)
			continue
		}
		seen.Add(id)
		result = append(result, m)
	}
	return result
}

// MachineByID returns the machine with the given instance id. Containers of
// live machines are searched after the machines themselves.
func (i *Inventory) MachineByID(id string) (machine.Machine, bool) {
	machines := i.Machines()
	for _, m := range machines {
		if m.InstanceID() == id {
			return m, true
		}
	}
	for _, m := range machines {
		for child := range containers(m) {
			if child.InstanceID() == id {
				return child, true
			}
		}
	}
	return nil, false
}

// ContainersOf yields the machines hosted on m. The sequence is evaluated
// lazily against the current source state each time it is iterated, so it
// reflects refreshes between iterations. Placeholder and unknown machines
// host nothing.
func (i *Inventory) ContainersOf(m machine.Machine) iter.Seq[machine.Machine] {
	return func(yield func(machine.Machine) bool) {
		if m == nil || machine.IsPlaceholder(m) {
			return
		}
		id := m.InstanceID()
		for _, current := range i.live() {
			if current.InstanceID() != id {
				continue
			}
			for child := range containers(current) {
				if !yield(child) {
					return
				}
			}
			return
		}
	}
}

func containers(m machine.Machine) iter.Seq[machine.Machine] {
	if n, ok := m.(*machine.Node); ok {
		return n.Containers()
	}
	return func(func(machine.Machine) bool) {}
}

// Static is a Source over a fixed list of machines.
type Static []machine.Machine

// Machines implements Source.
func (s Static) Machines() ([]machine.Machine, error) {
	return slices.Clone(s), nil
}
