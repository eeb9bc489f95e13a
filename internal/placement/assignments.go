// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package placement

import (
	"slices"
	"sort"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/juju/cloudinstall/core/charm"
)

// Assignments maps a machine instance id to the services placed on it, in
// assignment order. A service, identified by name, appears under at most
// one key. A missing key and an empty list both mean "nothing assigned".
type Assignments map[string][]charm.Definition

// Clone returns a deep copy of a, dropping empty entries.
func (a Assignments) Clone() Assignments {
	out := make(Assignments, len(a))
	for id, services := range a {
		if len(services) == 0 {
			continue
		}
		out[id] = slices.Clone(services)
	}
	return out
}

// MachineIDs returns the keys with at least one service, sorted.
func (a Assignments) MachineIDs() []string {
	ids := make([]string, 0, len(a))
	for id, services := range a {
		if len(services) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// holder returns the machine id holding the named service.
func (a Assignments) holder(name string) (string, bool) {
	for id, services := range a {
		if indexOf(services, name) >= 0 {
			return id, true
		}
	}
	return "", false
}

// remove drops the named service from the machine's list, deleting the
// key once the list is empty.
func (a Assignments) remove(machineID, name string) {
	services := a[machineID]
	i := indexOf(services, name)
	if i < 0 {
		return
	}
	services = slices.Delete(services, i, i+1)
	if len(services) == 0 {
		delete(a, machineID)
		return
	}
	a[machineID] = services
}

// Validate checks that no service is placed more than once.
func (a Assignments) Validate() error {
	owners := make(map[string]string)
	// Walk keys in a fixed order so the reported conflict is stable.
	for _, id := range a.MachineIDs() {
		local := set.NewStrings()
		for _, svc := range a[id] {
			if local.Contains(svc.Name) {
				return errors.Annotatef(InvalidAssignmentState,
					"service %q listed twice on machine %q", svc.Name, id)
			}
			local.Add(svc.Name)
			if other, ok := owners[svc.Name]; ok {
				return errors.Annotatef(InvalidAssignmentState,
					"service %q assigned to both %q and %q", svc.Name, other, id)
			}
			owners[svc.Name] = id
		}
	}
	return nil
}

func indexOf(services []charm.Definition, name string) int {
	return slices.IndexFunc(services, func(d charm.Definition) bool {
		return d.Name == name
	})
}
