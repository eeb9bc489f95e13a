// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package charm

import (
	"fmt"
	"slices"
)

// Definition describes a deployable service role from the charm catalog.
// Definitions are owned by the catalog and never modified after loading;
// Name is unique within a catalog.
type Definition struct {
	// Name is the charm name, for example "nova-compute".
	Name string

	// DisplayName is the label shown to users.
	DisplayName string

	// Isolate marks a service that must be given a machine of its own.
	Isolate bool

	// Disabled services are skipped by placement.
	Disabled bool

	// Subordinate charms are deployed alongside a principal.
	Subordinate bool

	// DeployPriority orders deployment; lower values deploy first.
	DeployPriority int

	// IsCore marks services required by every install.
	IsCore bool

	// Revision pins a charm revision; zero means latest.
	Revision int

	// Channel is the store channel the charm is deployed from.
	Channel Channel
}

// Label returns the display name, falling back to the charm name.
func (d Definition) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

func (d Definition) String() string {
	return fmt.Sprintf("%s (%s)", d.Label(), d.Name)
}

// Enabled returns the definitions that are not disabled, preserving order.
func Enabled(defs []Definition) []Definition {
	enabled := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if !d.Disabled {
			enabled = append(enabled, d)
		}
	}
	return enabled
}

// SortByDeployPriority sorts defs in place so that lower priorities come
// first. Definitions with equal priority keep their relative order.
func SortByDeployPriority(defs []Definition) {
	slices.SortStableFunc(defs, func(a, b Definition) int {
		return a.DeployPriority - b.DeployPriority
	})
}
