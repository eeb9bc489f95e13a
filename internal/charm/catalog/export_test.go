// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package catalog

import "github.com/juju/cloudinstall/core/charm"

// New returns a catalog holding defs, for tests.
func New(defs ...charm.Definition) *Catalog {
	return &Catalog{defs: defs}
}
