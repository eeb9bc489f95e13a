// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package placement

import "github.com/juju/errors"

const (
	// InvalidAssignmentState is returned when a replacement assignment map
	// places a service on more than one machine.
	InvalidAssignmentState = errors.ConstError("invalid assignment state")
)
