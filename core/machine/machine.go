// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package machine

// Machine is a handle to a target that services can be assigned to. It is
// either a real machine reported by an inventory provider (a *Node) or the
// FirstAvailable placeholder.
type Machine interface {
	// InstanceID returns the identifier assignments are keyed by. It is
	// unique within one inventory snapshot.
	InstanceID() string

	// Hostname returns the name to display for the machine.
	Hostname() string
}

const (
	// FirstAvailableID is the instance id of the FirstAvailable placeholder.
	FirstAvailableID = "first-available"

	firstAvailableName = "First Available"
)

// FirstAvailable is the placeholder target meaning "whichever machine is
// chosen later". There is exactly one; it carries no hardware.
var FirstAvailable Machine = placeholder{
	id:   FirstAvailableID,
	name: firstAvailableName,
}

type placeholder struct {
	id   string
	name string
}

// InstanceID implements Machine.
func (p placeholder) InstanceID() string {
	return p.id
}

// Hostname implements Machine.
func (p placeholder) Hostname() string {
	return p.name
}

func (p placeholder) String() string {
	return "placeholder " + p.name
}

// IsPlaceholder reports whether m is the placeholder machine rather than
// one reported by a provider.
func IsPlaceholder(m Machine) bool {
	_, ok := m.(placeholder)
	return ok
}
