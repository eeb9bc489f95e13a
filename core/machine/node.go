// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package machine

import (
	"fmt"
	"iter"
)

// NodeArgs holds everything a provider knows about a real machine.
type NodeArgs struct {
	// MachineID is the provider or juju machine id, for example "1" or
	// "1/lxc/0". It is informational; assignments use InstanceID.
	MachineID string

	// InstanceID uniquely identifies the machine within an inventory
	// snapshot.
	InstanceID string

	// DNSName is the machine's hostname as reported by the provider.
	DNSName string

	// AgentState is the provider's liveness state for the machine.
	AgentState string

	Hardware Hardware

	// Containers describes machines hosted on this one, in provider order.
	Containers []NodeArgs
}

// Node is a real machine reported by an inventory provider. It is
// immutable; refreshed data arrives as a new Node.
type Node struct {
	args NodeArgs
}

var _ Machine = (*Node)(nil)

// NewNode returns a Node for the given arguments.
func NewNode(args NodeArgs) *Node {
	args.Containers = append([]NodeArgs(nil), args.Containers...)
	return &Node{args: args}
}

// InstanceID implements Machine.
func (n *Node) InstanceID() string {
	return n.args.InstanceID
}

// Hostname implements Machine. Machines without a dns name fall back to
// their machine id, then their instance id.
func (n *Node) Hostname() string {
	switch {
	case n.args.DNSName != "":
		return n.args.DNSName
	case n.args.MachineID != "":
		return n.args.MachineID
	}
	return n.args.InstanceID
}

// MachineID returns the provider machine id.
func (n *Node) MachineID() string {
	return n.args.MachineID
}

// DNSName returns the dns name reported by the provider, which may be empty.
func (n *Node) DNSName() string {
	return n.args.DNSName
}

// AgentState returns the provider liveness state.
func (n *Node) AgentState() string {
	return n.args.AgentState
}

// Hardware returns the machine's hardware characteristics.
func (n *Node) Hardware() Hardware {
	return n.args.Hardware
}

// HasContainers reports whether the machine hosts any containers.
func (n *Node) HasContainers() bool {
	return len(n.args.Containers) > 0
}

// Containers yields the machines hosted on this one. Each child Node is
// built only when the iteration reaches it.
func (n *Node) Containers() iter.Seq[Machine] {
	return func(yield func(Machine) bool) {
		for _, args := range n.args.Containers {
			if !yield(NewNode(args)) {
				return
			}
		}
	}
}

// Container returns the hosted machine with the given machine id.
func (n *Node) Container(machineID string) (*Node, bool) {
	for _, args := range n.args.Containers {
		if args.MachineID == machineID {
			return NewNode(args), true
		}
	}
	return nil, false
}

func (n *Node) String() string {
	hw := n.args.Hardware
	return fmt.Sprintf("id: %s, state: %s, dns-name: %s, mem: %s, storage: %s, cpus: %s",
		n.args.MachineID, n.args.AgentState, n.args.DNSName,
		hw.MemString(), hw.StorageString(), hw.CPUString())
}
