// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package machine

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type machineSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&machineSuite{})

func (*machineSuite) TestFirstAvailable(c *gc.C) {
	c.Check(FirstAvailable.InstanceID(), gc.Equals, "first-available")
	c.Check(FirstAvailable.Hostname(), gc.Equals, "First Available")
	c.Check(IsPlaceholder(FirstAvailable), jc.IsTrue)
}

func (*machineSuite) TestNodeIsNotPlaceholder(c *gc.C) {
	n := NewNode(NodeArgs{InstanceID: "node-1"})
	c.Check(IsPlaceholder(n), jc.IsFalse)
}

func (*machineSuite) TestNodeHostnameFallback(c *gc.C) {
	tests := []struct {
		args     NodeArgs
		hostname string
	}{{
		args:     NodeArgs{MachineID: "1", InstanceID: "i-1", DNSName: "node1.maas"},
		hostname: "node1.maas",
	}, {
		args:     NodeArgs{MachineID: "1", InstanceID: "i-1"},
		hostname: "1",
	}, {
		args:     NodeArgs{InstanceID: "i-1"},
		hostname: "i-1",
	}}
	for i, test := range tests {
		c.Logf("test %d: %+v", i, test.args)
		c.Check(NewNode(test.args).Hostname(), gc.Equals, test.hostname)
	}
}

func (*machineSuite) TestContainersAreLazyAndRestartable(c *gc.C) {
	n := NewNode(NodeArgs{
		MachineID:  "1",
		InstanceID: "i-1",
		Containers: []NodeArgs{
			{MachineID: "1/lxc/0", InstanceID: "juju-1-lxc-0"},
			{MachineID: "1/lxc/1", InstanceID: "juju-1-lxc-1"},
		},
	})
	c.Assert(n.HasContainers(), jc.IsTrue)

	for range 2 {
		var ids []string
		for m := range n.Containers() {
			ids = append(ids, m.InstanceID())
		}
		c.Check(ids, jc.DeepEquals, []string{"juju-1-lxc-0", "juju-1-lxc-1"})
	}

	var first []string
	for m := range n.Containers() {
		first = append(first, m.InstanceID())
		break
	}
	c.Check(first, jc.DeepEquals, []string{"juju-1-lxc-0"})
}

func (*machineSuite) TestContainerLookup(c *gc.C) {
	n := NewNode(NodeArgs{
		MachineID:  "1",
		Containers: []NodeArgs{{MachineID: "1/lxc/0", DNSName: "c0"}},
	})
	child, ok := n.Container("1/lxc/0")
	c.Assert(ok, jc.IsTrue)
	c.Check(child.Hostname(), gc.Equals, "c0")

	_, ok = n.Container("1/lxc/9")
	c.Check(ok, jc.IsFalse)
}

func (*machineSuite) TestNodeCopiesContainers(c *gc.C) {
	containers := []NodeArgs{{MachineID: "1/lxc/0"}}
	n := NewNode(NodeArgs{MachineID: "1", Containers: containers})
	containers[0].MachineID = "changed"

	_, ok := n.Container("1/lxc/0")
	c.Check(ok, jc.IsTrue)
}

func (*machineSuite) TestNodeString(c *gc.C) {
	hw, err := ParseHardware("cpu-cores=4 mem=8192M root-disk=20480M")
	c.Assert(err, jc.ErrorIsNil)
	n := NewNode(NodeArgs{
		MachineID:  "1",
		DNSName:    "node1.maas",
		AgentState: "started",
		Hardware:   hw,
	})
	c.Check(n.String(), gc.Equals,
		"id: 1, state: started, dns-name: node1.maas, mem: 8.0 GiB, storage: 20 GiB, cpus: 4")
}
