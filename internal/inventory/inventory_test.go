// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package inventory

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/cloudinstall/core/machine"
	loggertesting "github.com/juju/cloudinstall/testing"
)

type inventorySuite struct {
	testing.IsolationSuite

	source *MockSource
}

var _ = gc.Suite(&inventorySuite{})

func (s *inventorySuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.source = NewMockSource(ctrl)
	return ctrl
}

func node(id string, containers ...string) *machine.Node {
	args := machine.NodeArgs{
		MachineID:  id,
		InstanceID: "i-" + id,
		DNSName:    "node" + id + ".maas",
	}
	for _, cid := range containers {
		args.Containers = append(args.Containers, machine.NodeArgs{
			MachineID:  cid,
			InstanceID: "i-" + cid,
		})
	}
	return machine.NewNode(args)
}

func ids(machines []machine.Machine) []string {
	var out []string
	for _, m := range machines {
		out = append(out, m.InstanceID())
	}
	return out
}

func (s *inventorySuite) TestMachinesNilSource(c *gc.C) {
	inv := New(nil, loggertesting.NewCheckLogger(c))
	c.Assert(inv.Machines(), jc.DeepEquals, []machine.Machine{machine.FirstAvailable})
}

func (s *inventorySuite) TestMachinesPlaceholderFirst(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.source.EXPECT().Machines().Return([]machine.Machine{node("2"), node("0"), node("1")}, nil)

	inv := New(s.source, loggertesting.NewCheckLogger(c))
	c.Assert(ids(inv.Machines()), jc.DeepEquals, []string{"first-available", "i-2", "i-0", "i-1"})
}

func (s *inventorySuite) TestMachinesSourceError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.source.EXPECT().Machines().Return(nil, errors.New("boom"))

	log := &loggertesting.RecordingLogger{}
	inv := New(s.source, log)
	c.Assert(inv.Machines(), jc.DeepEquals, []machine.Machine{machine.FirstAvailable})
	c.Check(log.Warnings, jc.DeepEquals, []string{"cannot list machines, using placeholder only: boom"})
}

func (s *inventorySuite) TestMachinesDropsDuplicateIDs(c *gc.C) {
	defer s.setupMocks(c).Finish()

	clash := machine.NewNode(machine.NodeArgs{InstanceID: machine.FirstAvailableID, DNSName: "sneaky"})
	s.source.EXPECT().Machines().Return([]machine.Machine{node("0"), clash, nil, node("0")}, nil)

	log := &loggertesting.RecordingLogger{}
	inv := New(s.source, log)
	c.Assert(ids(inv.Machines()), jc.DeepEquals, []string{"first-available", "i-0"})
	c.Check(log.Warnings, gc.HasLen, 2)
}

func (s *inventorySuite) TestMachineByID(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.source.EXPECT().Machines().Return([]machine.Machine{node("0"), node("1", "1/lxc/0")}, nil).AnyTimes()
	inv := New(s.source, loggertesting.NewCheckLogger(c))

	m, ok := inv.MachineByID("first-available")
	c.Assert(ok, jc.IsTrue)
	c.Check(m, gc.Equals, machine.FirstAvailable)

	m, ok = inv.MachineByID("i-1")
	c.Assert(ok, jc.IsTrue)
	c.Check(m.Hostname(), gc.Equals, "node1.maas")

	m, ok = inv.MachineByID("i-1/lxc/0")
	c.Assert(ok, jc.IsTrue)
	c.Check(m.Hostname(), gc.Equals, "1/lxc/0")

	_, ok = inv.MachineByID("i-9")
	c.Check(ok, jc.IsFalse)
}

func (s *inventorySuite) TestContainersOfIsLazy(c *gc.C) {
	defer s.setupMocks(c).Finish()

	inv := New(s.source, loggertesting.NewCheckLogger(c))

	// Building the sequence must not touch the source.
	seq := inv.ContainersOf(node("1"))

	s.source.EXPECT().Machines().Return([]machine.Machine{node("1", "1/lxc/0", "1/lxc/1")}, nil)
	var got []string
	for m := range seq {
		got = append(got, m.InstanceID())
	}
	c.Check(got, jc.DeepEquals, []string{"i-1/lxc/0", "i-1/lxc/1"})
}

func (s *inventorySuite) TestContainersOfReflectsCurrentState(c *gc.C) {
	defer s.setupMocks(c).Finish()

	gomock.InOrder(
		s.source.EXPECT().Machines().Return([]machine.Machine{node("1", "1/lxc/0")}, nil),
		s.source.EXPECT().Machines().Return([]machine.Machine{node("1", "1/lxc/0", "1/lxc/1")}, nil),
	)
	inv := New(s.source, loggertesting.NewCheckLogger(c))
	seq := inv.ContainersOf(node("1"))

	var first, second []string
	for m := range seq {
		first = append(first, m.InstanceID())
	}
	for m := range seq {
		second = append(second, m.InstanceID())
	}
	c.Check(first, jc.DeepEquals, []string{"i-1/lxc/0"})
	c.Check(second, jc.DeepEquals, []string{"i-1/lxc/0", "i-1/lxc/1"})
}

func (s *inventorySuite) TestContainersOfEarlyStop(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.source.EXPECT().Machines().Return([]machine.Machine{node("1", "1/lxc/0", "1/lxc/1")}, nil)
	inv := New(s.source, loggertesting.NewCheckLogger(c))

	count := 0
	for range inv.ContainersOf(node("1")) {
		count++
		break
	}
	c.Check(count, gc.Equals, 1)
}

func (s *inventorySuite) TestContainersOfPlaceholder(c *gc.C) {
	defer s.setupMocks(c).Finish()

	inv := New(s.source, loggertesting.NewCheckLogger(c))
	for range inv.ContainersOf(machine.FirstAvailable) {
		c.Fatalf("placeholder has no containers")
	}
}

func (s *inventorySuite) TestContainersOfUnknownMachine(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.source.EXPECT().Machines().Return([]machine.Machine{node("0", "0/lxc/0")}, nil)
	inv := New(s.source, loggertesting.NewCheckLogger(c))
	for range inv.ContainersOf(node("7")) {
		c.Fatalf("unknown machine has no containers")
	}
}
