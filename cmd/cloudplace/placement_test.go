// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace_test

import (
	"encoding/json"

	"github.com/juju/cmd/v3/cmdtesting"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/cloudinstall/cmd/cloudplace"
)

type placementSuite struct {
	baseSuite
}

var _ = gc.Suite(&placementSuite{})

func (s *placementSuite) run(c *gc.C, args ...string) (string, error) {
	args = append([]string{"--status-file", s.statusFile, "--catalog-file", s.catalogFile}, args...)
	ctx, err := cmdtesting.RunCommand(c, cloudplace.NewPlacementCommand(), args...)
	if err != nil {
		return "", err
	}
	return cmdtesting.Stdout(ctx), nil
}

func (s *placementSuite) TestDefaults(c *gc.C) {
	out, err := s.run(c)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(out, gc.Equals, `
MACHINE          HOSTNAME         SERVICES
first-available  First Available  ceph
i-0              node0.maas       mysql,ntp
i-1              node1.maas       nova-compute

SERVICE       MACHINE
mysql         node0.maas
nova-compute  node1.maas
ceph          First Available
ntp           node0.maas
`[1:])
}

func (s *placementSuite) TestOperationsAppliedInOrder(c *gc.C) {
	out, err := s.run(c,
		"--clear", "first-available",
		"--assign", "ceph=node0.maas",
		"--remove", "mysql",
	)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(out, gc.Equals, `
MACHINE          HOSTNAME         SERVICES
first-available  First Available  -
i-0              node0.maas       ntp,ceph
i-1              node1.maas       nova-compute

SERVICE       MACHINE
mysql         Unassigned
nova-compute  node1.maas
ceph          node0.maas
ntp           node0.maas
`[1:])
}

func (s *placementSuite) TestAssignByInstanceIDToContainer(c *gc.C) {
	out, err := s.run(c, "--assign", "mysql=juju-machine-0-lxc-0", "--format", "json")
	c.Assert(err, jc.ErrorIsNil)

	var info struct {
		Machines []struct {
			InstanceID string   `json:"instance-id"`
			Services   []string `json:"services"`
		} `json:"machines"`
		Services []struct {
			Name    string `json:"name"`
			Machine string `json:"machine"`
		} `json:"services"`
	}
	err = json.Unmarshal([]byte(out), &info)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(info.Machines, gc.HasLen, 3)
	c.Check(info.Machines[1].InstanceID, gc.Equals, "i-0")
	c.Check(info.Machines[1].Services, jc.DeepEquals, []string{"ntp"})
	c.Check(info.Services[0].Name, gc.Equals, "mysql")
	c.Check(info.Services[0].Machine, gc.Equals, "10.0.3.10")
}

func (s *placementSuite) TestLaterOperationWins(c *gc.C) {
	out, err := s.run(c,
		"--assign", "nova-compute=i-0",
		"--assign", "nova-compute=first-available",
		"--format", "json",
	)
	c.Assert(err, jc.ErrorIsNil)

	var info struct {
		Machines []struct {
			Services []string `json:"services"`
		} `json:"machines"`
	}
	err = json.Unmarshal([]byte(out), &info)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(info.Machines[0].Services, jc.DeepEquals, []string{"ceph", "nova-compute"})
	c.Check(info.Machines[1].Services, jc.DeepEquals, []string{"mysql", "ntp"})
	c.Check(info.Machines[2].Services, jc.DeepEquals, []string{})
}

func (s *placementSuite) TestErrors(c *gc.C) {
	tests := []struct {
		args []string
		err  string
	}{{
		args: []string{"--assign", "mysql"},
		err:  `.*assignment "mysql" \(expected <service>=<machine>\) not valid`,
	}, {
		args: []string{"--assign", "=i-0"},
		err:  `.*assignment "=i-0" \(expected <service>=<machine>\) not valid`,
	}, {
		args: []string{"--assign", "nope=i-0"},
		err:  `service "nope" not found`,
	}, {
		args: []string{"--assign", "swift-proxy=i-0"},
		err:  `service "swift-proxy" not found`,
	}, {
		args: []string{"--assign", "mysql=node9.maas"},
		err:  `machine "node9.maas" not found`,
	}, {
		args: []string{"--clear", "node9.maas"},
		err:  `machine "node9.maas" not found`,
	}, {
		args: []string{"--remove", "nope"},
		err:  `service "nope" not found`,
	}}
	for i, test := range tests {
		c.Logf("test %d: %v", i, test.args)
		_, err := s.run(c, test.args...)
		c.Check(err, gc.ErrorMatches, test.err)
	}
}
