// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package charm

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type channelSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&channelSuite{})

func (*channelSuite) TestParseChannel(c *gc.C) {
	tests := []struct {
		input    string
		expected Channel
		str      string
	}{{
		input:    "",
		expected: Channel{},
		str:      "stable",
	}, {
		input:    "edge",
		expected: Channel{Risk: Edge},
		str:      "edge",
	}, {
		input:    "latest",
		expected: Channel{Track: "latest"},
		str:      "latest/stable",
	}, {
		input:    "candidate/hotfix",
		expected: Channel{Risk: Candidate, Branch: "hotfix"},
		str:      "candidate/hotfix",
	}, {
		input:    "yoga/beta",
		expected: Channel{Track: "yoga", Risk: Beta},
		str:      "yoga/beta",
	}, {
		input:    "yoga/stable/hotfix",
		expected: Channel{Track: "yoga", Risk: Stable, Branch: "hotfix"},
		str:      "yoga/stable/hotfix",
	}}
	for i, test := range tests {
		c.Logf("test %d: %q", i, test.input)
		ch, err := ParseChannel(test.input)
		c.Assert(err, jc.ErrorIsNil)
		c.Check(ch, jc.DeepEquals, test.expected)
		c.Check(ch.Normalize().String(), gc.Equals, test.str)
	}
}

func (*channelSuite) TestParseChannelInvalid(c *gc.C) {
	for i, input := range []string{
		"yoga/risky",
		"a/b/c/d",
		"yoga/",
		"/stable",
		"yoga//hotfix",
		"yoga/unstable/hotfix",
	} {
		c.Logf("test %d: %q", i, input)
		_, err := ParseChannel(input)
		c.Check(err, jc.ErrorIs, errors.NotValid)
	}
}

func (*channelSuite) TestEmpty(c *gc.C) {
	c.Check(Channel{}.Empty(), jc.IsTrue)
	c.Check(Channel{}.Normalize().Empty(), jc.IsFalse)
}
