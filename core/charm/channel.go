// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package charm

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// Risk describes the type of risk in a current channel.
type Risk string

const (
	Stable    Risk = "stable"
	Candidate Risk = "candidate"
	Beta      Risk = "beta"
	Edge      Risk = "edge"
)

// Risks is a list of the available channel risks.
var Risks = []Risk{
	Stable,
	Candidate,
	Beta,
	Edge,
}

func isRisk(potential string) bool {
	for _, risk := range Risks {
		if potential == string(risk) {
			return true
		}
	}
	return false
}

// Channel identifies the store channel a catalog charm comes from, in the
// form <track>/<risk>/<branch>. Only the risk is required.
type Channel struct {
	Track  string
	Risk   Risk
	Branch string
}

// ParseChannel parses a channel string. An empty string yields the empty
// channel, which Normalize turns into "stable".
func ParseChannel(s string) (Channel, error) {
	if s == "" {
		return Channel{}, nil
	}

	p := strings.Split(s, "/")
	for _, part := range p {
		if part == "" {
			return Channel{}, errors.NotValidf("channel %q with empty component", s)
		}
	}

	var ch Channel
	switch len(p) {
	case 1:
		if isRisk(p[0]) {
			ch.Risk = Risk(p[0])
		} else {
			ch.Track = p[0]
		}
	case 2:
		if isRisk(p[0]) {
			ch.Risk, ch.Branch = Risk(p[0]), p[1]
		} else {
			ch.Track, ch.Risk = p[0], Risk(p[1])
		}
	case 3:
		ch.Track, ch.Risk, ch.Branch = p[0], Risk(p[1]), p[2]
	default:
		return Channel{}, errors.NotValidf("channel %q with too many components", s)
	}

	if ch.Risk != "" && !isRisk(string(ch.Risk)) {
		return Channel{}, errors.NotValidf("risk in channel %q", s)
	}
	return ch, nil
}

// Normalize returns the channel with the risk defaulted to stable.
func (ch Channel) Normalize() Channel {
	if ch.Risk == "" {
		ch.Risk = Stable
	}
	return ch
}

// Empty returns true if all its components are empty.
func (ch Channel) Empty() bool {
	return ch.Track == "" && ch.Risk == "" && ch.Branch == ""
}

func (ch Channel) String() string {
	path := string(ch.Risk)
	if ch.Track != "" {
		path = fmt.Sprintf("%s/%s", ch.Track, path)
	}
	if ch.Branch != "" {
		path = fmt.Sprintf("%s/%s", path, ch.Branch)
	}
	return path
}
