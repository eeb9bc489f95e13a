// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juju/ansiterm"
	"github.com/juju/errors"

	"github.com/juju/cloudinstall/core/charm"
	"github.com/juju/cloudinstall/core/machine"
	"github.com/juju/cloudinstall/internal/placement"
)

// tabWriter returns a writer for tabular output.
func tabWriter(writer io.Writer) *ansiterm.TabWriter {
	const (
		minwidth = 0
		tabwidth = 1
		padding  = 2
		padchar  = ' '
		flags    = 0
	)
	return ansiterm.NewTabWriter(writer, minwidth, tabwidth, padding, padchar, flags)
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type machineInfo struct {
	InstanceID string        `yaml:"instance-id" json:"instance-id"`
	MachineID  string        `yaml:"machine-id,omitempty" json:"machine-id,omitempty"`
	Hostname   string        `yaml:"hostname" json:"hostname"`
	AgentState string        `yaml:"agent-state,omitempty" json:"agent-state,omitempty"`
	Hardware   string        `yaml:"hardware,omitempty" json:"hardware,omitempty"`
	Containers []machineInfo `yaml:"containers,omitempty" json:"containers,omitempty"`

	hardware machine.Hardware
}

func newMachineInfo(m machine.Machine, withContainers bool) machineInfo {
	info := machineInfo{
		InstanceID: m.InstanceID(),
		Hostname:   m.Hostname(),
	}
	node, ok := m.(*machine.Node)
	if !ok {
		return info
	}
	info.MachineID = node.MachineID()
	info.AgentState = node.AgentState()
	info.hardware = node.Hardware()
	info.Hardware = info.hardware.String()
	if withContainers {
		for child := range node.Containers() {
			info.Containers = append(info.Containers, newMachineInfo(child, true))
		}
	}
	return info
}

func formatMachinesTabular(writer io.Writer, value interface{}) error {
	machines, ok := value.([]machineInfo)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", machines, value)
	}
	tw := tabWriter(writer)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	print("ID", "HOSTNAME", "STATE", "ARCH", "CORES", "MEM", "STORAGE")
	var printMachine func(m machineInfo, indent string)
	printMachine = func(m machineInfo, indent string) {
		hw := m.hardware
		print(indent+m.InstanceID, m.Hostname, valueOrDash(m.AgentState),
			hw.ArchString(), hw.CPUString(), hw.MemString(), hw.StorageString())
		for _, child := range m.Containers {
			printMachine(child, indent+"  ")
		}
	}
	for _, m := range machines {
		printMachine(m, "")
	}
	return tw.Flush()
}

type serviceInfo struct {
	Name           string `yaml:"name" json:"name"`
	DisplayName    string `yaml:"display-name" json:"display-name"`
	Isolate        bool   `yaml:"isolate,omitempty" json:"isolate,omitempty"`
	Subordinate    bool   `yaml:"subordinate,omitempty" json:"subordinate,omitempty"`
	Disabled       bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	DeployPriority int    `yaml:"deploy-priority" json:"deploy-priority"`
	Revision       int    `yaml:"revision,omitempty" json:"revision,omitempty"`
	Channel        string `yaml:"channel,omitempty" json:"channel,omitempty"`
}

func newServiceInfo(d charm.Definition) serviceInfo {
	return serviceInfo{
		Name:           d.Name,
		DisplayName:    d.Label(),
		Isolate:        d.Isolate,
		Subordinate:    d.Subordinate,
		Disabled:       d.Disabled,
		DeployPriority: d.DeployPriority,
		Revision:       d.Revision,
		Channel:        d.Channel.String(),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatServicesTabular(writer io.Writer, value interface{}) error {
	services, ok := value.([]serviceInfo)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", services, value)
	}
	tw := tabWriter(writer)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	print("NAME", "DISPLAY NAME", "ISOLATE", "SUBORDINATE", "PRIORITY", "CHANNEL")
	for _, s := range services {
		name := s.Name
		if s.Disabled {
			name += " (disabled)"
		}
		print(name, s.DisplayName, yesNo(s.Isolate), yesNo(s.Subordinate),
			strconv.Itoa(s.DeployPriority), valueOrDash(s.Channel))
	}
	return tw.Flush()
}

type placementInfo struct {
	Machines []machinePlacement `yaml:"machines" json:"machines"`
	Services []servicePlacement `yaml:"services" json:"services"`
}

type machinePlacement struct {
	InstanceID string   `yaml:"instance-id" json:"instance-id"`
	Hostname   string   `yaml:"hostname" json:"hostname"`
	Services   []string `yaml:"services" json:"services"`
}

type servicePlacement struct {
	Name    string `yaml:"name" json:"name"`
	Machine string `yaml:"machine" json:"machine"`
}

func newPlacementInfo(ctrl *placement.Controller) placementInfo {
	var info placementInfo
	for _, ma := range ctrl.MachineAssignments() {
		names := []string{}
		for _, svc := range ma.Services {
			names = append(names, svc.Name)
		}
		info.Machines = append(info.Machines, machinePlacement{
			InstanceID: ma.Machine.InstanceID(),
			Hostname:   ma.Machine.Hostname(),
			Services:   names,
		})
	}
	for _, sa := range ctrl.ServiceAssignments() {
		info.Services = append(info.Services, servicePlacement{
			Name:    sa.Service.Name,
			Machine: sa.Hostname(),
		})
	}
	return info
}

func formatPlacementTabular(writer io.Writer, value interface{}) error {
	info, ok := value.(placementInfo)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", info, value)
	}
	tw := tabWriter(writer)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	print("MACHINE", "HOSTNAME", "SERVICES")
	for _, m := range info.Machines {
		print(m.InstanceID, m.Hostname, valueOrDash(strings.Join(m.Services, ",")))
	}
	if err := tw.Flush(); err != nil {
		return errors.Trace(err)
	}

	fmt.Fprintln(writer)
	tw = tabWriter(writer)
	print("SERVICE", "MACHINE")
	for _, s := range info.Services {
		print(s.Name, s.Machine)
	}
	return tw.Flush()
}
