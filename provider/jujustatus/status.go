// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package jujustatus reads machines from the YAML document printed by
// "juju status --format yaml".
package jujustatus

import (
	"fmt"
	"io"
	"slices"

	"github.com/juju/errors"
	"github.com/juju/naturalsort"
	"github.com/juju/schema"
	"gopkg.in/yaml.v2"

	"github.com/juju/cloudinstall/core/machine"
)

var idChecker = schema.OneOf(schema.String(), schema.Int())

var docChecker = schema.FieldMap(
	schema.Fields{
		"machines": schema.Map(idChecker, schema.Any()),
	},
	schema.Defaults{
		"machines": schema.Omit,
	},
)

var machineChecker = schema.FieldMap(
	schema.Fields{
		"instance-id": schema.String(),
		"dns-name":    schema.String(),
		"agent-state": schema.String(),
		"juju-status": schema.FieldMap(
			schema.Fields{"current": schema.String()},
			schema.Defaults{"current": ""},
		),
		"hardware":   schema.String(),
		"containers": schema.Map(idChecker, schema.Any()),
	},
	schema.Defaults{
		"instance-id": "",
		"dns-name":    "",
		"agent-state": "",
		"juju-status": schema.Omit,
		"hardware":    "",
		"containers":  schema.Omit,
	},
)

// Parse returns the machines described by a juju status document,
// ordered by machine id. Machines without an instance id have not been
// provisioned yet and are left out, as are their containers.
func Parse(data []byte) ([]machine.NodeArgs, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NotValidf("juju status document: %v", err)
	}
	if raw == nil {
		return nil, nil
	}
	coerced, err := docChecker.Coerce(raw, nil)
	if err != nil {
		return nil, errors.Annotate(err, "juju status document")
	}
	machines, _ := coerced.(map[string]interface{})["machines"].(map[interface{}]interface{})
	return parseMachines(machines, nil)
}

// Read is like Parse but reads the document from r.
func Read(r io.Reader) ([]machine.NodeArgs, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return Parse(data)
}

func parseMachines(raw map[interface{}]interface{}, path []string) ([]machine.NodeArgs, error) {
	byID := make(map[string]interface{}, len(raw))
	ids := make([]string, 0, len(raw))
	for key, value := range raw {
		id := fmt.Sprint(key)
		byID[id] = value
		ids = append(ids, id)
	}
	naturalsort.Sort(ids)

	result := make([]machine.NodeArgs, 0, len(ids))
	for _, id := range ids {
		args, err := parseMachine(id, byID[id], childPath(path, id))
		if err != nil {
			return nil, errors.Trace(err)
		}
		if args.InstanceID == "" {
			continue
		}
		result = append(result, args)
	}
	return result, nil
}

func parseMachine(id string, raw interface{}, path []string) (machine.NodeArgs, error) {
	coerced, err := machineChecker.Coerce(raw, path)
	if err != nil {
		return machine.NodeArgs{}, errors.Annotatef(err, "machine %q", id)
	}
	fields := coerced.(map[string]interface{})

	state := fields["agent-state"].(string)
	if status, ok := fields["juju-status"].(map[string]interface{}); ok && state == "" {
		state = status["current"].(string)
	}
	hw, err := machine.ParseHardware(fields["hardware"].(string))
	if err != nil {
		return machine.NodeArgs{}, errors.Annotatef(err, "machine %q", id)
	}

	args := machine.NodeArgs{
		MachineID:  id,
		InstanceID: fields["instance-id"].(string),
		DNSName:    fields["dns-name"].(string),
		AgentState: state,
		Hardware:   hw,
	}
	if containers, ok := fields["containers"].(map[interface{}]interface{}); ok {
		args.Containers, err = parseMachines(containers, childPath(path, "containers"))
		if err != nil {
			return machine.NodeArgs{}, errors.Trace(err)
		}
	}
	return args, nil
}

// childPath extends a juju/schema error path with a map key.
func childPath(path []string, key string) []string {
	return append(slices.Clone(path), ".", key)
}
