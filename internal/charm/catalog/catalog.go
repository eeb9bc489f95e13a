// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package catalog loads the charm catalog: the ordered list of service
// definitions that placement assigns to machines.
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"slices"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/names/v5"
	"gopkg.in/yaml.v3"

	"github.com/juju/cloudinstall/core/charm"
)

//go:embed defaults.yaml
var defaultCatalog []byte

type catalogDoc struct {
	Charms []entryDoc `yaml:"charms"`
}

type entryDoc struct {
	Name           string `yaml:"name"`
	DisplayName    string `yaml:"display-name"`
	Isolate        bool   `yaml:"isolate"`
	Disabled       bool   `yaml:"disabled"`
	Subordinate    bool   `yaml:"subordinate"`
	DeployPriority int    `yaml:"deploy-priority"`
	IsCore         bool   `yaml:"is-core"`
	Revision       int    `yaml:"revision"`
	Channel        string `yaml:"channel"`
}

// Catalog is an ordered, read-only collection of charm definitions.
type Catalog struct {
	defs []charm.Definition
}

// Default returns the catalog shipped with the installer.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(errors.Annotate(err, "parsing embedded catalog"))
	}
	return c
}

// Load reads a catalog from the YAML file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening catalog %q", path)
	}
	defer func() { _ = f.Close() }()

	c, err := Read(f)
	return c, errors.Annotatef(err, "reading catalog %q", path)
}

// Parse parses a catalog YAML document.
func Parse(data []byte) (*Catalog, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a catalog YAML document from r. Unknown keys, empty or
// malformed charm names, duplicate names and bad channels are errors.
func Read(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogDoc
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.NotValidf("catalog document: %v", err)
	}

	seen := set.NewStrings()
	defs := make([]charm.Definition, 0, len(doc.Charms))
	for i, entry := range doc.Charms {
		if entry.Name == "" {
			return nil, errors.NotValidf("charm %d with empty name", i)
		}
		if !names.IsValidApplication(entry.Name) {
			return nil, errors.NotValidf("charm name %q", entry.Name)
		}
		if seen.Contains(entry.Name) {
			return nil, errors.NotValidf("duplicate charm %q", entry.Name)
		}
		seen.Add(entry.Name)

		if entry.Revision < 0 {
			return nil, errors.NotValidf("charm %q revision %d", entry.Name, entry.Revision)
		}
		channel, err := charm.ParseChannel(entry.Channel)
		if err != nil {
			return nil, errors.Annotatef(err, "charm %q", entry.Name)
		}

		defs = append(defs, charm.Definition{
			Name:           entry.Name,
			DisplayName:    entry.DisplayName,
			Isolate:        entry.Isolate,
			Disabled:       entry.Disabled,
			Subordinate:    entry.Subordinate,
			DeployPriority: entry.DeployPriority,
			IsCore:         entry.IsCore,
			Revision:       entry.Revision,
			Channel:        channel.Normalize(),
		})
	}
	return &Catalog{defs: defs}, nil
}

// Definitions returns every definition, disabled ones included, in
// catalog order.
func (c *Catalog) Definitions() []charm.Definition {
	return slices.Clone(c.defs)
}

// Enabled returns the definitions that are not disabled, in catalog order.
func (c *Catalog) Enabled() []charm.Definition {
	return charm.Enabled(c.defs)
}

// Lookup returns the definition with the given name.
func (c *Catalog) Lookup(name string) (charm.Definition, bool) {
	for _, d := range c.defs {
		if d.Name == name {
			return d, true
		}
	}
	return charm.Definition{}, false
}

// DeployOrder returns the enabled definitions sorted by deploy priority.
// Definitions with equal priority keep their catalog order.
func (c *Catalog) DeployOrder() []charm.Definition {
	defs := c.Enabled()
	charm.SortByDeployPriority(defs)
	return defs
}
