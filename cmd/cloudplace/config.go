// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cloudplace

import (
	"bytes"
	"io"
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig holds the settings that may be given in a --config file.
// Command line flags take precedence over the file.
type fileConfig struct {
	MAASServer    string `yaml:"maas-server"`
	MAASOAuth     string `yaml:"maas-oauth"`
	MAASAgentName string `yaml:"maas-agent-name"`
	StatusFile    string `yaml:"status-file"`
	CatalogFile   string `yaml:"catalog-file"`
}

func readConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Annotate(err, "reading config file")
	}
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return fileConfig{}, errors.NotValidf("config file %q: %v", path, err)
	}
	return cfg, nil
}

// merge fills the unset fields of c from other.
func (c *fileConfig) merge(other fileConfig) {
	set := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	set(&c.MAASServer, other.MAASServer)
	set(&c.MAASOAuth, other.MAASOAuth)
	set(&c.MAASAgentName, other.MAASAgentName)
	set(&c.StatusFile, other.StatusFile)
	set(&c.CatalogFile, other.CatalogFile)
}
