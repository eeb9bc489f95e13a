// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"time"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
)

// ConfigAttributes is the coerced attribute map of a Config.
type ConfigAttributes map[string]interface{}

// Config holds attributes validated against an environschema field set.
type Config struct {
	attributes ConfigAttributes
}

// NewConfig validates attrs against fields, filling in defaults. Keys not
// named in fields are rejected.
func NewConfig(attrs map[string]interface{}, fields environschema.Fields, defaults schema.Defaults) (*Config, error) {
	checker, err := schemaChecker(fields, defaults)
	if err != nil {
		return nil, errors.Trace(err)
	}
	coerced, err := checker.Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Config{attributes: coerced.(map[string]interface{})}, nil
}

func schemaChecker(fields environschema.Fields, defaults schema.Defaults) (schema.Checker, error) {
	schemaFields, schemaDefaults, err := fields.ValidationSchema()
	if err != nil {
		return nil, errors.Trace(err)
	}
	for key, value := range defaults {
		schemaDefaults[key] = value
	}
	return schema.StrictFieldMap(schemaFields, schemaDefaults), nil
}

// KnownConfigKeys returns the names of all fields.
func KnownConfigKeys(fields environschema.Fields) set.Strings {
	keys := set.NewStrings()
	for key := range fields {
		keys.Add(key)
	}
	return keys
}

// Attributes returns the validated attributes.
func (c *Config) Attributes() ConfigAttributes {
	if c == nil {
		return nil
	}
	return c.attributes
}

// Get returns the value of key, or defaultValue if it is not set.
func (c ConfigAttributes) Get(key string, defaultValue interface{}) interface{} {
	if v, ok := c[key]; ok {
		return v
	}
	return defaultValue
}

// GetString returns the string value of key, or defaultValue.
func (c ConfigAttributes) GetString(key string, defaultValue string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return defaultValue
}

// GetInt returns the int value of key, or defaultValue.
func (c ConfigAttributes) GetInt(key string, defaultValue int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return defaultValue
}

// GetBool returns the bool value of key, or defaultValue.
func (c ConfigAttributes) GetBool(key string, defaultValue bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return defaultValue
}

// GetDuration parses the string value of key as a duration, returning
// defaultValue when the key is absent.
func (c ConfigAttributes) GetDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v, ok := c[key].(string)
	if !ok {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.NotValidf("%s duration %q", key, v)
	}
	return d, nil
}
