// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package maas

import (
	"net/url"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"

	"github.com/juju/cloudinstall/core/config"
)

const (
	// ServerKey is the URL of the MAAS server.
	ServerKey = "maas-server"

	// OAuthKey is the MAAS API key.
	OAuthKey = "maas-oauth"

	// AgentNameKey restricts the listing to machines acquired under the
	// given agent name.
	AgentNameKey = "maas-agent-name"

	// AttemptsKey is the number of times a listing is tried.
	AttemptsKey = "attempts"

	// RetryDelayKey is the pause between attempts.
	RetryDelayKey = "retry-delay"
)

var configFields = environschema.Fields{
	ServerKey: {
		Description: "maas-server specifies the location of the MAAS server",
		Type:        environschema.Tstring,
		Mandatory:   true,
	},
	OAuthKey: {
		Description: "maas-oauth holds the OAuth credentials from MAAS",
		Type:        environschema.Tstring,
		Mandatory:   true,
		Secret:      true,
	},
	AgentNameKey: {
		Description: "maas-agent-name restricts listed machines to those owned by the agent",
		Type:        environschema.Tstring,
	},
	AttemptsKey: {
		Description: "number of attempts made to list machines",
		Type:        environschema.Tint,
	},
	RetryDelayKey: {
		Description: "delay between attempts, as a Go duration",
		Type:        environschema.Tstring,
	},
}

var configDefaults = schema.Defaults{
	AgentNameKey:  "",
	AttemptsKey:   3,
	RetryDelayKey: "200ms",
}

var errMalformedMaasOAuth = errors.NotValidf("malformed maas-oauth (3 items separated by colons)")

// Config holds the settings for talking to a MAAS server.
type Config struct {
	Server     string
	APIKey     string
	AgentName  string
	Attempts   int
	RetryDelay time.Duration
}

// ConfigFields returns the schema of the attributes accepted by
// ParseConfig.
func ConfigFields() environschema.Fields {
	return configFields
}

// ParseConfig builds a Config from raw attributes, applying defaults.
func ParseConfig(attrs map[string]interface{}) (Config, error) {
	cfg, err := config.NewConfig(attrs, configFields, configDefaults)
	if err != nil {
		return Config{}, errors.Annotate(err, "parsing maas config")
	}
	values := cfg.Attributes()
	delay, err := values.GetDuration(RetryDelayKey, 0)
	if err != nil {
		return Config{}, errors.Trace(err)
	}
	result := Config{
		Server:     values.GetString(ServerKey, ""),
		APIKey:     values.GetString(OAuthKey, ""),
		AgentName:  values.GetString(AgentNameKey, ""),
		Attempts:   values.GetInt(AttemptsKey, 0),
		RetryDelay: delay,
	}
	if err := result.Validate(); err != nil {
		return Config{}, errors.Trace(err)
	}
	return result, nil
}

// Validate checks the server URL, API key shape and retry settings.
func (c Config) Validate() error {
	if c.Server == "" {
		return errors.NotValidf("empty %s", ServerKey)
	}
	u, err := url.Parse(c.Server)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.NotValidf("%s %q", ServerKey, c.Server)
	}
	if strings.Count(c.APIKey, ":") != 2 {
		return errMalformedMaasOAuth
	}
	for _, part := range strings.Split(c.APIKey, ":") {
		if part == "" {
			return errMalformedMaasOAuth
		}
	}
	if c.Attempts < 1 {
		return errors.NotValidf("%s %d", AttemptsKey, c.Attempts)
	}
	if c.RetryDelay <= 0 {
		return errors.NotValidf("non-positive %s", RetryDelayKey)
	}
	return nil
}
