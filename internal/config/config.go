// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles jst project configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dacolabs/jst/internal/translate"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = ".jst.yaml"

// Config represents the .jst.yaml project configuration file. It holds
// defaults for any translate option not set on the command line.
type Config struct {
	Version               int    `yaml:"version"`
	Type                  string `yaml:"type,omitempty"`
	Resolve               string `yaml:"resolve,omitempty"`
	NormalizeCase         bool   `yaml:"normalizeCase,omitempty"`
	ForceNullable         bool   `yaml:"forceNullable,omitempty"`
	TupleStruct           bool   `yaml:"tupleStruct,omitempty"`
	AllowMapsWithoutValue bool   `yaml:"allowMapsWithoutValue,omitempty"`
	JSONObjectPath        string `yaml:"jsonObjectPath,omitempty"`
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if _, err := translate.ParseResolveMethod(c.Resolve); err != nil {
		return err
	}
	switch c.Type {
	case "", "avro", "bigquery":
	default:
		return fmt.Errorf("%w: unknown dialect %q", translate.ErrInvalidOption, c.Type)
	}
	var ctx translate.Context
	return ctx.CompileJSONPath(c.JSONObjectPath)
}
