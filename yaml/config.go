// Package yaml loads CLI defaults from a YAML config file.
//
// Keys are flag names, with dashes or underscores. Top-level keys apply to
// every command; a mapping named after a command overrides them for that
// command:
//
//	timeout: 15s
//	extractor: trafilatura
//	download:
//	  output: ~/Downloads
package yaml

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/citegrab"
	"gopkg.in/yaml.v3"
)

// Config holds the decoded file.
type Config struct {
	values map[string]any
}

// Parse decodes a config file. An empty document yields an empty Config.
func Parse(r io.Reader) (*Config, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, citegrab.Errorf(citegrab.EINVALID, "parse config: %v", err)
	}
	return &Config{values: values}, nil
}

// Lookup returns the value for a flag, preferring the command's section.
// Scalars are returned as strings so kong's mappers can decode them.
func (c *Config) Lookup(command, flag string) (string, bool) {
	if command != "" {
		if section, ok := c.values[command].(map[string]any); ok {
			if v, ok := lookup(section, flag); ok {
				return v, true
			}
		}
	}
	return lookup(c.values, flag)
}

func lookup(values map[string]any, flag string) (string, bool) {
	for _, key := range []string{flag, strings.ReplaceAll(flag, "-", "_")} {
		raw, ok := values[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case nil, map[string]any:
			return "", false
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			return strings.Join(parts, ","), true
		default:
			return fmt.Sprint(v), true
		}
	}
	return "", false
}

// Resolver adapts the config to kong.
func (c *Config) Resolver() kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		var command string
		if parent != nil && parent.Command != nil {
			command = parent.Command.Name
		}
		if v, ok := c.Lookup(command, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	})
}

// Loader is a kong.ConfigurationLoader for YAML files.
func Loader(r io.Reader) (kong.Resolver, error) {
	c, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return c.Resolver(), nil
}
