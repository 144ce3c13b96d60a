// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads the builtin environment of the generator from YAML.
//
// A configuration declares the types of global names and the members of the builtin
// Array, Map and String prototypes, written in the type-expression syntax read by
// types.Parse:
//
//	globals:
//	  print: (T) -> Void
//	  parseInt: (String) -> Integer
//	prototypes:
//	  Array:
//	    push: method(T) -> Integer
//	    var length: Integer
//
// Within the Array and Map prototypes the type-variable T names the element type.
// A member name prefixed with `var` is read-write.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/protoinfer/types"
)

//go:embed default.yaml
var defaultYAML []byte

// Config represents a builtin environment file.
type Config struct {
	// Globals maps names bound outside the program to type expressions. Identifiers
	// other than builtin type names are generic parameters, substituted per use.
	Globals map[string]string `yaml:"globals"`

	// Prototypes maps a builtin prototype name (Array, Map or String) to its members.
	Prototypes map[string]map[string]string `yaml:"prototypes,omitempty"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses configuration content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML, "default.yaml")
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate(path string) error {
	for name := range c.Prototypes {
		switch name {
		case types.ArrayProto, types.MapProto, types.StringProto:
		default:
			return fmt.Errorf("%s: unknown prototype %q (expected Array, Map or String)", path, name)
		}
	}
	if _, err := c.Env(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Env builds the builtin environment described by the configuration.
func (c *Config) Env() (*types.Env, error) {
	env := types.NewEnv()
	for _, name := range sortedKeys(c.Globals) {
		t, err := types.Parse(c.Globals[name])
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", name, err)
		}
		env.Add(name, t)
	}
	for protoName, members := range c.Prototypes {
		proto := types.NewObject()
		for _, key := range sortedKeys(members) {
			name, readOnly := key, true
			if rest, ok := strings.CutPrefix(key, "var "); ok {
				name, readOnly = strings.TrimSpace(rest), false
			}
			t, err := types.Parse(members[key])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", protoName, name, err)
			}
			if protoName == types.StringProto && len(types.GenericVars(t)) > 0 {
				return nil, fmt.Errorf("%s.%s: String members cannot be generic", protoName, name)
			}
			proto = proto.WithProperty(types.Property{Name: name, Type: t, ReadOnly: readOnly})
		}
		env.Prototypes[protoName] = proto
	}
	return env, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
